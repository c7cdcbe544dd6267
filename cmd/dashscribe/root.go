package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dashscribe/internal/config"
	"dashscribe/internal/storage"
)

// app carries the state shared by every subcommand once the root command has
// loaded configuration.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

// rootCommand creates the root command with every subcommand attached.
func rootCommand() *cobra.Command {
	a := &app{out: os.Stdout}

	rootCmd := &cobra.Command{
		Use:           "dashscribe",
		Short:         "Dashcam transcript ingestion and search",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	rootCmd.AddCommand(
		ingestCommand(a),
		ingestDirCommand(a),
		resetSchemaCommand(a),
		serveCommand(a),
	)

	return rootCmd
}

// init loads configuration and installs the default logger.
func (a *app) init(logOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg
	a.logger = newLogger(logOut, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(a.logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
	return nil
}

// newLogger builds a text or JSON slog logger at the given level.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// openStore opens the database and applies the configured schema.
func (a *app) openStore(cmd *cobra.Command) (*sql.DB, error) {
	db, err := storage.New(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	script, err := storage.LoadSchema(a.cfg.SchemaPath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := storage.ApplySchema(cmd.Context(), db, script); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	slog.Info("Database initialized", "path", a.cfg.DBPath)
	return db, nil
}
