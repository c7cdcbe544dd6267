package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashscribe/internal/storage"
)

func resetSchemaCommand(a *app) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset-schema",
		Short: "Drop every table and recreate the schema",
		Long:  `Drop all tables and recreate them from the schema script. All ingested data is lost.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("%w: pass --yes-i-am-sure to drop all data", storage.ErrResetNotConfirmed)
			}

			db, err := storage.New(a.cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			script, err := storage.LoadSchema(a.cfg.SchemaPath)
			if err != nil {
				return err
			}
			if err := storage.ResetSchema(cmd.Context(), db, script, confirm); err != nil {
				return err
			}
			a.logger.InfoContext(cmd.Context(), "schema reset", "path", a.cfg.DBPath)
			fmt.Fprintln(cmd.OutOrStdout(), "schema reset")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes-i-am-sure", false, "Confirm that all data should be dropped")

	return cmd
}
