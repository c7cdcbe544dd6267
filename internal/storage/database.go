package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed sql/schema.sql
var defaultSchema string

// tables lists every table in the schema, children before parents.
var tables = []string{
	"word_segments",
	"text_segments",
	"gps_points",
	"transcriptions",
	"audios",
	"videos",
}

// ErrResetNotConfirmed is returned by ResetSchema when the caller did not confirm the reset.
var ErrResetNotConfirmed = errors.New("schema reset not confirmed")

// New opens a SQLite database connection at the given path.
// Foreign keys are enabled on every pooled connection.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path))
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// DefaultSchema returns the built-in schema definition script.
func DefaultSchema() string {
	return defaultSchema
}

// LoadSchema reads a schema definition script from path.
// An empty path returns the built-in script.
func LoadSchema(path string) (string, error) {
	if path == "" {
		return defaultSchema, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schema %s: %w", path, err)
	}
	return string(data), nil
}

// Migrate creates the required tables from the built-in schema.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	return ApplySchema(context.Background(), db, defaultSchema)
}

// ApplySchema executes a schema definition script.
func ApplySchema(ctx context.Context, db *sql.DB, script string) error {
	if _, err := db.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// ResetSchema drops every table and recreates the schema from script.
// All stored data is lost, so the caller must pass confirm=true.
func ResetSchema(ctx context.Context, db *sql.DB, script string, confirm bool) error {
	if !confirm {
		return ErrResetNotConfirmed
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return tx.Commit()
}
