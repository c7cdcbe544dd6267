package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// newTestDB opens a migrated database in a temp directory.
// A file is used instead of :memory: so every pooled connection sees the same data.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check table %s: %v", table, err)
	}
	return count == 1
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid path",
			path:    dbPath,
			wantErr: false,
		},
		{
			name:    "invalid path",
			path:    "/invalid/path/to/db.db",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.path)

			if tt.wantErr {
				if err == nil {
					t.Errorf("New() expected error, got nil")
				}
				if db != nil {
					_ = db.Close()
				}
				return
			}

			if err != nil {
				t.Errorf("New() unexpected error: %v", err)
				return
			}

			if db == nil {
				t.Fatal("New() returned nil database")
			}

			// Verify connection pool settings
			if db.Stats().MaxOpenConnections != 25 {
				t.Errorf("New() MaxOpenConnections = %v, want 25", db.Stats().MaxOpenConnections)
			}

			_ = db.Close()
		})
	}
}

func TestNew_EnablesForeignKeysOnEveryConnection(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	ctx := context.Background()

	// Hold two connections at once so the pool has to open a second one
	conns := make([]*sql.Conn, 2)
	for i := range conns {
		conn, err := db.Conn(ctx)
		if err != nil {
			t.Fatalf("Conn() error = %v", err)
		}
		defer func() {
			_ = conn.Close()
		}()
		conns[i] = conn
	}

	for i, conn := range conns {
		var fkEnabled int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
			t.Fatalf("Failed to check foreign keys: %v", err)
		}
		if fkEnabled != 1 {
			t.Errorf("connection %d: foreign keys disabled", i)
		}
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() second run error = %v", err)
	}

	for _, table := range tables {
		if !tableExists(t, db, table) {
			t.Errorf("Migrate() table %s not found after second run", table)
		}
	}
}

func TestMigrate_RejectsChildWithoutParent(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec("INSERT INTO audios (video_id, filename, checksum) VALUES (999, 'a.mp3', 'abc')")
	if err == nil {
		t.Error("insert with dangling video_id should fail")
	}
}

func TestLoadSchema(t *testing.T) {
	got, err := LoadSchema("")
	if err != nil {
		t.Fatalf("LoadSchema(\"\") error = %v", err)
	}
	if got != DefaultSchema() {
		t.Error("LoadSchema(\"\") should return the built-in schema")
	}

	path := filepath.Join(t.TempDir(), "custom.sql")
	if err := os.WriteFile(path, []byte("CREATE TABLE IF NOT EXISTS extra (id INTEGER);"), 0644); err != nil {
		t.Fatalf("Failed to write schema: %v", err)
	}
	got, err = LoadSchema(path)
	if err != nil {
		t.Fatalf("LoadSchema() error = %v", err)
	}
	if got != "CREATE TABLE IF NOT EXISTS extra (id INTEGER);" {
		t.Errorf("LoadSchema() = %q", got)
	}

	if _, err := LoadSchema(filepath.Join(t.TempDir(), "missing.sql")); err == nil {
		t.Error("LoadSchema() with missing file should fail")
	}
}

func TestResetSchema(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.Exec(`INSERT INTO videos (filename, path, checksum, gps_filename) VALUES ('a.mp4', '/a.mp4', 'sum', 'a.csv')`); err != nil {
		t.Fatalf("Failed to insert video: %v", err)
	}

	t.Run("refuses without confirmation", func(t *testing.T) {
		err := ResetSchema(ctx, db, DefaultSchema(), false)
		if !errors.Is(err, ErrResetNotConfirmed) {
			t.Fatalf("ResetSchema() error = %v, want ErrResetNotConfirmed", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM videos").Scan(&count); err != nil {
			t.Fatalf("Failed to count videos: %v", err)
		}
		if count != 1 {
			t.Errorf("videos count = %d, unconfirmed reset must not touch data", count)
		}
	})

	t.Run("drops and recreates when confirmed", func(t *testing.T) {
		if err := ResetSchema(ctx, db, DefaultSchema(), true); err != nil {
			t.Fatalf("ResetSchema() error = %v", err)
		}

		for _, table := range tables {
			if !tableExists(t, db, table) {
				t.Errorf("table %s missing after reset", table)
			}
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM videos").Scan(&count); err != nil {
			t.Fatalf("Failed to count videos: %v", err)
		}
		if count != 0 {
			t.Errorf("videos count = %d after reset, want 0", count)
		}
	})

	t.Run("bad script rolls back", func(t *testing.T) {
		if err := ResetSchema(ctx, db, "CREATE TABLE broken (", true); err == nil {
			t.Fatal("ResetSchema() with invalid script should fail")
		}
		for _, table := range tables {
			if !tableExists(t, db, table) {
				t.Errorf("table %s dropped by failed reset", table)
			}
		}
	})
}
