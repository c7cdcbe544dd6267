package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dashscribe/internal/apperr"
	"dashscribe/internal/storage"
)

// runCLI executes the root command against a fresh database in a temp dir.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "data", "test.db"))
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := rootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveJob(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "drive.mp4")
	gpsLog := filepath.Join(dir, "drive - Interpolated.csv")
	touch(t, video)
	touch(t, gpsLog)

	tests := []struct {
		name      string
		video     string
		gps       string
		audio     string
		wantGPS   string
		wantAudio string
		wantErr   error
	}{
		{
			name:      "discovers companions",
			video:     video,
			wantGPS:   gpsLog,
			wantAudio: filepath.Join(dir, "drive.mp3"),
		},
		{
			name:      "explicit audio with discovered gps",
			video:     video,
			audio:     "/tmp/out.mp3",
			wantGPS:   gpsLog,
			wantAudio: "/tmp/out.mp3",
		},
		{
			name:      "explicit gps skips discovery",
			video:     filepath.Join(dir, "nolog.mov"),
			gps:       "/logs/nolog.csv",
			wantGPS:   "/logs/nolog.csv",
			wantAudio: filepath.Join(dir, "nolog.mp3"),
		},
		{
			name:    "missing video",
			video:   filepath.Join(dir, "gone.mp4"),
			wantErr: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := resolveJob(tt.video, tt.gps, tt.audio)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("resolveJob() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveJob() error = %v", err)
			}
			if job.VideoPath != tt.video || job.GPSPath != tt.wantGPS || job.AudioPath != tt.wantAudio {
				t.Errorf("resolveJob() = %+v, want gps %q audio %q", job, tt.wantGPS, tt.wantAudio)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, slog.LevelInfo, "json").Info("hello", "k", "v")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("json logger wrote invalid JSON: %v", err)
	}
	if line["msg"] != "hello" || line["k"] != "v" {
		t.Errorf("json log line = %v", line)
	}

	buf.Reset()
	logger := newLogger(&buf, slog.LevelWarn, "text")
	logger.Info("dropped")
	logger.Warn("kept")
	if strings.Contains(buf.String(), "dropped") {
		t.Error("text logger should drop records below its level")
	}
	if !strings.Contains(buf.String(), "msg=kept") {
		t.Errorf("text logger output = %q, want msg=kept", buf.String())
	}
}

func TestResetSchemaCommand(t *testing.T) {
	t.Run("requires confirmation", func(t *testing.T) {
		_, err := runCLI(t, "reset-schema")
		if !errors.Is(err, storage.ErrResetNotConfirmed) {
			t.Errorf("reset-schema error = %v, want ErrResetNotConfirmed", err)
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		out, err := runCLI(t, "reset-schema", "--yes-i-am-sure")
		if err != nil {
			t.Fatalf("reset-schema error = %v", err)
		}
		if !strings.Contains(out, "schema reset") {
			t.Errorf("reset-schema output = %q", out)
		}
	})
}

func TestIngestDirCommand_NoRecordings(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "notes.txt"))

	out, err := runCLI(t, "ingest-dir", root)
	if err != nil {
		t.Fatalf("ingest-dir error = %v", err)
	}
	if !strings.Contains(out, "no recordings found") {
		t.Errorf("ingest-dir output = %q", out)
	}
}

func TestIngestCommand_Errors(t *testing.T) {
	t.Run("missing argument", func(t *testing.T) {
		if _, err := runCLI(t, "ingest"); err == nil {
			t.Error("ingest without a video should fail")
		}
	})

	t.Run("missing video", func(t *testing.T) {
		_, err := runCLI(t, "ingest", filepath.Join(t.TempDir(), "gone.mp4"))
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("ingest error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid configuration", func(t *testing.T) {
		t.Setenv("GPS_VARIANT", "garmin")
		_, err := runCLI(t, "ingest", "video.mp4")
		if !errors.Is(err, apperr.ErrUnsupportedVariant) {
			t.Errorf("ingest error = %v, want ErrUnsupportedVariant", err)
		}
	})
}
