package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dashscribe/internal/apperr"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
}

func TestIsVideo(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"drive.mp4", true},
		{"DRIVE.MP4", true},
		{"clip.mov", true},
		{"drive.mp3", false},
		{"drive.csv", false},
		{"mp4", false},
	}
	for _, tt := range tests {
		if got := IsVideo(tt.path); got != tt.want {
			t.Errorf("IsVideo(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()

	t.Run("prefers interpolated log", func(t *testing.T) {
		video := filepath.Join(dir, "a.mp4")
		touch(t, video)
		touch(t, filepath.Join(dir, "a.csv"))
		touch(t, filepath.Join(dir, "a - Interpolated.csv"))

		rec, err := Resolve(video)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if rec.GPSPath != filepath.Join(dir, "a - Interpolated.csv") {
			t.Errorf("GPSPath = %q", rec.GPSPath)
		}
		if rec.AudioPath != filepath.Join(dir, "a.mp3") {
			t.Errorf("AudioPath = %q", rec.AudioPath)
		}
	})

	t.Run("falls back to plain csv", func(t *testing.T) {
		video := filepath.Join(dir, "b.mov")
		touch(t, video)
		touch(t, filepath.Join(dir, "b.csv"))

		rec, err := Resolve(video)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if rec.GPSPath != filepath.Join(dir, "b.csv") {
			t.Errorf("GPSPath = %q", rec.GPSPath)
		}
	})

	t.Run("no gps log", func(t *testing.T) {
		video := filepath.Join(dir, "c.mp4")
		touch(t, video)

		if _, err := Resolve(video); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Resolve() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("missing video", func(t *testing.T) {
		if _, err := Resolve(filepath.Join(dir, "nope.mp4")); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Resolve() error = %v, want ErrNotFound", err)
		}
	})
}

func TestScan(t *testing.T) {
	root := t.TempDir()

	touch(t, filepath.Join(root, "drive.mp4"))
	touch(t, filepath.Join(root, "drive - Interpolated.csv"))
	touch(t, filepath.Join(root, "2024", "night.MOV"))
	touch(t, filepath.Join(root, "2024", "night.csv"))
	touch(t, filepath.Join(root, "2024", "orphan.mp4"))
	touch(t, filepath.Join(root, "notes.txt"))
	// Hidden directories are skipped
	touch(t, filepath.Join(root, ".trash", "old.mp4"))
	touch(t, filepath.Join(root, ".trash", "old.csv"))

	recordings, skipped, err := Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(recordings) != 2 {
		t.Fatalf("Scan() found %d recordings, want 2: %+v", len(recordings), recordings)
	}
	// WalkDir visits entries in lexical order
	if recordings[0].RelPath != "2024/night.MOV" || recordings[1].RelPath != "drive.mp4" {
		t.Errorf("RelPaths = %q, %q", recordings[0].RelPath, recordings[1].RelPath)
	}
	if recordings[0].AudioPath != filepath.Join(root, "2024", "night.mp3") {
		t.Errorf("AudioPath = %q", recordings[0].AudioPath)
	}

	if len(skipped) != 1 || skipped[0].VideoPath != filepath.Join(root, "2024", "orphan.mp4") {
		t.Errorf("Scan() skipped = %+v", skipped)
	}
}

func TestScan_Canceled(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "drive.mp4"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := Scan(ctx, root); !errors.Is(err, context.Canceled) {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	if _, _, err := Scan(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Scan() with missing root should fail")
	}
}
