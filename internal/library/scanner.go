// Package library finds dashcam recordings on disk and pairs each video with
// its GPS log and audio destination.
package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dashscribe/internal/apperr"
)

// AudioExt is the extension of extracted audio files.
const AudioExt = ".mp3"

var videoExts = map[string]bool{
	".mp4": true,
	".mov": true,
}

// Recording is a video found on disk with its companion files.
type Recording struct {
	RelPath   string // Relative path from the scan root (e.g., "2024/drive.mp4")
	VideoPath string
	AudioPath string // Destination for extracted audio; may not exist yet
	GPSPath   string
}

// Skipped is a video that could not be paired with a GPS log.
type Skipped struct {
	VideoPath string
	Reason    string
}

// IsVideo reports whether path has a supported video extension.
func IsVideo(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

// gpsCandidates returns the GPS log paths tried for a video, in preference order.
func gpsCandidates(videoPath string) []string {
	stem := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	return []string{
		stem + " - Interpolated.csv",
		stem + ".csv",
	}
}

// Resolve pairs a single video with its GPS log and audio destination.
func Resolve(videoPath string) (Recording, error) {
	if _, err := os.Stat(videoPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Recording{}, apperr.NotFound(videoPath)
		}
		return Recording{}, fmt.Errorf("failed to stat %s: %w", videoPath, err)
	}

	for _, candidate := range gpsCandidates(videoPath) {
		if _, err := os.Stat(candidate); err == nil {
			return Recording{
				RelPath:   filepath.Base(videoPath),
				VideoPath: videoPath,
				AudioPath: strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + AudioExt,
				GPSPath:   candidate,
			}, nil
		}
	}
	return Recording{}, fmt.Errorf("no gps log for %s: %w", videoPath, apperr.ErrNotFound)
}

// Scan walks root and returns every video that has a GPS log next to it.
// Videos without one are returned in skipped. Hidden directories are not entered.
func Scan(ctx context.Context, root string) ([]Recording, []Skipped, error) {
	var recordings []Recording
	var skipped []Skipped

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}

		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsVideo(path) {
			return nil
		}

		rec, err := Resolve(path)
		if err != nil {
			skipped = append(skipped, Skipped{VideoPath: path, Reason: err.Error()})
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		rec.RelPath = filepath.ToSlash(relPath)

		recordings = append(recordings, rec)
		return nil
	})
	if err != nil {
		return recordings, skipped, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return recordings, skipped, nil
}
