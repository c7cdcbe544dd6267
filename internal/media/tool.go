// Package media wraps the external audio/video tooling used during ingestion.
package media

import "context"

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_tool.go -package=mocks dashscribe/internal/media Tool

// Tool extracts audio, metadata and still frames from video files.
type Tool interface {
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
	ProbeMetadata(ctx context.Context, videoPath string) (map[string]any, error)
	ExtractThumbnail(ctx context.Context, videoPath string, width int, at float64) ([]byte, error)
}
