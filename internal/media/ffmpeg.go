package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"dashscribe/internal/apperr"
	"dashscribe/internal/contextutil"
)

const (
	DefaultFFmpegPath  = "ffmpeg"
	DefaultFFprobePath = "ffprobe"
)

// FFmpeg implements Tool by shelling out to ffmpeg and ffprobe.
type FFmpeg struct {
	FFmpegPath  string
	FFprobePath string
}

// NewFFmpeg creates an FFmpeg tool. Empty paths fall back to the binaries on PATH.
func NewFFmpeg(ffmpegPath, ffprobePath string) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = DefaultFFmpegPath
	}
	if ffprobePath == "" {
		ffprobePath = DefaultFFprobePath
	}
	return &FFmpeg{FFmpegPath: ffmpegPath, FFprobePath: ffprobePath}
}

// ExtractAudio writes the audio track of videoPath to audioPath.
// The output format follows the audioPath extension. Existing files are never overwritten.
func (f *FFmpeg) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	if err := requireFile(videoPath); err != nil {
		return err
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "extracting audio", "video", videoPath, "audio", audioPath)
	if _, err := f.run(ctx, f.FFmpegPath, extractAudioArgs(videoPath, audioPath)); err != nil {
		return fmt.Errorf("failed to extract audio: %w", err)
	}
	return nil
}

// ProbeMetadata returns the ffprobe format and stream description of videoPath.
func (f *FFmpeg) ProbeMetadata(ctx context.Context, videoPath string) (map[string]any, error) {
	if err := requireFile(videoPath); err != nil {
		return nil, err
	}

	out, err := f.run(ctx, f.FFprobePath, probeArgs(videoPath))
	if err != nil {
		return nil, fmt.Errorf("failed to probe metadata: %w", err)
	}

	var metadata map[string]any
	if err := json.Unmarshal(out, &metadata); err != nil {
		return nil, fmt.Errorf("failed to decode ffprobe output: %w", err)
	}
	return metadata, nil
}

// ExtractThumbnail returns a PNG of the frame at the given offset in seconds,
// scaled to width with the aspect ratio kept.
func (f *FFmpeg) ExtractThumbnail(ctx context.Context, videoPath string, width int, at float64) ([]byte, error) {
	if width <= 0 {
		return nil, &apperr.ValidationError{Field: "width", Message: "must be positive"}
	}
	if err := requireFile(videoPath); err != nil {
		return nil, err
	}

	out, err := f.run(ctx, f.FFmpegPath, thumbnailArgs(videoPath, width, at))
	if err != nil {
		return nil, fmt.Errorf("failed to extract thumbnail at %gs: %w", at, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no frame at %gs in %s", at, videoPath)
	}
	return out, nil
}

func (f *FFmpeg) run(ctx context.Context, binary string, args []string) ([]byte, error) {
	if binary == "" {
		return nil, errors.New("binary path is not configured")
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s canceled: %w", binary, ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%s failed: %s", binary, msg)
	}
	return stdout.Bytes(), nil
}

func requireFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.NotFound(path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return nil
}

func extractAudioArgs(videoPath, audioPath string) []string {
	return []string{"-nostdin", "-hide_banner", "-loglevel", "error", "-n", "-i", videoPath, "-vn", audioPath}
}

func probeArgs(videoPath string) []string {
	return []string{"-v", "error", "-print_format", "json", "-show_format", "-show_streams", videoPath}
}

func thumbnailArgs(videoPath string, width int, at float64) []string {
	return []string{
		"-nostdin", "-hide_banner", "-loglevel", "error",
		"-ss", strconv.FormatFloat(at, 'f', -1, 64),
		"-i", videoPath,
		"-vf", fmt.Sprintf("scale=%d:-1", width),
		"-f", "image2",
		"-vcodec", "png",
		"-vframes", "1",
		"pipe:1",
	}
}
