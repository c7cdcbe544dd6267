package pipeline

import (
	"context"
	"time"

	"dashscribe/internal/apperr"
	"dashscribe/internal/contextutil"
)

// Stage names, in execution order.
const (
	StageExtractAudio  = "extract_audio"
	StageProbeMetadata = "probe_metadata"
	StageTranscribe    = "transcribe"
	StageThumbnail     = "thumbnail"
	StageParseGPS      = "parse_gps"
	StageFingerprint   = "fingerprint"
	StagePersist       = "persist"
)

// runStage runs fn as a named stage. The start, the elapsed time and any
// failure are logged on every exit path, panics included. Errors come back
// as *apperr.StageError.
func runStage(ctx context.Context, stage, path string, fn func(ctx context.Context) error) (err error) {
	logger := contextutil.LoggerFromContext(ctx).With("stage", stage, "path", path)
	start := time.Now()
	logger.DebugContext(ctx, "stage started")

	defer func() {
		elapsed := time.Since(start)
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "stage panicked", "duration", elapsed, "panic", r)
			panic(r)
		}
		if err != nil {
			logger.ErrorContext(ctx, "stage failed", "duration", elapsed, "error", err)
			err = &apperr.StageError{Stage: stage, Path: path, Err: err}
			return
		}
		logger.InfoContext(ctx, "stage completed", "duration", elapsed)
	}()

	return fn(ctx)
}
