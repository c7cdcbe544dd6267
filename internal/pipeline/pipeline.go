// Package pipeline ingests a dashcam recording into the store: it extracts
// audio, transcribes it, thumbnails every segment, normalizes the GPS log and
// saves the whole record graph in one transaction.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"dashscribe/internal/apperr"
	"dashscribe/internal/contextutil"
	"dashscribe/internal/fingerprint"
	"dashscribe/internal/gps"
	"dashscribe/internal/media"
	"dashscribe/internal/storage"
	"dashscribe/internal/transcribe"
)

// DefaultThumbnailWidth is the thumbnail width in pixels when none is configured.
const DefaultThumbnailWidth = 300

// Config holds the settings for one pipeline run.
type Config struct {
	Transcription  transcribe.Config
	GPSVariant     gps.Variant
	ThumbnailWidth int
}

// NewConfig validates the pipeline settings.
func NewConfig(transcription transcribe.Config, gpsVariant string, thumbnailWidth int) (Config, error) {
	if thumbnailWidth <= 0 {
		return Config{}, &apperr.ValidationError{
			Field:   "thumbnail_width",
			Message: fmt.Sprintf("must be positive, got %d", thumbnailWidth),
		}
	}
	transcription, err := transcribe.NewConfig(transcription.ModelName, transcription.DownloadRoot, transcription.Options)
	if err != nil {
		return Config{}, err
	}
	variant, err := gps.ParseVariant(gpsVariant)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Transcription:  transcription,
		GPSVariant:     variant,
		ThumbnailWidth: thumbnailWidth,
	}, nil
}

// Job names the files of one recording.
type Job struct {
	VideoPath string
	AudioPath string
	GPSPath   string
}

func (j Job) validate() error {
	switch {
	case j.VideoPath == "":
		return &apperr.ValidationError{Field: "video_path", Message: "is required"}
	case j.AudioPath == "":
		return &apperr.ValidationError{Field: "audio_path", Message: "is required"}
	case j.GPSPath == "":
		return &apperr.ValidationError{Field: "gps_path", Message: "is required"}
	}
	return nil
}

// Pipeline orchestrates the ingestion of recordings.
type Pipeline struct {
	cfg         Config
	tool        media.Tool
	transcriber *transcribe.Transcriber
	store       storage.IngestStore
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(cfg Config, tool media.Tool, transcriber *transcribe.Transcriber, store storage.IngestStore) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		tool:        tool,
		transcriber: transcriber,
		store:       store,
	}
}

// Process ingests one recording. Stages run strictly in order and the first
// failure aborts the run with a *apperr.StageError. Nothing is written to the
// store unless every stage before persistence succeeded.
func (p *Pipeline) Process(ctx context.Context, job Job) (*storage.IngestResult, error) {
	if err := job.validate(); err != nil {
		return nil, err
	}

	logger := contextutil.LoggerFromContext(ctx).With("video", job.VideoPath)
	ctx = contextutil.WithLogger(ctx, logger)

	err := runStage(ctx, StageExtractAudio, job.AudioPath, func(ctx context.Context) error {
		// Presence only: an existing file is trusted as-is
		if _, err := os.Stat(job.AudioPath); err == nil {
			logger.InfoContext(ctx, "audio already extracted, skipping", "audio", job.AudioPath)
			return nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to stat audio: %w", err)
		}
		return p.tool.ExtractAudio(ctx, job.VideoPath, job.AudioPath)
	})
	if err != nil {
		return nil, err
	}

	var metadata string
	err = runStage(ctx, StageProbeMetadata, job.VideoPath, func(ctx context.Context) error {
		probed, err := p.tool.ProbeMetadata(ctx, job.VideoPath)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(probed)
		if err != nil {
			return fmt.Errorf("failed to serialize metadata: %w", err)
		}
		metadata = string(raw)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var segments []transcribe.Segment
	err = runStage(ctx, StageTranscribe, job.AudioPath, func(ctx context.Context) error {
		var err error
		segments, err = p.transcriber.Transcribe(ctx, job.AudioPath, p.cfg.Transcription)
		return err
	})
	if err != nil {
		return nil, err
	}

	thumbnails := make([][]byte, len(segments))
	err = runStage(ctx, StageThumbnail, job.VideoPath, func(ctx context.Context) error {
		for i, seg := range segments {
			img, err := p.tool.ExtractThumbnail(ctx, job.VideoPath, p.cfg.ThumbnailWidth, seg.Start)
			if err != nil {
				return fmt.Errorf("segment %d: %w", i, err)
			}
			thumbnails[i] = img
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var points []gps.Point
	err = runStage(ctx, StageParseGPS, job.GPSPath, func(ctx context.Context) error {
		var err error
		points, err = gps.Parse(job.GPSPath, p.cfg.GPSVariant)
		return err
	})
	if err != nil {
		return nil, err
	}

	var videoSum, audioSum string
	err = runStage(ctx, StageFingerprint, job.VideoPath, func(ctx context.Context) error {
		var err error
		if videoSum, err = fingerprint.File(job.VideoPath); err != nil {
			return err
		}
		audioSum, err = fingerprint.File(job.AudioPath)
		return err
	})
	if err != nil {
		return nil, err
	}

	var result *storage.IngestResult
	err = runStage(ctx, StagePersist, job.VideoPath, func(ctx context.Context) error {
		payload, err := p.buildPayload(job, metadata, videoSum, audioSum, segments, thumbnails, points)
		if err != nil {
			return err
		}
		result, err = p.store.SaveIngestion(ctx, payload)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "recording ingested",
		"video_id", result.VideoID,
		"transcription_id", result.TranscriptionID,
		"segments", result.Segments,
		"words", result.Words,
		"gps_points", result.GPSPoints,
		"video_created", result.VideoCreated,
	)
	return result, nil
}

func (p *Pipeline) buildPayload(
	job Job,
	metadata, videoSum, audioSum string,
	segments []transcribe.Segment,
	thumbnails [][]byte,
	points []gps.Point,
) (*storage.IngestPayload, error) {
	config, err := p.cfg.Transcription.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize transcription config: %w", err)
	}
	videoPath, err := filepath.Abs(job.VideoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve video path: %w", err)
	}

	payload := &storage.IngestPayload{
		Video: storage.VideoDescriptor{
			Filename:    filepath.Base(job.VideoPath),
			Path:        videoPath,
			Checksum:    videoSum,
			GPSFilename: filepath.Base(job.GPSPath),
			Metadata:    metadata,
		},
		Audio: storage.AudioDescriptor{
			Filename: filepath.Base(job.AudioPath),
			Checksum: audioSum,
		},
		Transcription: storage.TranscriptionDescriptor{
			RunID:     uuid.New().String(),
			ModelName: p.cfg.Transcription.ModelName,
			Config:    config,
		},
		Segments:  make([]storage.SegmentPayload, 0, len(segments)),
		GPSPoints: make([]storage.GPSPoint, 0, len(points)),
	}

	for i, seg := range segments {
		words := make([]storage.WordPayload, 0, len(seg.Words))
		for _, w := range seg.Words {
			words = append(words, storage.WordPayload{
				Word:        w.Word,
				Start:       w.Start,
				End:         w.End,
				Probability: w.Probability,
			})
		}
		payload.Segments = append(payload.Segments, storage.SegmentPayload{
			Text:         seg.Text,
			Start:        seg.Start,
			End:          seg.End,
			NoSpeechProb: seg.NoSpeechProb,
			Thumbnail:    thumbnails[i],
			Words:        words,
		})
	}

	for _, pt := range points {
		payload.GPSPoints = append(payload.GPSPoints, storage.GPSPoint{
			RelativeTime: pt.RelativeTime,
			UTCTime:      pt.UTCTime,
			Latitude:     pt.Latitude,
			Longitude:    pt.Longitude,
			AltitudeM:    pt.AltitudeM,
			SpeedKmh:     pt.SpeedKmh,
		})
	}

	return payload, nil
}

// ProcessAll ingests jobs one after another.
// Errors for individual recordings are logged but don't stop the run.
func (p *Pipeline) ProcessAll(ctx context.Context, jobs []Job) ([]*storage.IngestResult, error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "starting ingestion", "total_recordings", len(jobs))

	results := make([]*storage.IngestResult, 0, len(jobs))
	var errorCount int

	for _, job := range jobs {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		result, err := p.Process(ctx, job)
		if err != nil {
			errorCount++
			logger.ErrorContext(ctx, "failed to ingest recording", "video", job.VideoPath, "error", err)
			continue
		}
		results = append(results, result)
	}

	logger.InfoContext(ctx, "ingestion completed", "total_recordings", len(jobs), "success", len(results), "errors", errorCount)

	if errorCount > 0 {
		return results, fmt.Errorf("ingestion completed with %d errors", errorCount)
	}
	return results, nil
}
