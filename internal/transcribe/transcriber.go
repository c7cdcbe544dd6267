package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strings"

	"dashscribe/internal/apperr"
	"dashscribe/internal/contextutil"
)

// Segment is a normalized text segment with its words.
type Segment struct {
	Text         string  `json:"text"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	NoSpeechProb float64 `json:"no_speech_prob"`
	Words        []Word  `json:"words"`
}

// Word is a normalized word token with its timing and confidence.
type Word struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}

// removedChars holds ASCII punctuation except the apostrophe, plus ASCII whitespace.
const removedChars = "!\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~" + " \t\n\r\v\f"

// NormalizeWord deletes punctuation (apostrophes kept) and whitespace anywhere in the token.
func NormalizeWord(word string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(removedChars, r) {
			return -1
		}
		return r
	}, word)
}

// Transcriber adapts an Engine to the normalized segment format.
type Transcriber struct {
	engine Engine
}

// NewTranscriber creates a new Transcriber.
func NewTranscriber(engine Engine) *Transcriber {
	return &Transcriber{engine: engine}
}

// Transcribe loads the configured model and transcribes the audio file.
// Word timestamps are always requested.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string, cfg Config) ([]Segment, error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "transcribing audio", "path", audioPath, "model", cfg.ModelName)

	if _, err := os.Stat(audioPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.ErrorContext(ctx, "audio file not found", "path", audioPath)
			return nil, apperr.NotFound(audioPath)
		}
		return nil, fmt.Errorf("failed to stat audio file: %w", err)
	}

	model, err := t.engine.LoadModel(ctx, cfg.ModelName, cfg.DownloadRoot)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load speech model", "model", cfg.ModelName, "error", err)
		if errors.Is(err, apperr.ErrEngineUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", apperr.ErrEngineUnavailable, err)
	}

	options := make(map[string]any, len(cfg.Options)+1)
	maps.Copy(options, cfg.Options)
	options["word_timestamps"] = true

	raw, err := model.Transcribe(ctx, audioPath, options)
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe %s: %w", audioPath, err)
	}
	if raw == nil {
		return nil, nil
	}

	segments := Normalize(raw.Segments)
	logger.DebugContext(ctx, "transcription normalized", "segments", len(segments), "language", raw.Language)
	return segments, nil
}

// Normalize keeps start, end, text, no-speech probability and words for each
// segment, and normalizes every word token.
func Normalize(raw []RawSegment) []Segment {
	segments := make([]Segment, 0, len(raw))
	for _, rs := range raw {
		words := make([]Word, 0, len(rs.Words))
		for _, rw := range rs.Words {
			words = append(words, Word{
				Word:        NormalizeWord(rw.Word),
				Start:       rw.Start,
				End:         rw.End,
				Probability: rw.Probability,
			})
		}
		segments = append(segments, Segment{
			Text:         rs.Text,
			Start:        rs.Start,
			End:          rs.End,
			NoSpeechProb: rs.NoSpeechProb,
			Words:        words,
		})
	}
	return segments
}
