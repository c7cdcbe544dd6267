// Package transcribe wraps a speech-to-text engine and normalizes its output
// into text and word segments.
package transcribe

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks dashscribe/internal/transcribe Engine,Model

import "context"

// Engine loads speech-to-text models.
type Engine interface {
	// LoadModel loads the named model, fetching weights into cacheDir if needed.
	LoadModel(ctx context.Context, name, cacheDir string) (Model, error)
}

// Model transcribes audio files.
type Model interface {
	// Transcribe runs the model over the audio file with engine-specific options.
	Transcribe(ctx context.Context, audioPath string, options map[string]any) (*RawResult, error)
}

// RawResult is the engine-native transcription output.
type RawResult struct {
	Text     string       `json:"text"`
	Language string       `json:"language"`
	Segments []RawSegment `json:"segments"`
}

// RawSegment is one engine-native segment, including fields the adapter discards.
type RawSegment struct {
	ID               int       `json:"id"`
	Seek             float64   `json:"seek"`
	Start            float64   `json:"start"`
	End              float64   `json:"end"`
	Text             string    `json:"text"`
	Tokens           []int     `json:"tokens"`
	Temperature      float64   `json:"temperature"`
	AvgLogprob       float64   `json:"avg_logprob"`
	CompressionRatio float64   `json:"compression_ratio"`
	NoSpeechProb     float64   `json:"no_speech_prob"`
	Words            []RawWord `json:"words"`
}

// RawWord is one engine-native word timestamp.
type RawWord struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}
