package transcribe

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"dashscribe/internal/apperr"
)

// ValidModelNames lists the model identifiers the engine accepts.
var ValidModelNames = []string{
	"tiny",
	"tiny.en",
	"base",
	"base.en",
	"small",
	"small.en",
	"medium",
	"medium.en",
	"large",
}

// DefaultModelName is used when no model is configured.
const DefaultModelName = "tiny.en"

// Config parameterizes one transcription run.
// It is serialized verbatim into the transcription row.
type Config struct {
	ModelName    string         `json:"model_name"`
	DownloadRoot string         `json:"download_location"`
	Options      map[string]any `json:"transcribe_kwargs"`
}

// NewConfig validates the model name and creates the weight cache directory if missing.
// Validation happens before any filesystem access.
func NewConfig(modelName, downloadRoot string, options map[string]any) (Config, error) {
	if !slices.Contains(ValidModelNames, modelName) {
		return Config{}, &apperr.ValidationError{
			Field:   "model_name",
			Message: fmt.Sprintf("invalid model name %q, valid model names are %s", modelName, strings.Join(ValidModelNames, ", ")),
		}
	}
	if downloadRoot == "" {
		downloadRoot = "."
	}
	if options == nil {
		options = map[string]any{}
	}

	if err := os.MkdirAll(downloadRoot, 0755); err != nil {
		return Config{}, fmt.Errorf("failed to create model download directory: %w", err)
	}

	return Config{
		ModelName:    modelName,
		DownloadRoot: downloadRoot,
		Options:      options,
	}, nil
}

// JSON returns the serialized configuration stored with each transcription.
func (c Config) JSON() (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal transcription config: %w", err)
	}
	return string(raw), nil
}
