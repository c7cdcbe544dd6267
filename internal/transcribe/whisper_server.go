package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"dashscribe/internal/apperr"
	"dashscribe/internal/contextutil"
)

// DefaultWeightsURL hosts ggml weights for the whisper.cpp server.
const DefaultWeightsURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// WhisperServer is an Engine backed by a whisper.cpp HTTP server.
type WhisperServer struct {
	BaseURL    string
	WeightsURL string
	client     *http.Client
}

// NewWhisperServer creates a new whisper.cpp server engine.
// An empty weightsURL disables downloading missing weights.
func NewWhisperServer(baseURL, weightsURL string) *WhisperServer {
	return &WhisperServer{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		WeightsURL: strings.TrimRight(weightsURL, "/"),
		client:     http.DefaultClient,
	}
}

// WeightsFile returns the ggml weights filename for a model identifier.
func WeightsFile(modelName string) string {
	if modelName == "large" {
		return "ggml-large-v3.bin"
	}
	return fmt.Sprintf("ggml-%s.bin", modelName)
}

// loadResponse is returned by the /load endpoint on failure.
type loadResponse struct {
	Error string `json:"error,omitempty"`
}

// LoadModel makes sure the weights are cached, then asks the server to load them.
func (w *WhisperServer) LoadModel(ctx context.Context, name, cacheDir string) (Model, error) {
	logger := contextutil.LoggerFromContext(ctx)

	weightsPath, err := w.ensureWeights(ctx, name, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrEngineUnavailable, err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", weightsPath); err != nil {
		return nil, fmt.Errorf("failed to build load request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build load request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.BaseURL+"/load", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to reach whisper server: %w", apperr.ErrEngineUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var lr loadResponse
		if json.Unmarshal(raw, &lr) == nil && lr.Error != "" {
			return nil, fmt.Errorf("%w: model load failed: %s", apperr.ErrEngineUnavailable, lr.Error)
		}
		return nil, fmt.Errorf("%w: bad status %d: %s", apperr.ErrEngineUnavailable, resp.StatusCode, string(raw))
	}

	logger.InfoContext(ctx, "speech model loaded", "model", name, "weights", weightsPath)
	return &whisperModel{server: w, name: name}, nil
}

// ensureWeights returns the cached weights path, downloading the file if it is missing.
func (w *WhisperServer) ensureWeights(ctx context.Context, name, cacheDir string) (string, error) {
	path := filepath.Join(cacheDir, WeightsFile(name))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to stat weights: %w", err)
	}

	if w.WeightsURL == "" {
		return "", fmt.Errorf("weights %s not cached and no download URL configured", path)
	}

	logger := contextutil.LoggerFromContext(ctx)
	url := fmt.Sprintf("%s/%s", w.WeightsURL, WeightsFile(name))
	logger.InfoContext(ctx, "downloading model weights", "url", url, "dest", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download weights: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download weights: bad status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create weights directory: %w", err)
	}
	tmp, err := os.CreateTemp(cacheDir, WeightsFile(name)+".*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create weights file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write weights: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write weights: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store weights: %w", err)
	}

	return path, nil
}

// whisperModel is a model loaded into a whisper.cpp server.
type whisperModel struct {
	server *WhisperServer
	name   string
}

// Transcribe uploads the audio file to /inference and decodes the verbose JSON response.
func (m *whisperModel) Transcribe(ctx context.Context, audioPath string, options map[string]any) (*RawResult, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFound(audioPath)
		}
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("failed to build inference request: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return nil, fmt.Errorf("failed to build inference request: %w", err)
	}

	// Sorted for a deterministic request body
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := mw.WriteField(k, fmt.Sprint(options[k])); err != nil {
			return nil, fmt.Errorf("failed to build inference request: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.server.BaseURL+"/inference", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := m.server.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var result RawResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}
