package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"dashscribe/internal/apperr"
	"dashscribe/internal/gps"
	"dashscribe/internal/pipeline"
	"dashscribe/internal/transcribe"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath     string
	SchemaPath string // empty means the embedded schema

	WhisperURL        string
	WhisperModel      string
	WhisperModelDir   string
	WhisperWeightsURL string
	WhisperOptions    map[string]any

	GPSVariant     string
	ThumbnailWidth int

	FFmpegPath  string
	FFprobePath string

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates every field before
// touching the filesystem.
// If a .env file exists in the current directory or a parent, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		DBPath:            getEnv("DB_PATH", "./data/dashscribe.db"),
		SchemaPath:        getEnv("SCHEMA_PATH", ""),
		WhisperURL:        getEnv("WHISPER_URL", "http://localhost:8178"),
		WhisperModel:      getEnv("WHISPER_MODEL", transcribe.DefaultModelName),
		WhisperModelDir:   getEnv("WHISPER_MODEL_DIR", "./data/models"),
		WhisperWeightsURL: getEnv("WHISPER_WEIGHTS_URL", transcribe.DefaultWeightsURL),
		GPSVariant:        getEnv("GPS_VARIANT", string(gps.TrackAddict)),
		FFmpegPath:        getEnv("FFMPEG_PATH", ""),
		FFprobePath:       getEnv("FFPROBE_PATH", ""),
		APIPort:           getEnv("API_PORT", "9000"),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if !slices.Contains(transcribe.ValidModelNames, cfg.WhisperModel) {
		return nil, &apperr.ValidationError{
			Field:   "WHISPER_MODEL",
			Message: fmt.Sprintf("unknown model %q, valid model names are %s", cfg.WhisperModel, strings.Join(transcribe.ValidModelNames, ", ")),
		}
	}

	cfg.WhisperOptions = map[string]any{}
	if raw := getEnv("WHISPER_OPTIONS", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.WhisperOptions); err != nil || cfg.WhisperOptions == nil {
			return nil, &apperr.ValidationError{Field: "WHISPER_OPTIONS", Message: "must be a JSON object"}
		}
	}

	if _, err := gps.ParseVariant(cfg.GPSVariant); err != nil {
		return nil, fmt.Errorf("GPS_VARIANT: %w", err)
	}

	width, err := strconv.Atoi(getEnv("THUMBNAIL_WIDTH", strconv.Itoa(pipeline.DefaultThumbnailWidth)))
	if err != nil {
		return nil, &apperr.ValidationError{Field: "THUMBNAIL_WIDTH", Message: "must be a valid integer"}
	}
	if width <= 0 {
		return nil, &apperr.ValidationError{Field: "THUMBNAIL_WIDTH", Message: "must be greater than 0"}
	}
	cfg.ThumbnailWidth = width

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, &apperr.ValidationError{Field: "LOG_LEVEL", Message: err.Error()}
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, &apperr.ValidationError{Field: "LOG_FORMAT", Message: `must be "text" or "json"`}
	}

	// Create the data directory for the DB file
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads .env from the working directory, then the first .env found
// walking up at most five parents. Missing files are ignored.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
