package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"dashscribe/internal/apperr"
	"dashscribe/internal/transcribe"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

var envVars = []string{
	"DB_PATH", "SCHEMA_PATH",
	"WHISPER_URL", "WHISPER_MODEL", "WHISPER_MODEL_DIR", "WHISPER_WEIGHTS_URL", "WHISPER_OPTIONS",
	"GPS_VARIANT", "THUMBNAIL_WIDTH", "FFMPEG_PATH", "FFPROBE_PATH",
	"API_PORT", "LOG_LEVEL", "LOG_FORMAT",
}

// isolateEnv clears every config variable and moves into an empty directory so
// no .env file is picked up. Both are restored when the test ends.
func isolateEnv(t *testing.T) {
	t.Helper()

	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	originalWd, _ := os.Getwd()
	_ = os.Chdir(t.TempDir())

	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name:     "default values",
			setupEnv: func(t *testing.T) {},
			checkConfig: func(cfg *Config) bool {
				return cfg.DBPath == "./data/dashscribe.db" &&
					cfg.SchemaPath == "" &&
					cfg.WhisperURL == "http://localhost:8178" &&
					cfg.WhisperModel == transcribe.DefaultModelName &&
					cfg.WhisperModelDir == "./data/models" &&
					cfg.WhisperWeightsURL == transcribe.DefaultWeightsURL &&
					len(cfg.WhisperOptions) == 0 && cfg.WhisperOptions != nil &&
					cfg.GPSVariant == "track_addict" &&
					cfg.ThumbnailWidth == 300 &&
					cfg.APIPort == "9000" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text"
			},
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "custom", "db.db"))
				setEnv("WHISPER_URL", "http://whisper:9090")
				setEnv("WHISPER_MODEL", "medium.en")
				setEnv("WHISPER_OPTIONS", `{"language":"en","temperature":0.2}`)
				setEnv("THUMBNAIL_WIDTH", "480")
				setEnv("FFMPEG_PATH", "/opt/bin/ffmpeg")
				setEnv("LOG_LEVEL", "DEBUG")
				setEnv("LOG_FORMAT", "JSON")
			},
			checkConfig: func(cfg *Config) bool {
				return filepath.Base(cfg.DBPath) == "db.db" &&
					cfg.WhisperURL == "http://whisper:9090" &&
					cfg.WhisperModel == "medium.en" &&
					cfg.WhisperOptions["language"] == "en" &&
					cfg.WhisperOptions["temperature"] == 0.2 &&
					cfg.ThumbnailWidth == 480 &&
					cfg.FFmpegPath == "/opt/bin/ffmpeg" &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json"
			},
		},
		{
			name:     "unknown whisper model",
			setupEnv: func(t *testing.T) { setEnv("WHISPER_MODEL", "huge") },
			wantErr:  true,
		},
		{
			name:     "whisper options not an object",
			setupEnv: func(t *testing.T) { setEnv("WHISPER_OPTIONS", `["en"]`) },
			wantErr:  true,
		},
		{
			name:     "whisper options null",
			setupEnv: func(t *testing.T) { setEnv("WHISPER_OPTIONS", `null`) },
			wantErr:  true,
		},
		{
			name:     "unsupported gps variant",
			setupEnv: func(t *testing.T) { setEnv("GPS_VARIANT", "garmin") },
			wantErr:  true,
		},
		{
			name:     "invalid thumbnail width",
			setupEnv: func(t *testing.T) { setEnv("THUMBNAIL_WIDTH", "wide") },
			wantErr:  true,
		},
		{
			name:     "zero thumbnail width",
			setupEnv: func(t *testing.T) { setEnv("THUMBNAIL_WIDTH", "0") },
			wantErr:  true,
		},
		{
			name:     "invalid log level",
			setupEnv: func(t *testing.T) { setEnv("LOG_LEVEL", "chatty") },
			wantErr:  true,
		},
		{
			name:     "invalid log format",
			setupEnv: func(t *testing.T) { setEnv("LOG_FORMAT", "xml") },
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if cfg == nil {
				t.Fatal("Load() returned nil config")
			}

			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_ValidationErrorsAreInvalidConfig(t *testing.T) {
	isolateEnv(t)
	setEnv("THUMBNAIL_WIDTH", "-5")

	_, err := Load()
	if !errors.Is(err, apperr.ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_UnsupportedVariantError(t *testing.T) {
	isolateEnv(t)
	setEnv("GPS_VARIANT", "garmin")

	_, err := Load()
	if !errors.Is(err, apperr.ErrUnsupportedVariant) {
		t.Errorf("Load() error = %v, want ErrUnsupportedVariant", err)
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	isolateEnv(t)

	dbPath := filepath.Join(t.TempDir(), "test", "db.db")
	setEnv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}

	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestLoad_InvalidConfigCreatesNothing(t *testing.T) {
	isolateEnv(t)

	dbDir := filepath.Join(t.TempDir(), "never")
	setEnv("DB_PATH", filepath.Join(dbDir, "db.db"))
	setEnv("LOG_FORMAT", "xml")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error, got nil")
	}
	if _, err := os.Stat(dbDir); !os.IsNotExist(err) {
		t.Errorf("Load() with invalid config should not create %s", dbDir)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	isolateEnv(t)

	wd, _ := os.Getwd()
	nested := filepath.Join(wd, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	env := "API_PORT=9123\nTHUMBNAIL_WIDTH=640\n"
	if err := os.WriteFile(filepath.Join(wd, ".env"), []byte(env), 0644); err != nil {
		t.Fatal(err)
	}
	_ = os.Chdir(nested)
	// Explicit env wins over .env
	setEnv("THUMBNAIL_WIDTH", "320")
	t.Cleanup(func() {
		unsetEnv("API_PORT")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "9123" {
		t.Errorf("Load() APIPort = %v, want 9123 from .env", cfg.APIPort)
	}
	if cfg.ThumbnailWidth != 320 {
		t.Errorf("Load() ThumbnailWidth = %v, want 320 from environment", cfg.ThumbnailWidth)
	}
}

func TestGetEnv(t *testing.T) {
	originalValue := os.Getenv("TEST_ENV_VAR")
	defer func() {
		if originalValue != "" {
			setEnv("TEST_ENV_VAR", originalValue)
		} else {
			unsetEnv("TEST_ENV_VAR")
		}
	}()

	tests := []struct {
		name         string
		setupEnv     func()
		key          string
		defaultValue string
		want         string
	}{
		{
			name: "env var set",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "set-value")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "set-value",
		},
		{
			name: "env var not set",
			setupEnv: func() {
				unsetEnv("TEST_ENV_VAR")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
		{
			name: "empty env var uses default",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}
