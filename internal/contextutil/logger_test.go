package contextutil

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerFromContext_Default(t *testing.T) {
	if got := LoggerFromContext(context.Background()); got != slog.Default() {
		t.Error("LoggerFromContext() should fall back to slog.Default()")
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil)).With("run_id", "abc")

	ctx := WithLogger(context.Background(), logger)
	LoggerFromContext(ctx).Info("hello")

	if !strings.Contains(buf.String(), "run_id=abc") {
		t.Errorf("logger from context lost attributes: %s", buf.String())
	}
}

func TestLoggerFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), loggerKey, "not a logger")
	if got := LoggerFromContext(ctx); got != slog.Default() {
		t.Error("LoggerFromContext() should ignore non-logger values")
	}
}
