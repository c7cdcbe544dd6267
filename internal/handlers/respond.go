package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dashscribe/internal/apperr"
	"dashscribe/internal/contextutil"
	"dashscribe/internal/storage"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(ctx, w, status, ErrorResponse{Error: message})
}

// handleStoreError maps repository errors to HTTP status codes.
func handleStoreError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(ctx, w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, apperr.ErrAmbiguousQuery):
		writeError(ctx, w, http.StatusBadRequest, "Ambiguous query")
	default:
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "store error", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, defaultMsg)
	}
}

// idParam reads a positive integer route parameter.
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// floatQuery reads an optional float query parameter, returning def when absent.
func floatQuery(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}
