package handlers

import (
	"net/http"

	"dashscribe/internal/storage"
)

// StatsHandler serves library statistics.
type StatsHandler struct {
	store storage.QueryStore
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(store storage.QueryStore) *StatsHandler {
	return &StatsHandler{store: store}
}

// ServeHTTP handles GET /api/stats.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.store.Stats(ctx)
	if err != nil {
		handleStoreError(ctx, w, err, "Failed to compute stats")
		return
	}
	writeJSON(ctx, w, http.StatusOK, stats)
}
