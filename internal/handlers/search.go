package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"dashscribe/internal/contextutil"
	"dashscribe/internal/storage"
)

// MaxSearchLimit bounds the limit query parameter.
const MaxSearchLimit = 500

// SearchHandler handles HTTP requests for transcript search.
type SearchHandler struct {
	store storage.QueryStore
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(store storage.QueryStore) *SearchHandler {
	return &SearchHandler{store: store}
}

// SearchHit is one matching text segment.
type SearchHit struct {
	SegmentID       int64   `json:"segment_id"`
	TranscriptionID int64   `json:"transcription_id"`
	VideoID         int64   `json:"video_id"`
	Filename        string  `json:"filename"`
	Text            string  `json:"text"`
	StartTime       float64 `json:"start_time"`
	EndTime         float64 `json:"end_time"`
	ThumbnailURL    string  `json:"thumbnail_url"`
}

// SearchResponse represents the search response.
type SearchResponse struct {
	Query string      `json:"query"`
	Hits  []SearchHit `json:"hits"`
}

// ServeHTTP searches segment text for the q query parameter.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(ctx, w, http.StatusBadRequest, "q is required")
		return
	}

	limit := storage.DefaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > MaxSearchLimit {
			writeError(ctx, w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	hits, err := h.store.SearchTextSegments(ctx, q, limit)
	if err != nil {
		handleStoreError(ctx, w, err, "Failed to search transcripts")
		return
	}

	resp := SearchResponse{Query: q, Hits: make([]SearchHit, 0, len(hits))}
	for _, hit := range hits {
		resp.Hits = append(resp.Hits, SearchHit{
			SegmentID:       hit.SegmentID,
			TranscriptionID: hit.TranscriptionID,
			VideoID:         hit.VideoID,
			Filename:        hit.Filename,
			Text:            hit.Text,
			StartTime:       hit.StartTime,
			EndTime:         hit.EndTime,
			ThumbnailURL:    "/api/segments/" + strconv.FormatInt(hit.SegmentID, 10) + "/thumbnail",
		})
	}

	logger.DebugContext(ctx, "search completed", "query", q, "hits", len(resp.Hits))
	writeJSON(ctx, w, http.StatusOK, resp)
}
