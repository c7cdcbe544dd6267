package handlers

import (
	"math"
	"net/http"

	"dashscribe/internal/storage"
)

// VideoHandler serves the stored path of a video.
type VideoHandler struct {
	store storage.QueryStore
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(store storage.QueryStore) *VideoHandler {
	return &VideoHandler{store: store}
}

// VideoResponse represents a video path lookup.
type VideoResponse struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
}

// ServeHTTP handles GET /api/videos/{id}.
func (h *VideoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idParam(r, "id")
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	path, err := h.store.VideoPathByID(ctx, id)
	if err != nil {
		handleStoreError(ctx, w, err, "Failed to look up video")
		return
	}

	writeJSON(ctx, w, http.StatusOK, VideoResponse{ID: id, Path: path})
}

// GPSHandler serves GPS points for a time window of a video.
type GPSHandler struct {
	store storage.QueryStore
}

// NewGPSHandler creates a new GPSHandler.
func NewGPSHandler(store storage.QueryStore) *GPSHandler {
	return &GPSHandler{store: store}
}

// GPSPoint is one GPS sample in a response. Readings missing from the
// source log are null.
type GPSPoint struct {
	RelativeTime *float64 `json:"relative_time"`
	UTCTime      *float64 `json:"utc_time"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	AltitudeM    *float32 `json:"altitude_m"`
	SpeedKmh     *float32 `json:"speed_kmh"`
}

// reading returns nil for NaN, which JSON cannot carry.
func reading[T float32 | float64](v T) *T {
	if math.IsNaN(float64(v)) {
		return nil
	}
	return &v
}

// GPSResponse represents the GPS window response.
type GPSResponse struct {
	VideoID int64      `json:"video_id"`
	Start   float64    `json:"start"`
	End     float64    `json:"end"`
	Points  []GPSPoint `json:"points"`
}

// ServeHTTP handles GET /api/videos/{id}/gps?start=&end=.
// Missing bounds select the whole recording.
func (h *GPSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idParam(r, "id")
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	start, err := floatQuery(r, "start", 0)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := floatQuery(r, "end", math.MaxFloat64)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	if start > end {
		writeError(ctx, w, http.StatusBadRequest, "start must not be after end")
		return
	}

	points, err := h.store.GPSPointsInWindow(ctx, id, start, end)
	if err != nil {
		handleStoreError(ctx, w, err, "Failed to query GPS points")
		return
	}

	resp := GPSResponse{VideoID: id, Start: start, End: end, Points: make([]GPSPoint, 0, len(points))}
	for _, p := range points {
		resp.Points = append(resp.Points, GPSPoint{
			RelativeTime: reading(p.RelativeTime),
			UTCTime:      reading(p.UTCTime),
			Latitude:     reading(p.Latitude),
			Longitude:    reading(p.Longitude),
			AltitudeM:    reading(p.AltitudeM),
			SpeedKmh:     reading(p.SpeedKmh),
		})
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// ThumbnailHandler serves segment thumbnails as PNG.
type ThumbnailHandler struct {
	store storage.QueryStore
}

// NewThumbnailHandler creates a new ThumbnailHandler.
func NewThumbnailHandler(store storage.QueryStore) *ThumbnailHandler {
	return &ThumbnailHandler{store: store}
}

// ServeHTTP handles GET /api/segments/{id}/thumbnail.
func (h *ThumbnailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idParam(r, "id")
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	img, err := h.store.Thumbnail(ctx, id)
	if err != nil {
		handleStoreError(ctx, w, err, "Failed to load thumbnail")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
