package storage

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Stats contains row counts and coverage figures for the ingested library.
type Stats struct {
	Videos         int `json:"videos"`
	Audios         int `json:"audios"`
	Transcriptions int `json:"transcriptions"`
	TextSegments   int `json:"text_segments"`
	WordSegments   int `json:"word_segments"`
	GPSPoints      int `json:"gps_points"`
	// SegmentsWithoutWords counts segments that produced no word rows.
	SegmentsWithoutWords int `json:"segments_without_words"`
	// VideosWithoutGPS counts videos whose GPS log had no samples.
	VideosWithoutGPS int `json:"videos_without_gps"`
	// SegmentDuration summarizes end_time - start_time across all segments.
	SegmentDuration DurationStats `json:"segment_duration"`
}

// DurationStats summarizes a set of durations in seconds.
type DurationStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	P95  float64 `json:"p95"`
}

// Stats computes library statistics from the database.
func (r *QueryRepo) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		dest  *int
		query string
	}{
		{&stats.Videos, "SELECT COUNT(*) FROM videos"},
		{&stats.Audios, "SELECT COUNT(*) FROM audios"},
		{&stats.Transcriptions, "SELECT COUNT(*) FROM transcriptions"},
		{&stats.TextSegments, "SELECT COUNT(*) FROM text_segments"},
		{&stats.WordSegments, "SELECT COUNT(*) FROM word_segments"},
		{&stats.GPSPoints, "SELECT COUNT(*) FROM gps_points"},
		{&stats.SegmentsWithoutWords, `SELECT COUNT(*) FROM text_segments
			WHERE id NOT IN (SELECT DISTINCT text_segment_id FROM word_segments)`},
		{&stats.VideosWithoutGPS, `SELECT COUNT(*) FROM videos
			WHERE id NOT IN (SELECT DISTINCT video_id FROM gps_points)`},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}

	rows, err := r.db.QueryContext(ctx, "SELECT end_time - start_time FROM text_segments")
	if err != nil {
		return nil, fmt.Errorf("failed to query segment durations: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var durations []float64
	for rows.Next() {
		var d float64
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan duration: %w", err)
		}
		durations = append(durations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	stats.SegmentDuration = computeDurationStats(durations)
	return stats, nil
}

// computeDurationStats computes min, max, mean, and p95 from durations.
func computeDurationStats(durations []float64) DurationStats {
	if len(durations) == 0 {
		return DurationStats{}
	}

	sorted := make([]float64, len(durations))
	copy(sorted, durations)
	sort.Float64s(sorted)

	var sum float64
	for _, d := range sorted {
		sum += d
	}

	// Nearest-rank percentile
	p95Index := int(math.Ceil(0.95*float64(len(sorted)))) - 1
	if p95Index < 0 {
		p95Index = 0
	}

	return DurationStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: sum / float64(len(sorted)),
		P95:  sorted[p95Index],
	}
}
