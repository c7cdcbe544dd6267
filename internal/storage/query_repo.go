package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_query_store.go -package=mocks dashscribe/internal/storage QueryStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// DefaultSearchLimit caps search results when no limit is given.
const DefaultSearchLimit = 50

// QueryStore defines the read operations used by the search API.
type QueryStore interface {
	// SearchTextSegments returns segments whose text contains q, case-insensitively.
	SearchTextSegments(ctx context.Context, q string, limit int) ([]SegmentHit, error)
	// GetVideo returns the video matching the lookup, or ErrNotFound.
	GetVideo(ctx context.Context, lookup Lookup) (*Video, error)
	// VideoPathByID returns the stored path of a video, or ErrNotFound.
	VideoPathByID(ctx context.Context, videoID int64) (string, error)
	// GPSPointsInWindow returns the video's points with start <= relative_time <= end.
	GPSPointsInWindow(ctx context.Context, videoID int64, start, end float64) ([]GPSPoint, error)
	// LatestTranscription returns the most recent transcription of a video, or ErrNotFound.
	LatestTranscription(ctx context.Context, videoID int64) (*Transcription, error)
	// TextSegmentsByTranscription returns segments ordered by start time, without thumbnails.
	TextSegmentsByTranscription(ctx context.Context, transcriptionID int64) ([]TextSegment, error)
	// WordSegmentsBySegment returns words ordered by start time.
	WordSegmentsBySegment(ctx context.Context, segmentID int64) ([]WordSegment, error)
	// Thumbnail returns a segment's PNG thumbnail, or ErrNotFound.
	Thumbnail(ctx context.Context, segmentID int64) ([]byte, error)
	// Stats returns row counts for every table.
	Stats(ctx context.Context) (*Stats, error)
	// Ping checks the database connection.
	Ping(ctx context.Context) error
}

// QueryRepo provides read-only queries over ingested data.
// It implements the QueryStore interface.
type QueryRepo struct {
	db *sql.DB
}

// NewQueryRepo creates a new QueryRepo.
func NewQueryRepo(db *sql.DB) *QueryRepo {
	return &QueryRepo{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchTextSegments returns segments whose text contains q, ordered by video and start time.
// A non-positive limit uses DefaultSearchLimit.
func (r *QueryRepo) SearchTextSegments(ctx context.Context, q string, limit int) ([]SegmentHit, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	pattern := "%" + likeEscaper.Replace(q) + "%"

	rows, err := r.db.QueryContext(ctx,
		`SELECT ts.id, ts.transcription_id, v.id, v.filename, ts.text, ts.start_time, ts.end_time
		 FROM text_segments ts
		 JOIN transcriptions t ON t.id = ts.transcription_id
		 JOIN audios a ON a.id = t.audio_id
		 JOIN videos v ON v.id = a.video_id
		 WHERE ts.text LIKE ? ESCAPE '\'
		 ORDER BY v.id, ts.start_time, ts.id
		 LIMIT ?`,
		pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search segments: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	hits := []SegmentHit{}
	for rows.Next() {
		var h SegmentHit
		if err := rows.Scan(&h.SegmentID, &h.TranscriptionID, &h.VideoID, &h.Filename, &h.Text, &h.StartTime, &h.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// GetVideo returns the video matching the lookup.
func (r *QueryRepo) GetVideo(ctx context.Context, lookup Lookup) (*Video, error) {
	if err := lookup.validate(); err != nil {
		return nil, err
	}
	return getVideo(ctx, r.db, lookup)
}

// VideoPathByID returns the stored path of a video.
func (r *QueryRepo) VideoPathByID(ctx context.Context, videoID int64) (string, error) {
	var path string
	err := r.db.QueryRowContext(ctx, "SELECT path FROM videos WHERE id = ?", videoID).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query video path: %w", err)
	}
	return path, nil
}

// GPSPointsInWindow returns the video's GPS points between start and end inclusive,
// ordered by relative time.
func (r *QueryRepo) GPSPointsInWindow(ctx context.Context, videoID int64, start, end float64) ([]GPSPoint, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, video_id, relative_time, utc_time, latitude, longitude, altitude_m, speed_kmh
		 FROM gps_points
		 WHERE video_id = ? AND relative_time >= ? AND relative_time <= ?
		 ORDER BY relative_time, id`,
		videoID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query gps points: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	points := []GPSPoint{}
	for rows.Next() {
		var p GPSPoint
		var rel, utc, lat, lon, alt, speed sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.VideoID, &rel, &utc, &lat, &lon, &alt, &speed); err != nil {
			return nil, fmt.Errorf("failed to scan gps point: %w", err)
		}
		p.RelativeTime = orNaN(rel)
		p.UTCTime = orNaN(utc)
		p.Latitude = orNaN(lat)
		p.Longitude = orNaN(lon)
		p.AltitudeM = float32(orNaN(alt))
		p.SpeedKmh = float32(orNaN(speed))
		points = append(points, p)
	}
	return points, rows.Err()
}

// LatestTranscription returns the most recently created transcription of a video.
func (r *QueryRepo) LatestTranscription(ctx context.Context, videoID int64) (*Transcription, error) {
	var t Transcription
	err := r.db.QueryRowContext(ctx,
		`SELECT t.id, t.audio_id, t.run_id, t.model_name, t.config, t.created_at
		 FROM transcriptions t
		 JOIN audios a ON a.id = t.audio_id
		 WHERE a.video_id = ?
		 ORDER BY t.id DESC
		 LIMIT 1`,
		videoID,
	).Scan(&t.ID, &t.AudioID, &t.RunID, &t.ModelName, &t.Config, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transcription: %w", err)
	}
	return &t, nil
}

// TextSegmentsByTranscription returns a transcription's segments ordered by start time.
func (r *QueryRepo) TextSegmentsByTranscription(ctx context.Context, transcriptionID int64) ([]TextSegment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, transcription_id, text, start_time, end_time, no_speech_prob
		 FROM text_segments
		 WHERE transcription_id = ?
		 ORDER BY start_time, id`,
		transcriptionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	segments := []TextSegment{}
	for rows.Next() {
		var s TextSegment
		if err := rows.Scan(&s.ID, &s.TranscriptionID, &s.Text, &s.StartTime, &s.EndTime, &s.NoSpeechProb); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		segments = append(segments, s)
	}
	return segments, rows.Err()
}

// WordSegmentsBySegment returns a segment's words ordered by start time.
func (r *QueryRepo) WordSegmentsBySegment(ctx context.Context, segmentID int64) ([]WordSegment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, text_segment_id, word, start_time, end_time, probability
		 FROM word_segments
		 WHERE text_segment_id = ?
		 ORDER BY start_time, id`,
		segmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	words := []WordSegment{}
	for rows.Next() {
		var w WordSegment
		if err := rows.Scan(&w.ID, &w.TextSegmentID, &w.Word, &w.StartTime, &w.EndTime, &w.Probability); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// Thumbnail returns a segment's PNG thumbnail.
// Segments stored without a thumbnail return ErrNotFound.
func (r *QueryRepo) Thumbnail(ctx context.Context, segmentID int64) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, "SELECT thumbnail FROM text_segments WHERE id = ?", segmentID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query thumbnail: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	return data, nil
}

// Ping checks the database connection.
func (r *QueryRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
