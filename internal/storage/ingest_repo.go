package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ingest_store.go -package=mocks dashscribe/internal/storage IngestStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dashscribe/internal/apperr"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// Lookup selects a single record by exactly one of ID or Checksum.
type Lookup struct {
	ID       int64
	Checksum string
}

func (l Lookup) validate() error {
	hasID := l.ID != 0
	hasChecksum := l.Checksum != ""
	if hasID == hasChecksum {
		return fmt.Errorf("%w: exactly one of id or checksum must be given", apperr.ErrAmbiguousQuery)
	}
	return nil
}

// VideoDescriptor describes the video half of an ingestion.
type VideoDescriptor struct {
	Filename    string
	Path        string
	Checksum    string
	GPSFilename string
	Metadata    string
}

// AudioDescriptor describes the extracted audio file.
type AudioDescriptor struct {
	Filename string
	Checksum string
}

// TranscriptionDescriptor describes one transcription run.
type TranscriptionDescriptor struct {
	RunID     string
	ModelName string
	Config    string
}

// WordPayload is a word to be stored under a segment.
type WordPayload struct {
	Word        string
	Start       float64
	End         float64
	Probability float64
}

// SegmentPayload is a text segment with its words and thumbnail.
type SegmentPayload struct {
	Text         string
	Start        float64
	End          float64
	NoSpeechProb float64
	Thumbnail    []byte
	Words        []WordPayload
}

// IngestPayload is the complete record graph for one ingestion.
// GPS points are stored as given; their ID and VideoID fields are ignored.
type IngestPayload struct {
	Video         VideoDescriptor
	Audio         AudioDescriptor
	Transcription TranscriptionDescriptor
	Segments      []SegmentPayload
	GPSPoints     []GPSPoint
}

// IngestResult reports the rows resolved or created by SaveIngestion.
type IngestResult struct {
	VideoID         int64
	AudioID         int64
	TranscriptionID int64
	VideoCreated    bool
	AudioCreated    bool
	Segments        int
	Words           int
	GPSPoints       int
}

// IngestStore defines the interface for ingestion writes.
type IngestStore interface {
	// GetVideo returns the video matching the lookup, or ErrNotFound.
	GetVideo(ctx context.Context, lookup Lookup) (*Video, error)
	// GetAudio returns the audio matching the lookup, or ErrNotFound.
	GetAudio(ctx context.Context, lookup Lookup) (*Audio, error)
	// SaveIngestion writes the payload in a single transaction.
	SaveIngestion(ctx context.Context, payload *IngestPayload) (*IngestResult, error)
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// IngestRepo provides methods for ingestion operations.
// It implements the IngestStore interface.
type IngestRepo struct {
	db *sql.DB
}

// NewIngestRepo creates a new IngestRepo.
func NewIngestRepo(db *sql.DB) *IngestRepo {
	return &IngestRepo{db: db}
}

const (
	videoColumns = "id, filename, path, checksum, gps_filename, metadata, created_at"
	audioColumns = "id, video_id, filename, checksum, created_at"
)

// GetVideo returns the video matching the lookup.
// Giving both or neither selectors returns ErrAmbiguousQuery.
func (r *IngestRepo) GetVideo(ctx context.Context, lookup Lookup) (*Video, error) {
	if err := lookup.validate(); err != nil {
		return nil, err
	}
	return getVideo(ctx, r.db, lookup)
}

// GetAudio returns the audio matching the lookup.
// Giving both or neither selectors returns ErrAmbiguousQuery.
func (r *IngestRepo) GetAudio(ctx context.Context, lookup Lookup) (*Audio, error) {
	if err := lookup.validate(); err != nil {
		return nil, err
	}
	return getAudio(ctx, r.db, lookup)
}

func getVideo(ctx context.Context, q queryer, lookup Lookup) (*Video, error) {
	column, arg := lookup.selector()

	var v Video
	err := q.QueryRowContext(ctx,
		"SELECT "+videoColumns+" FROM videos WHERE "+column+" = ?", arg,
	).Scan(&v.ID, &v.Filename, &v.Path, &v.Checksum, &v.GPSFilename, &v.Metadata, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.WrapError(err, "failed to query video")
	}
	return &v, nil
}

func getAudio(ctx context.Context, q queryer, lookup Lookup) (*Audio, error) {
	column, arg := lookup.selector()

	var a Audio
	err := q.QueryRowContext(ctx,
		"SELECT "+audioColumns+" FROM audios WHERE "+column+" = ?", arg,
	).Scan(&a.ID, &a.VideoID, &a.Filename, &a.Checksum, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.WrapError(err, "failed to query audio")
	}
	return &a, nil
}

func (l Lookup) selector() (string, any) {
	if l.ID != 0 {
		return "id", l.ID
	}
	return "checksum", l.Checksum
}

// SaveIngestion writes the whole payload in one transaction: it resolves or
// creates the video and audio by checksum, then inserts a new transcription
// with its segments, words and the GPS points. Any failure rolls back every
// write and returns an error matching apperr.ErrPersistence.
func (r *IngestRepo) SaveIngestion(ctx context.Context, payload *IngestPayload) (*IngestResult, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: nil payload", apperr.ErrPersistence)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", apperr.ErrPersistence, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := saveIngestion(ctx, tx, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrPersistence, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to commit: %w", apperr.ErrPersistence, err)
	}
	return result, nil
}

func saveIngestion(ctx context.Context, tx queryer, p *IngestPayload) (*IngestResult, error) {
	var result IngestResult

	videoID, created, err := resolveVideo(ctx, tx, p.Video)
	if err != nil {
		return nil, err
	}
	result.VideoID, result.VideoCreated = videoID, created

	audioID, created, err := resolveAudio(ctx, tx, videoID, p.Audio)
	if err != nil {
		return nil, err
	}
	result.AudioID, result.AudioCreated = audioID, created

	res, err := tx.ExecContext(ctx,
		"INSERT INTO transcriptions (audio_id, run_id, model_name, config) VALUES (?, ?, ?, ?)",
		audioID, p.Transcription.RunID, p.Transcription.ModelName, p.Transcription.Config,
	)
	if err != nil {
		return nil, apperr.WrapError(err, "failed to insert transcription")
	}
	if result.TranscriptionID, err = res.LastInsertId(); err != nil {
		return nil, apperr.WrapError(err, "failed to get transcription id")
	}

	for i, seg := range p.Segments {
		if seg.Start > seg.End {
			return nil, fmt.Errorf("segment %d: start %g is after end %g", i, seg.Start, seg.End)
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO text_segments (transcription_id, text, start_time, end_time, no_speech_prob, thumbnail)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			result.TranscriptionID, seg.Text, seg.Start, seg.End, seg.NoSpeechProb, seg.Thumbnail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert segment %d: %w", i, err)
		}
		segmentID, err := res.LastInsertId()
		if err != nil {
			return nil, apperr.WrapError(err, "failed to get segment id")
		}
		result.Segments++

		for j, w := range seg.Words {
			if w.Start > w.End {
				return nil, fmt.Errorf("segment %d word %d: start %g is after end %g", i, j, w.Start, w.End)
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO word_segments (text_segment_id, word, start_time, end_time, probability) VALUES (?, ?, ?, ?, ?)",
				segmentID, w.Word, w.Start, w.End, w.Probability,
			); err != nil {
				return nil, fmt.Errorf("failed to insert segment %d word %d: %w", i, j, err)
			}
			result.Words++
		}
	}

	for i, pt := range p.GPSPoints {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO gps_points (video_id, relative_time, utc_time, latitude, longitude, altitude_m, speed_kmh)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			videoID, nullable(pt.RelativeTime), nullable(pt.UTCTime), nullable(pt.Latitude), nullable(pt.Longitude),
			nullable(float64(pt.AltitudeM)), nullable(float64(pt.SpeedKmh)),
		); err != nil {
			return nil, fmt.Errorf("failed to insert gps point %d: %w", i, err)
		}
		result.GPSPoints++
	}

	return &result, nil
}

// resolveVideo returns the ID of the video with the descriptor's checksum,
// inserting it first if it does not exist.
func resolveVideo(ctx context.Context, q queryer, d VideoDescriptor) (int64, bool, error) {
	if d.Checksum == "" {
		return 0, false, errors.New("video checksum is empty")
	}

	existing, err := getVideo(ctx, q, Lookup{Checksum: d.Checksum})
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, false, err
	}

	metadata := d.Metadata
	if metadata == "" {
		metadata = "{}"
	}
	res, err := q.ExecContext(ctx,
		"INSERT INTO videos (filename, path, checksum, gps_filename, metadata) VALUES (?, ?, ?, ?, ?)",
		d.Filename, d.Path, d.Checksum, d.GPSFilename, metadata,
	)
	if err != nil {
		return 0, false, apperr.WrapError(err, "failed to insert video")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, apperr.WrapError(err, "failed to get video id")
	}
	return id, true, nil
}

// resolveAudio returns the ID of the audio with the descriptor's checksum,
// inserting it under videoID first if it does not exist.
func resolveAudio(ctx context.Context, q queryer, videoID int64, d AudioDescriptor) (int64, bool, error) {
	if d.Checksum == "" {
		return 0, false, errors.New("audio checksum is empty")
	}

	existing, err := getAudio(ctx, q, Lookup{Checksum: d.Checksum})
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, false, err
	}

	res, err := q.ExecContext(ctx,
		"INSERT INTO audios (video_id, filename, checksum) VALUES (?, ?, ?)",
		videoID, d.Filename, d.Checksum,
	)
	if err != nil {
		return 0, false, apperr.WrapError(err, "failed to insert audio")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, apperr.WrapError(err, "failed to get audio id")
	}
	return id, true, nil
}
