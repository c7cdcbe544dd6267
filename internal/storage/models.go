package storage

import (
	"database/sql"
	"math"
	"time"
)

// Video is an ingested dashcam recording, identified by its content checksum.
type Video struct {
	ID          int64
	Filename    string
	Path        string
	Checksum    string
	GPSFilename string
	Metadata    string // JSON text from the media probe
	CreatedAt   time.Time
}

// Audio is the audio track extracted from a video.
type Audio struct {
	ID        int64
	VideoID   int64
	Filename  string
	Checksum  string
	CreatedAt time.Time
}

// Transcription is one transcription run over an audio file.
type Transcription struct {
	ID        int64
	AudioID   int64
	RunID     string // UUID
	ModelName string
	Config    string // serialized transcription config
	CreatedAt time.Time
}

// TextSegment is a contiguous span of recognized speech.
type TextSegment struct {
	ID              int64
	TranscriptionID int64
	Text            string
	StartTime       float64
	EndTime         float64
	NoSpeechProb    float64
	Thumbnail       []byte // PNG, empty when not loaded
}

// WordSegment is a single normalized word inside a text segment.
type WordSegment struct {
	ID            int64
	TextSegmentID int64
	Word          string
	StartTime     float64
	EndTime       float64
	Probability   float64
}

// GPSPoint is one GPS log sample attached to a video.
// Missing readings are NaN in memory and NULL in the database.
type GPSPoint struct {
	ID           int64
	VideoID      int64
	RelativeTime float64
	UTCTime      float64
	Latitude     float64
	Longitude    float64
	AltitudeM    float32
	SpeedKmh     float32
}

// SegmentHit is a text segment matched by a search, with its source video.
type SegmentHit struct {
	SegmentID       int64
	TranscriptionID int64
	VideoID         int64
	Filename        string
	Text            string
	StartTime       float64
	EndTime         float64
}

// nullable maps NaN to NULL for insertion.
func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// orNaN maps NULL back to NaN.
func orNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
