// Package gps normalizes device-specific GPS logs into a common point format.
package gps

import (
	"fmt"
	"slices"

	"dashscribe/internal/apperr"
)

// Variant identifies the device or app that produced a GPS log.
type Variant string

const (
	// TrackAddict logs are CSV exports from the TrackAddict app.
	TrackAddict Variant = "track_addict"
)

// Point is one normalized GPS sample. Readings missing from the log are NaN.
type Point struct {
	RelativeTime float64 `json:"relative_time"`
	UTCTime      float64 `json:"utc_time"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	AltitudeM    float32 `json:"altitude_m"`
	SpeedKmh     float32 `json:"speed_kmh"`
}

// field is a normalized Point attribute.
type field int

const (
	fieldRelativeTime field = iota
	fieldUTCTime
	fieldLatitude
	fieldLongitude
	fieldAltitude
	fieldSpeed
)

var fieldNames = [...]string{
	fieldRelativeTime: "relative_time",
	fieldUTCTime:      "utc_time",
	fieldLatitude:     "latitude",
	fieldLongitude:    "longitude",
	fieldAltitude:     "altitude_m",
	fieldSpeed:        "speed_kmh",
}

// format describes how a variant lays out its log.
type format struct {
	comment rune
	columns map[string]field
}

var registry = map[Variant]format{
	TrackAddict: {
		comment: '#',
		columns: map[string]field{
			"Time":         fieldRelativeTime,
			"UTC Time":     fieldUTCTime,
			"Latitude":     fieldLatitude,
			"Longitude":    fieldLongitude,
			"Altitude (m)": fieldAltitude,
			"Speed (Km/h)": fieldSpeed,
		},
	},
}

// Variants returns the supported variant tags, sorted.
func Variants() []Variant {
	out := make([]Variant, 0, len(registry))
	for v := range registry {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// ParseVariant validates a variant tag.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if _, ok := registry[v]; !ok {
		return "", fmt.Errorf("%w: %q", apperr.ErrUnsupportedVariant, s)
	}
	return v, nil
}
