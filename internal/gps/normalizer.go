package gps

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"dashscribe/internal/apperr"
)

// Parse reads a GPS log and returns its samples in file order.
// Blank cells and cells missing from short rows become NaN.
func Parse(path string, variant Variant) ([]Point, error) {
	f, ok := registry[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperr.ErrUnsupportedVariant, variant)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFound(path)
		}
		return nil, fmt.Errorf("failed to read gps log: %w", err)
	}

	points, err := f.read(strings.NewReader(stripComments(string(data), f.comment)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse gps log %s: %w", path, err)
	}
	return points, nil
}

// stripComments drops everything from the comment rune to the end of its
// line, unless the rune is inside a quoted field. Line breaks are kept so
// reader line numbers match the file.
func stripComments(data string, comment rune) string {
	var b strings.Builder
	b.Grow(len(data))

	inQuote, inComment := false, false
	for _, c := range data {
		switch {
		case c == '\n':
			inComment = false
			b.WriteRune(c)
		case inComment:
		case c == '"':
			inQuote = !inQuote
			b.WriteRune(c)
		case c == comment && !inQuote:
			inComment = true
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// blank reports whether every field of a record is empty or whitespace.
func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// nextRecord returns the next record that has at least one non-blank field.
func nextRecord(cr *csv.Reader) ([]string, error) {
	for {
		record, err := cr.Read()
		if err != nil {
			return nil, err
		}
		if !blank(record) {
			return record, nil
		}
	}
}

func (f format) read(r io.Reader) ([]Point, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := nextRecord(cr)
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, err
	}

	// index[field] is the column position of each normalized field
	var index [len(fieldNames)]int
	for i := range index {
		index[i] = -1
	}
	for pos, name := range header {
		if fld, ok := f.columns[strings.TrimSpace(name)]; ok {
			index[fld] = pos
		}
	}
	for fld, pos := range index {
		if pos < 0 {
			return nil, fmt.Errorf("missing column for %s", fieldNames[fld])
		}
	}

	points := []Point{}
	for {
		record, err := nextRecord(cr)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		var values [len(fieldNames)]float64
		for fld, pos := range index {
			raw := ""
			if pos < len(record) {
				raw = strings.TrimSpace(record[pos])
			}
			if raw == "" {
				values[fld] = math.NaN()
				continue
			}
			bits := 64
			if field(fld) == fieldAltitude || field(fld) == fieldSpeed {
				bits = 32
			}
			v, err := strconv.ParseFloat(raw, bits)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid %s %q", line, fieldNames[fld], record[pos])
			}
			values[fld] = v
		}

		points = append(points, Point{
			RelativeTime: values[fieldRelativeTime],
			UTCTime:      values[fieldUTCTime],
			Latitude:     values[fieldLatitude],
			Longitude:    values[fieldLongitude],
			AltitudeM:    float32(values[fieldAltitude]),
			SpeedKmh:     float32(values[fieldSpeed]),
		})
	}
	return points, nil
}
