// Package apperr defines the error taxonomy shared by the ingestion pipeline,
// its collaborators, and the repository.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an input file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidConfig is returned when a run configuration fails validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrEngineUnavailable is returned when the speech engine cannot be loaded.
	ErrEngineUnavailable = errors.New("speech engine unavailable")
	// ErrUnsupportedVariant is returned for an unknown GPS source format.
	ErrUnsupportedVariant = errors.New("unsupported gps variant")
	// ErrAmbiguousQuery is returned when a repository lookup does not name exactly one selector.
	ErrAmbiguousQuery = errors.New("ambiguous query")
	// ErrPersistence is returned when an ingestion commit fails and was rolled back.
	ErrPersistence = errors.New("persistence failed")
)

// ValidationError represents a configuration validation error with a field name.
// It matches ErrInvalidConfig under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets callers test validation failures against ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// StageError records which pipeline stage failed and on which file.
type StageError struct {
	Stage string
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("stage %q: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("stage %q (%s): %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NotFound returns an ErrNotFound wrapped with the missing path.
func NotFound(path string) error {
	return fmt.Errorf("%w at %s", ErrNotFound, path)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
