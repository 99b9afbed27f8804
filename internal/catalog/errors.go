package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField marks a legacy metadata file that lacks a required field.
	ErrMissingField = errors.New("missing required field")
	// ErrLocked is returned when another writer holds the catalog lock past the timeout.
	ErrLocked = errors.New("catalog is locked by another writer")
	// ErrNotArray is returned when a catalog document is not a JSON array.
	ErrNotArray = errors.New("catalog is not a JSON array")
	// ErrNullRecord is returned when a catalog array holds null in place of a record.
	ErrNullRecord = errors.New("null catalog record")
)

// MetadataError identifies the legacy metadata file that failed to parse.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("parse metadata file %q: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }
