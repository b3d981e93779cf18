package documents

import "errors"

var (
	// ErrNotFound is returned when no document exists for an id.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput marks requests rejected before any work is done.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotArchived is returned when the original upload bytes were not kept.
	ErrNotArchived = errors.New("original file not archived")
)
