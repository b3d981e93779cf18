package extract

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType matches every UnsupportedTypeError via errors.Is.
var ErrUnsupportedType = errors.New("unsupported content type")

// UnsupportedTypeError reports a content type no parser is registered for.
type UnsupportedTypeError struct {
	ContentType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported content type: %s", e.ContentType)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// ExtractionError wraps a parser failure on malformed input.
type ExtractionError struct {
	ContentType string
	Err         error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.ContentType, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
