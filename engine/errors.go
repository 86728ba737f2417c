package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a soil reading is missing, blank,
	// non-numeric or negative.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSeriesLengthMismatch is returned when trend series of different
	// lengths are reshaped into chart rows.
	ErrSeriesLengthMismatch = errors.New("series length mismatch")

	// ErrInvalidKnowledgeBase is returned when a crop catalog or location
	// table fails validation at load time.
	ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")
)

// InputError names the field that failed validation.
type InputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
