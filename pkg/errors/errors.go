// Package errors defines the sentinel errors surfaced by the search server and
// a small wrapper that attaches a human-readable message to a sentinel.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidID       = errors.New("invalid document id")
	ErrDuplicateID     = fmt.Errorf("%w: duplicate", ErrInvalidID)
	ErrInvalidText     = errors.New("invalid text")
	ErrInvalidQuery    = errors.New("invalid query")
	ErrUnknownDocument = errors.New("unknown document")
)

type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, message string) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: message,
	}
}

func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// Code maps an error to a short stable label, used for metrics and logs.
// Unknown errors map to "internal"; nil maps to "".
func Code(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrDuplicateID):
		return "duplicate_id"
	case errors.Is(err, ErrInvalidID):
		return "invalid_id"
	case errors.Is(err, ErrInvalidText):
		return "invalid_text"
	case errors.Is(err, ErrInvalidQuery):
		return "invalid_query"
	case errors.Is(err, ErrUnknownDocument):
		return "unknown_document"
	default:
		return "internal"
	}
}
