package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrExtraction        = errors.New("extraction failed")
	ErrClassification    = errors.New("classification failed")
	ErrStorage           = errors.New("storage failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

type userFacingError struct {
	kind error
	msg  string
}

// UserError builds an error of the given kind whose message is safe to return
// verbatim to API clients.
func UserError(kind error, msg string) error {
	return &userFacingError{kind: kind, msg: msg}
}

func (e *userFacingError) Error() string { return e.msg }

func (e *userFacingError) Unwrap() error { return e.kind }

// UserMessage reports whether err carries a client-safe message and returns it.
func UserMessage(err error) (string, bool) {
	var ue *userFacingError
	if errors.As(err, &ue) {
		return ue.msg, true
	}
	return "", false
}
