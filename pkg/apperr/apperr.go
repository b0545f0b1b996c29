// Package apperr defines the error vocabulary shared by services and HTTP
// handlers. Handlers translate these values to status codes; anything not
// listed here is treated as an internal error and never surfaced verbatim.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("permission denied")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("content is already scheduled")
	ErrNotPending   = errors.New("can only update pending schedules")
)

// ValidationError reports malformed input, naming the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Forbidden wraps ErrForbidden with a human-readable reason. The reason must
// not leak internal identifiers.
func Forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}
