package store

import (
	"errors"
	"fmt"
)

var (
	ErrConflict    = errors.New("conflict")
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("store unavailable")
)

// ConflictError carries the store's own rejection message so callers can
// surface it verbatim. It matches errors.Is(err, ErrConflict).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message == "" {
		return ErrConflict.Error()
	}
	return e.Message
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// Unavailablef wraps a transport-level failure so it matches
// errors.Is(err, ErrUnavailable).
func Unavailablef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, fmt.Sprintf(format, args...))
}
