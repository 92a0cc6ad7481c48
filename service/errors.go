package service

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups of records that do not exist or do not belong to
// the requesting user. Checked with errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError marks malformed input. Checked with errors.As; nothing is
// persisted when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
