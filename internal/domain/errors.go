package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped) by lookups that yield no match.
var ErrNotFound = errors.New("not found")

// ValidationError reports a raw record that could not be turned into a typed entity.
// The offending record is skipped and reported as a warning; the batch continues.
type ValidationError struct {
	Entity string
	ID     int
	Field  string
	Value  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s id=%d: field %s has value %q", e.Entity, e.ID, e.Field, e.Value)
}
