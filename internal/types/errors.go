package types

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below reports true for errors.Is
// against its matching sentinel, so callers that only care about the
// category never need a type assertion.
var (
	ErrValidation  = errors.New("validation failed")
	ErrFormat      = errors.New("malformed record line")
	ErrPersistence = errors.New("persistence failed")
)

// ValidationError reports a single field that broke its constraint.
// Err holds the validator.ValidationErrors when the rule was checked by
// go-playground/validator, nil otherwise.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// FormatError reports a persisted line that could not be decoded.
// Line is 1-based and zero when the text did not come from a file.
type FormatError struct {
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: invalid record %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("invalid record %q: %v", e.Text, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// PersistenceError wraps a failure while saving or loading a data file.
// Op is "save" or "load".
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
