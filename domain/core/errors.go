package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound      = errors.New("resource not found")
	ErrRowNotFound   = fmt.Errorf("%w: row", ErrNotFound)
	ErrEntryNotFound = fmt.Errorf("%w: phone log entry", ErrNotFound)

	// Import errors
	ErrNoCanonicalColumns = errors.New("no recognizable columns in source table")
	ErrEmptyTable         = errors.New("source table has no header row")

	// Edit errors
	ErrUnknownField = errors.New("unknown canonical field")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewUnknownFieldError(field string) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsImportError(err error) bool {
	return errors.Is(err, ErrNoCanonicalColumns) ||
		errors.Is(err, ErrEmptyTable)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnknownField)
}
