package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a missing record in one of the collections.
type NotFoundError struct {
	Kind string // "rule" or "page"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No %s with ID: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError reports a request value that was missing or not allowed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func requiredError(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("'%s' is a required value", field),
	}
}
