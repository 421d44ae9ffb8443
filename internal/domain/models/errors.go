package models

import "errors"

// Sentinel errors shared by services; handlers map them to HTTP statuses.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("resource already exists")
)

// ValidationError carries field-keyed messages for a rejected request. The
// request never reaches storage when one of these is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for _, msg := range e.Fields {
		return msg
	}
	return "validation failed"
}

// NewValidationError builds an empty field error map to be filled by a
// validator and returned only when non-empty.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records a field failure, keeping the first message per field.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Any reports whether any field failed.
func (e *ValidationError) Any() bool {
	return len(e.Fields) > 0
}
