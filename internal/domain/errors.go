package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by repositories, services and the HTTP layer.
var (
	ErrNotFound            = errors.New("not found")
	ErrPageNotFound        = errors.New("invalid page")
	ErrConstraintViolation = errors.New("constraint violation")
)

// FieldError is a single violated rule on a named field.
// swagger:model FieldError
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field violation found for one write.
// A write that produces a ValidationError persists nothing.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError returns a ValidationError for the given violations, or nil if there are none.
func NewValidationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field has at least one violation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ConstraintError is returned by a repository when the store rejects a write on a
// uniqueness, foreign key or check constraint. It matches ErrConstraintViolation and
// the underlying driver error under errors.Is.
type ConstraintError struct {
	Constraint string
	Field      string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("constraint %s violated on %s", e.Constraint, e.Field)
	}
	return fmt.Sprintf("constraint %s violated", e.Constraint)
}

func (e *ConstraintError) Unwrap() []error {
	return []error{ErrConstraintViolation, e.Err}
}
