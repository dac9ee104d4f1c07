package services

import (
	"errors"
	"fmt"

	"eventlist/internal/domain"
)

// nonFieldErrors is the field name used for violations not tied to one field.
const nonFieldErrors = "non_field_errors"

// constraintMessages gives the user-facing message for a store constraint, keyed by field.
var constraintMessages = map[string]string{
	"name":     "category with this name already exists",
	"capacity": "must be zero or greater",
	"category": "does not exist",
	"venue":    "does not exist",
	"event":    "does not exist",
	"end_date": "must be after start_date",
}

// storeError maps a repository write error for the caller. Store constraint violations
// become a ValidationError for the named field so they read the same as validator failures.
func storeError(err error, op string) error {
	var cerr *domain.ConstraintError
	if errors.As(err, &cerr) {
		field, msg := cerr.Field, constraintMessages[cerr.Field]
		if field == "" {
			field = nonFieldErrors
		}
		if msg == "" {
			msg = "violates constraint " + cerr.Constraint
		}
		return &domain.ValidationError{Fields: []domain.FieldError{{Field: field, Message: msg}}}
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// lookupError maps a repository read error for the caller.
func lookupError(err error, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
