package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventlist/internal/domain"
)

// Postgres error classes the store maps onto domain.ConstraintError.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

// constraintFields names the entity field behind each schema constraint.
var constraintFields = map[string]string{
	"categories_name_key":       "name",
	"venues_capacity_check":     "capacity",
	"events_category_id_fkey":   "category",
	"events_venue_id_fkey":      "venue",
	"events_end_after_start":    "end_date",
	"event_posts_event_id_fkey": "event",
}

// mapError translates driver errors into domain errors. sql.ErrNoRows becomes
// domain.ErrNotFound and constraint violations become *domain.ConstraintError.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeForeignKeyViolation, codeUniqueViolation, codeCheckViolation:
			return &domain.ConstraintError{
				Constraint: pqErr.Constraint,
				Field:      constraintFields[pqErr.Constraint],
				Err:        err,
			}
		}
	}
	return err
}

// mapLookupError is mapError for reads and deletes by id, where a malformed id
// simply matches nothing.
func mapLookupError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeInvalidText {
		return domain.ErrNotFound
	}
	return mapError(err)
}

func requireAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
