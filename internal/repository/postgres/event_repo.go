package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eventlist/internal/domain"
)

const eventColumns = `
		e.id, e.title, e.description, e.location, e.start_date, e.end_date,
		e.category_id, c.name, c.description,
		e.venue_id, v.name, v.address, v.capacity`

const eventJoins = `
		FROM events e
		LEFT JOIN categories c ON c.id = e.category_id
		JOIN venues v ON v.id = e.venue_id`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, location, start_date, end_date, category_id, venue_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Location, e.StartDate, e.EndDate, nullString(e.CategoryID), e.VenueID,
	).Scan(&e.ID)
	return mapError(err)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT` + eventColumns + eventJoins + `
		WHERE e.id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapLookupError(err)
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, location = $3, start_date = $4, end_date = $5, category_id = $6, venue_id = $7
		WHERE id = $8
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Title, e.Description, e.Location, e.StartDate, e.EndDate, nullString(e.CategoryID), e.VenueID, e.ID,
	)
	if err != nil {
		return mapLookupError(err)
	}
	return requireAffected(result)
}

// Delete removes the event; the schema cascades the delete to its posts.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return mapLookupError(err)
	}
	return requireAffected(result)
}

func (r *eventRepository) Count(ctx context.Context, f domain.EventFilter) (int, error) {
	where, args := eventWhere(f)
	query := `SELECT COUNT(*)` + eventJoins + where
	var total int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *eventRepository) List(ctx context.Context, f domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, error) {
	where, args := eventWhere(f)
	n := len(args)
	query := `SELECT` + eventColumns + eventJoins + where + fmt.Sprintf(`
		ORDER BY e.start_date DESC, e.id
		LIMIT $%d OFFSET $%d
	`, n+1, n+2)
	args = append(args, params.PageSize, params.Offset())
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// eventWhere renders the set conditions of f as a WHERE clause with positional args.
// User input only ever reaches the query as bound arguments.
func eventWhere(f domain.EventFilter) (string, []any) {
	if f.MatchNone {
		return "\n\t\tWHERE FALSE", nil
	}
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CategoryName != nil {
		add("LOWER(c.name) = LOWER($%d)", *f.CategoryName)
	}
	if f.StartsFrom != nil {
		add("e.start_date >= $%d", *f.StartsFrom)
	}
	if f.StartsUntil != nil {
		add("e.start_date <= $%d", *f.StartsUntil)
	}
	if f.UpcomingFrom != nil {
		add("e.start_date >= $%d", *f.UpcomingFrom)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "\n\t\tWHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	v := &domain.Venue{}
	var catID, catName, catDesc sql.NullString
	var capNull sql.NullInt64
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Location, &e.StartDate, &e.EndDate,
		&catID, &catName, &catDesc,
		&e.VenueID, &v.Name, &v.Address, &capNull,
	)
	if err != nil {
		return nil, err
	}
	if catID.Valid {
		id := catID.String
		e.CategoryID = &id
		e.Category = &domain.Category{ID: id, Name: catName.String, Description: catDesc.String}
	}
	v.ID = e.VenueID
	v.Capacity = intPtr(capNull)
	e.Venue = v
	return e, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
