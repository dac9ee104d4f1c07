package postgres

import (
	"context"
	"database/sql"

	"eventlist/internal/domain"
)

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{
		DB: db,
	}
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (name, address, capacity)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return mapError(r.DB.QueryRowContext(ctx, query, v.Name, v.Address, nullInt(v.Capacity)).Scan(&v.ID))
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `
		SELECT id, name, address, capacity
		FROM venues
		WHERE id = $1
	`
	v := &domain.Venue{}
	var capNull sql.NullInt64
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Name, &v.Address, &capNull); err != nil {
		return nil, mapLookupError(err)
	}
	v.Capacity = intPtr(capNull)
	return v, nil
}

func (r *venueRepository) Update(ctx context.Context, v *domain.Venue) error {
	query := `
		UPDATE venues SET name = $1, address = $2, capacity = $3
		WHERE id = $4
	`
	result, err := r.DB.ExecContext(ctx, query, v.Name, v.Address, nullInt(v.Capacity), v.ID)
	if err != nil {
		return mapLookupError(err)
	}
	return requireAffected(result)
}

// Delete removes the venue; the schema cascades the delete to its events and their posts.
func (r *venueRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return mapLookupError(err)
	}
	return requireAffected(result)
}

func (r *venueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	query := `
		SELECT id, name, address, capacity
		FROM venues
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v := &domain.Venue{}
		var capNull sql.NullInt64
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &capNull); err != nil {
			return nil, err
		}
		v.Capacity = intPtr(capNull)
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
