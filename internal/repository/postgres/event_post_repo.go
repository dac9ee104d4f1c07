package postgres

import (
	"context"
	"database/sql"

	"eventlist/internal/domain"
)

type eventPostRepository struct {
	DB *sql.DB
}

func NewEventPostRepository(db *sql.DB) domain.EventPostRepository {
	return &eventPostRepository{
		DB: db,
	}
}

// Create inserts the post; created_at comes from the column default.
func (r *eventPostRepository) Create(ctx context.Context, p *domain.EventPost) error {
	query := `
		INSERT INTO event_posts (event_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	return mapError(r.DB.QueryRowContext(ctx, query, p.EventID, p.Content).Scan(&p.ID, &p.CreatedAt))
}

func (r *eventPostRepository) GetByID(ctx context.Context, id string) (*domain.EventPost, error) {
	query := `
		SELECT id, event_id, content, created_at
		FROM event_posts
		WHERE id = $1
	`
	p := &domain.EventPost{}
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.EventID, &p.Content, &p.CreatedAt); err != nil {
		return nil, mapLookupError(err)
	}
	return p, nil
}

func (r *eventPostRepository) UpdateContent(ctx context.Context, id, content string) (*domain.EventPost, error) {
	query := `
		UPDATE event_posts SET content = $1
		WHERE id = $2
		RETURNING id, event_id, content, created_at
	`
	p := &domain.EventPost{}
	if err := r.DB.QueryRowContext(ctx, query, content, id).Scan(&p.ID, &p.EventID, &p.Content, &p.CreatedAt); err != nil {
		return nil, mapLookupError(err)
	}
	return p, nil
}

func (r *eventPostRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM event_posts WHERE id = $1`, id)
	if err != nil {
		return mapLookupError(err)
	}
	return requireAffected(result)
}

func (r *eventPostRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventPost, error) {
	query := `
		SELECT id, event_id, content, created_at
		FROM event_posts
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, mapLookupError(err)
	}
	defer rows.Close()
	posts := make([]*domain.EventPost, 0)
	for rows.Next() {
		p := &domain.EventPost{}
		if err := rows.Scan(&p.ID, &p.EventID, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
