package postgres

import (
	"context"
	"database/sql"

	"eventlist/internal/domain"
)

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{
		DB: db,
	}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id
	`
	return mapError(r.DB.QueryRowContext(ctx, query, c.Name, c.Description).Scan(&c.ID))
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `
		SELECT id, name, description
		FROM categories
		WHERE id = $1
	`
	c := &domain.Category{}
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description); err != nil {
		return nil, mapLookupError(err)
	}
	return c, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `
		SELECT id, name, description
		FROM categories
		WHERE name = $1
	`
	c := &domain.Category{}
	if err := r.DB.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name, &c.Description); err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	query := `
		UPDATE categories SET name = $1, description = $2
		WHERE id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, c.Name, c.Description, c.ID)
	if err != nil {
		return mapLookupError(err)
	}
	return requireAffected(result)
}

// Delete removes the category; the schema cascades the delete to its events.
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return mapLookupError(err)
	}
	return requireAffected(result)
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, name, description
		FROM categories
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categories := make([]*domain.Category, 0)
	for rows.Next() {
		c := &domain.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
