package domain

import (
	"context"
	"unicode/utf8"
)

// Field limits for Category, counted in characters after sanitization.
const (
	CategoryNameMinLen        = 2
	CategoryNameMaxLen        = 100
	CategoryDescriptionMaxLen = 1000
)

// Category groups events (e.g. "Music", "Art & Culture"). Names are unique.
// swagger:model Category
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewCategory returns a new Category. ID is set by the repository on create.
func NewCategory(name, description string) *Category {
	return &Category{Name: name, Description: description}
}

func (c *Category) String() string {
	return c.Name
}

// Validate checks the structural rules of a sanitized Category.
// Name uniqueness needs the store and is checked by the category service.
func (c *Category) Validate() []FieldError {
	var errs []FieldError
	if n := utf8.RuneCountInString(c.Name); n < CategoryNameMinLen || n > CategoryNameMaxLen {
		errs = append(errs, FieldError{Field: "name", Message: "must be between 2 and 100 characters"})
	}
	if utf8.RuneCountInString(c.Description) > CategoryDescriptionMaxLen {
		errs = append(errs, FieldError{Field: "description", Message: "must be at most 1000 characters"})
	}
	return errs
}

// CategoryUpdate holds optional Category fields; nil fields are left unchanged.
type CategoryUpdate struct {
	Name        *string
	Description *string
}

// Apply copies the set fields of u onto c.
func (u CategoryUpdate) Apply(c *Category) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
}

// CategoryRepository defines storage for categories. The store enforces name uniqueness
// and cascades deletes to referencing events.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	// GetByName returns the category whose name matches exactly (case-sensitive).
	GetByName(ctx context.Context, name string) (*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Category, error)
}

// CategoryService runs the validated write path for categories.
type CategoryService interface {
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, id string, u CategoryUpdate) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}
