package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventlist/internal/domain"
	"eventlist/internal/sanitize"
)

type categoryService struct {
	categoryRepo   domain.CategoryRepository
	sanitizer      *sanitize.Sanitizer
	contextTimeout time.Duration
}

func NewCategoryService(categoryRepo domain.CategoryRepository, sanitizer *sanitize.Sanitizer, timeout time.Duration) domain.CategoryService {
	return &categoryService{
		categoryRepo:   categoryRepo,
		sanitizer:      sanitizer,
		contextTimeout: timeout,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, c *domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.prepareCategory(ctx, c); err != nil {
		return err
	}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return storeError(err, "create category")
	}
	return nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, u domain.CategoryUpdate) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "get category")
	}
	u.Apply(c)
	if err := s.prepareCategory(ctx, c); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Update(ctx, c); err != nil {
		return nil, storeError(err, "update category")
	}
	return c, nil
}

// prepareCategory sanitizes c in place and validates it, including name uniqueness
// against the store. The UNIQUE constraint still guards concurrent writers.
func (s *categoryService) prepareCategory(ctx context.Context, c *domain.Category) error {
	s.sanitizer.Category(c)
	errs := c.Validate()
	existing, err := s.categoryRepo.GetByName(ctx, c.Name)
	switch {
	case err == nil && existing.ID != c.ID:
		errs = append(errs, domain.FieldError{Field: "name", Message: constraintMessages["name"]})
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("check category name: %w", err)
	}
	return domain.NewValidationError(errs)
}

// DeleteCategory removes the category and, through the store, every event in it.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return lookupError(err, "delete category")
	}
	return nil
}

func (s *categoryService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "get category")
	}
	return c, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
