package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventlist/internal/domain"
	"eventlist/internal/sanitize"
)

type eventPostService struct {
	postRepo       domain.EventPostRepository
	eventRepo      domain.EventRepository
	sanitizer      *sanitize.Sanitizer
	contextTimeout time.Duration
}

func NewEventPostService(postRepo domain.EventPostRepository, eventRepo domain.EventRepository, sanitizer *sanitize.Sanitizer, timeout time.Duration) domain.EventPostService {
	return &eventPostService{
		postRepo:       postRepo,
		eventRepo:      eventRepo,
		sanitizer:      sanitizer,
		contextTimeout: timeout,
	}
}

func (s *eventPostService) CreatePost(ctx context.Context, p *domain.EventPost) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.sanitizer.EventPost(p)
	errs := p.Validate()
	if p.EventID != "" {
		if _, err := s.eventRepo.GetByID(ctx, p.EventID); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("get event: %w", err)
			}
			errs = append(errs, domain.FieldError{Field: "event", Message: constraintMessages["event"]})
		}
	}
	if err := domain.NewValidationError(errs); err != nil {
		return err
	}
	if err := s.postRepo.Create(ctx, p); err != nil {
		return storeError(err, "create post")
	}
	return nil
}

// UpdatePost replaces the content of a post. CreatedAt is never changed.
func (s *eventPostService) UpdatePost(ctx context.Context, id, content string) (*domain.EventPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "get post")
	}
	p.Content = content
	s.sanitizer.EventPost(p)
	if err := domain.NewValidationError(p.Validate()); err != nil {
		return nil, err
	}
	updated, err := s.postRepo.UpdateContent(ctx, id, p.Content)
	if err != nil {
		return nil, storeError(err, "update post")
	}
	return updated, nil
}

func (s *eventPostService) DeletePost(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return lookupError(err, "delete post")
	}
	return nil
}

// ListPosts returns one page of an event's posts, newest first.
func (s *eventPostService) ListPosts(ctx context.Context, eventID string, params domain.PaginationParams) (*domain.Page[*domain.EventPost], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, lookupError(err, "get event")
	}
	posts, err := s.postRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return domain.Paginate(posts, params)
}
