package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventlist/internal/clock"
	"eventlist/internal/domain"
	"eventlist/internal/sanitize"
)

type eventService struct {
	eventRepo      domain.EventRepository
	categoryRepo   domain.CategoryRepository
	venueRepo      domain.VenueRepository
	sanitizer      *sanitize.Sanitizer
	clock          clock.Clock
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	categoryRepo domain.CategoryRepository,
	venueRepo domain.VenueRepository,
	sanitizer *sanitize.Sanitizer,
	clk clock.Clock,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		categoryRepo:   categoryRepo,
		venueRepo:      venueRepo,
		sanitizer:      sanitizer,
		clock:          clk,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, e *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.prepareEvent(ctx, e); err != nil {
		return err
	}
	if err := s.eventRepo.Create(ctx, e); err != nil {
		return storeError(err, "create event")
	}
	return nil
}

// UpdateEvent merges u into the stored event and re-runs the full write pipeline on
// the result, so a partial update cannot skip any check.
func (s *eventService) UpdateEvent(ctx context.Context, id string, u domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "get event")
	}
	u.Apply(e)
	if err := s.prepareEvent(ctx, e); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Update(ctx, e); err != nil {
		return nil, storeError(err, "update event")
	}
	return e, nil
}

// prepareEvent sanitizes e in place, validates it at the current time and checks that
// its category and venue exist. Every violation is reported together.
func (s *eventService) prepareEvent(ctx context.Context, e *domain.Event) error {
	s.sanitizer.Event(e)
	errs := e.Validate(s.clock.Now())

	if e.CategoryID != nil {
		c, err := s.categoryRepo.GetByID(ctx, *e.CategoryID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			errs = append(errs, domain.FieldError{Field: "category", Message: constraintMessages["category"]})
		case err != nil:
			return fmt.Errorf("get category: %w", err)
		default:
			e.Category = c
		}
	}
	if e.VenueID != "" {
		v, err := s.venueRepo.GetByID(ctx, e.VenueID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			errs = append(errs, domain.FieldError{Field: "venue", Message: constraintMessages["venue"]})
		case err != nil:
			return fmt.Errorf("get venue: %w", err)
		default:
			e.Venue = v
		}
	}
	return domain.NewValidationError(errs)
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return lookupError(err, "delete event")
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "get event")
	}
	return e, nil
}

// ListEvents returns one page of the events matching f, newest start first.
// A page outside the result returns domain.ErrPageNotFound.
func (s *eventService) ListEvents(ctx context.Context, f domain.EventFilter, params domain.PaginationParams) (*domain.Page[*domain.Event], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	total, err := s.eventRepo.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	if err := params.Window(total); err != nil {
		return nil, err
	}
	if total == 0 {
		return domain.NewPage([]*domain.Event{}, 0, params), nil
	}
	events, err := s.eventRepo.List(ctx, f, params)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return domain.NewPage(events, total, params), nil
}
