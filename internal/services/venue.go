package services

import (
	"context"
	"fmt"
	"time"

	"eventlist/internal/domain"
	"eventlist/internal/sanitize"
)

type venueService struct {
	venueRepo      domain.VenueRepository
	sanitizer      *sanitize.Sanitizer
	contextTimeout time.Duration
}

func NewVenueService(venueRepo domain.VenueRepository, sanitizer *sanitize.Sanitizer, timeout time.Duration) domain.VenueService {
	return &venueService{
		venueRepo:      venueRepo,
		sanitizer:      sanitizer,
		contextTimeout: timeout,
	}
}

func (s *venueService) CreateVenue(ctx context.Context, v *domain.Venue) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.prepareVenue(v); err != nil {
		return err
	}
	if err := s.venueRepo.Create(ctx, v); err != nil {
		return storeError(err, "create venue")
	}
	return nil
}

func (s *venueService) UpdateVenue(ctx context.Context, id string, u domain.VenueUpdate) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	v, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "get venue")
	}
	u.Apply(v)
	if err := s.prepareVenue(v); err != nil {
		return nil, err
	}
	if err := s.venueRepo.Update(ctx, v); err != nil {
		return nil, storeError(err, "update venue")
	}
	return v, nil
}

func (s *venueService) prepareVenue(v *domain.Venue) error {
	s.sanitizer.Venue(v)
	return domain.NewValidationError(v.Validate())
}

// DeleteVenue removes the venue and, through the store, its events and their posts.
func (s *venueService) DeleteVenue(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.venueRepo.Delete(ctx, id); err != nil {
		return lookupError(err, "delete venue")
	}
	return nil
}

func (s *venueService) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	v, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "get venue")
	}
	return v, nil
}

func (s *venueService) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}
