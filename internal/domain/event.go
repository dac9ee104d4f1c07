package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	EventTitleMinLen       = 1
	EventTitleMaxLen       = 200
	EventDescriptionMaxLen = 5000
	EventLocationMaxLen    = 200

	// MaxEventStartAge bounds how far in the past a written event may start.
	MaxEventStartAge = 30 * 24 * time.Hour
)

// Event is a listed happening. Category is optional; Venue is required.
// Category and Venue are populated by reads that join them.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Location    string    `json:"location"`
	CategoryID  *string   `json:"-"`
	VenueID     string    `json:"-"`
	Category    *Category `json:"category"`
	Venue       *Venue    `json:"venue"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title, description, location string, start, end time.Time, categoryID *string, venueID string) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Location:    location,
		StartDate:   start,
		EndDate:     end,
		CategoryID:  categoryID,
		VenueID:     venueID,
	}
}

func (e *Event) String() string {
	return e.Title
}

// Validate checks the structural rules of a sanitized Event at the moment now.
func (e *Event) Validate(now time.Time) []FieldError {
	var errs []FieldError
	if n := utf8.RuneCountInString(e.Title); n < EventTitleMinLen || n > EventTitleMaxLen {
		errs = append(errs, FieldError{Field: "title", Message: "must be between 1 and 200 characters"})
	}
	if utf8.RuneCountInString(e.Description) > EventDescriptionMaxLen {
		errs = append(errs, FieldError{Field: "description", Message: "must be at most 5000 characters"})
	}
	if utf8.RuneCountInString(e.Location) > EventLocationMaxLen {
		errs = append(errs, FieldError{Field: "location", Message: "must be at most 200 characters"})
	}
	if e.StartDate.IsZero() {
		errs = append(errs, FieldError{Field: "start_date", Message: "is required"})
	} else if e.StartDate.Before(now.Add(-MaxEventStartAge)) {
		errs = append(errs, FieldError{Field: "start_date", Message: "cannot be more than 30 days in the past"})
	}
	if e.EndDate.IsZero() {
		errs = append(errs, FieldError{Field: "end_date", Message: "is required"})
	} else if !e.StartDate.IsZero() && !e.EndDate.After(e.StartDate) {
		errs = append(errs, FieldError{Field: "end_date", Message: "must be after start_date"})
	}
	if e.VenueID == "" {
		errs = append(errs, FieldError{Field: "venue", Message: "is required"})
	}
	return errs
}

// EventUpdate holds optional Event fields. ClearCategory detaches the category.
type EventUpdate struct {
	Title         *string
	Description   *string
	Location      *string
	StartDate     *time.Time
	EndDate       *time.Time
	CategoryID    *string
	ClearCategory bool
	VenueID       *string
}

// Apply copies the set fields of u onto e.
func (u EventUpdate) Apply(e *Event) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.StartDate != nil {
		e.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		e.EndDate = *u.EndDate
	}
	if u.ClearCategory {
		e.CategoryID = nil
		e.Category = nil
	} else if u.CategoryID != nil {
		id := *u.CategoryID
		e.CategoryID = &id
		e.Category = nil
	}
	if u.VenueID != nil {
		e.VenueID = *u.VenueID
		e.Venue = nil
	}
}

// EventFilter restricts an event listing. Nil fields are not applied; set fields
// combine with AND.
type EventFilter struct {
	// CategoryName matches the category name case-insensitively and exactly.
	CategoryName *string
	// StartsFrom keeps events with start_date >= StartsFrom.
	StartsFrom *time.Time
	// StartsUntil keeps events with start_date <= StartsUntil.
	StartsUntil *time.Time
	// UpcomingFrom keeps events with start_date >= UpcomingFrom.
	UpcomingFrom *time.Time
	// MatchNone empties the listing regardless of the other fields. It is set when the
	// category value is one no stored name can equal.
	MatchNone bool
}

// Matches reports whether e passes every set condition of f. e.Category must be loaded
// for the category condition to match.
func (f EventFilter) Matches(e *Event) bool {
	if f.MatchNone {
		return false
	}
	if f.CategoryName != nil {
		if e.Category == nil || !strings.EqualFold(e.Category.Name, *f.CategoryName) {
			return false
		}
	}
	if f.StartsFrom != nil && e.StartDate.Before(*f.StartsFrom) {
		return false
	}
	if f.StartsUntil != nil && e.StartDate.After(*f.StartsUntil) {
		return false
	}
	if f.UpcomingFrom != nil && e.StartDate.Before(*f.UpcomingFrom) {
		return false
	}
	return true
}

// EventRepository defines storage for events. Listings are ordered by start_date descending.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, f EventFilter) (int, error)
	List(ctx context.Context, f EventFilter, params PaginationParams) ([]*Event, error)
}

// EventService runs the validated write path for events and the filtered, paginated read path.
type EventService interface {
	CreateEvent(ctx context.Context, e *Event) error
	UpdateEvent(ctx context.Context, id string, u EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context, f EventFilter, params PaginationParams) (*Page[*Event], error)
}
