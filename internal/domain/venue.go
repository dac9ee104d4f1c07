package domain

import (
	"context"
	"unicode/utf8"
)

const (
	VenueNameMinLen    = 2
	VenueNameMaxLen    = 200
	VenueAddressMaxLen = 300
)

// Venue is a place events happen at. Capacity is optional.
// swagger:model Venue
type Venue struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity *int   `json:"capacity"`
}

// NewVenue returns a new Venue. ID is set by the repository on create.
func NewVenue(name, address string, capacity *int) *Venue {
	return &Venue{Name: name, Address: address, Capacity: capacity}
}

func (v *Venue) String() string {
	return v.Name
}

// Validate checks the structural rules of a sanitized Venue.
func (v *Venue) Validate() []FieldError {
	var errs []FieldError
	if n := utf8.RuneCountInString(v.Name); n < VenueNameMinLen || n > VenueNameMaxLen {
		errs = append(errs, FieldError{Field: "name", Message: "must be between 2 and 200 characters"})
	}
	if utf8.RuneCountInString(v.Address) > VenueAddressMaxLen {
		errs = append(errs, FieldError{Field: "address", Message: "must be at most 300 characters"})
	}
	if v.Capacity != nil && *v.Capacity < 0 {
		errs = append(errs, FieldError{Field: "capacity", Message: "must be zero or greater"})
	}
	return errs
}

// VenueUpdate holds optional Venue fields. ClearCapacity sets capacity back to unknown.
type VenueUpdate struct {
	Name          *string
	Address       *string
	Capacity      *int
	ClearCapacity bool
}

// Apply copies the set fields of u onto v.
func (u VenueUpdate) Apply(v *Venue) {
	if u.Name != nil {
		v.Name = *u.Name
	}
	if u.Address != nil {
		v.Address = *u.Address
	}
	if u.ClearCapacity {
		v.Capacity = nil
	} else if u.Capacity != nil {
		c := *u.Capacity
		v.Capacity = &c
	}
}

// VenueRepository defines storage for venues. Deleting a venue deletes its events.
type VenueRepository interface {
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	Update(ctx context.Context, v *Venue) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Venue, error)
}

// VenueService runs the validated write path for venues.
type VenueService interface {
	CreateVenue(ctx context.Context, v *Venue) error
	UpdateVenue(ctx context.Context, id string, u VenueUpdate) (*Venue, error)
	DeleteVenue(ctx context.Context, id string) error
	GetVenue(ctx context.Context, id string) (*Venue, error)
	ListVenues(ctx context.Context) ([]*Venue, error)
}
