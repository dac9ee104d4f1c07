package domain

import (
	"context"
	"fmt"
	"time"
)

// EventPost is a content update attached to an event. CreatedAt is set by the store
// on create and never changes.
// swagger:model EventPost
type EventPost struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEventPost returns a new EventPost for eventID.
func NewEventPost(eventID, content string) *EventPost {
	return &EventPost{EventID: eventID, Content: content}
}

// String names the post by its event and creation time. Posts do not carry the event
// title, so the event id stands in for it.
func (p *EventPost) String() string {
	return fmt.Sprintf("Post for event %s at %s", p.EventID, p.CreatedAt.UTC().Format(postTimeLayout))
}

const postTimeLayout = "2006-01-02 15:04:05-07:00"

// Validate checks the structural rules of a sanitized EventPost.
func (p *EventPost) Validate() []FieldError {
	var errs []FieldError
	if p.EventID == "" {
		errs = append(errs, FieldError{Field: "event", Message: "is required"})
	}
	if p.Content == "" {
		errs = append(errs, FieldError{Field: "content", Message: "is required"})
	}
	return errs
}

// EventPostRepository defines storage for event posts. Deleting an event deletes its posts.
type EventPostRepository interface {
	// Create inserts p and sets its ID and CreatedAt.
	Create(ctx context.Context, p *EventPost) error
	GetByID(ctx context.Context, id string) (*EventPost, error)
	UpdateContent(ctx context.Context, id, content string) (*EventPost, error)
	Delete(ctx context.Context, id string) error
	// ListByEventID returns posts newest first.
	ListByEventID(ctx context.Context, eventID string) ([]*EventPost, error)
}

// EventPostService runs the validated write path for event posts.
type EventPostService interface {
	CreatePost(ctx context.Context, p *EventPost) error
	UpdatePost(ctx context.Context, id, content string) (*EventPost, error)
	DeletePost(ctx context.Context, id string) error
	ListPosts(ctx context.Context, eventID string, params PaginationParams) (*Page[*EventPost], error)
}
