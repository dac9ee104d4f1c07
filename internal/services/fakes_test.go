package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"eventlist/internal/domain"
	"eventlist/internal/sanitize"
)

// testLogger is a no-op logger for service tests.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testSanitizer = sanitize.New()

const testTimeout = 5 * time.Second

// memStore is an in-memory relational store shared by the fake repositories.
// It enforces category name uniqueness and cascades deletes like the Postgres schema.
type memStore struct {
	categories map[string]*domain.Category
	venues     map[string]*domain.Venue
	events     map[string]*domain.Event
	posts      map[string]*domain.EventPost
	nextID     int
	postClock  time.Time
	// hideNames makes GetByName miss, simulating a concurrent writer that inserts
	// between the service check and the insert.
	hideNames bool
	err       error
}

func newMemStore() *memStore {
	return &memStore{
		categories: make(map[string]*domain.Category),
		venues:     make(map[string]*domain.Venue),
		events:     make(map[string]*domain.Event),
		posts:      make(map[string]*domain.EventPost),
		nextID:     1,
		postClock:  time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) id(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, m.nextID)
	m.nextID++
	return id
}

func (m *memStore) deleteEvent(id string) {
	delete(m.events, id)
	for pid, p := range m.posts {
		if p.EventID == id {
			delete(m.posts, pid)
		}
	}
}

type fakeCategoryRepo struct{ *memStore }

func (f fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.categories {
		if existing.Name == c.Name {
			return &domain.ConstraintError{Constraint: "categories_name_key", Field: "name"}
		}
	}
	c.ID = f.id("cat")
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f fakeCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !f.hideNames {
		for _, c := range f.categories {
			if c.Name == name {
				cp := *c
				return &cp, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range f.categories {
		if existing.ID != c.ID && existing.Name == c.Name {
			return &domain.ConstraintError{Constraint: "categories_name_key", Field: "name"}
		}
	}
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.categories, id)
	for eid, e := range f.events {
		if e.CategoryID != nil && *e.CategoryID == id {
			f.deleteEvent(eid)
		}
	}
	return nil
}

func (f fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeVenueRepo struct{ *memStore }

func (f fakeVenueRepo) Create(ctx context.Context, v *domain.Venue) error {
	if f.err != nil {
		return f.err
	}
	v.ID = f.id("venue")
	cp := *v
	f.venues[v.ID] = &cp
	return nil
}

func (f fakeVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.venues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f fakeVenueRepo) Update(ctx context.Context, v *domain.Venue) error {
	if _, ok := f.venues[v.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *v
	f.venues[v.ID] = &cp
	return nil
}

func (f fakeVenueRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.venues[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.venues, id)
	for eid, e := range f.events {
		if e.VenueID == id {
			f.deleteEvent(eid)
		}
	}
	return nil
}

func (f fakeVenueRepo) List(ctx context.Context) ([]*domain.Venue, error) {
	out := make([]*domain.Venue, 0, len(f.venues))
	for _, v := range f.venues {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeEventRepo struct{ *memStore }

// joined returns a copy of e with its category and venue attached, like the SQL join.
func (f fakeEventRepo) joined(e *domain.Event) *domain.Event {
	cp := *e
	cp.Category, cp.Venue = nil, nil
	if e.CategoryID != nil {
		if c, ok := f.categories[*e.CategoryID]; ok {
			cc := *c
			cp.Category = &cc
		}
	}
	if v, ok := f.venues[e.VenueID]; ok {
		vc := *v
		cp.Venue = &vc
	}
	return &cp
}

func (f fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.venues[e.VenueID]; !ok {
		return &domain.ConstraintError{Constraint: "events_venue_id_fkey", Field: "venue"}
	}
	e.ID = f.id("ev")
	cp := *e
	f.events[e.ID] = &cp
	return nil
}

func (f fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f.joined(e), nil
}

func (f fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := f.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	f.events[e.ID] = &cp
	return nil
}

func (f fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return domain.ErrNotFound
	}
	f.deleteEvent(id)
	return nil
}

func (f fakeEventRepo) matching(flt domain.EventFilter) []*domain.Event {
	var out []*domain.Event
	for _, e := range f.events {
		j := f.joined(e)
		if flt.Matches(j) {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return strings.Compare(out[i].ID, out[j].ID) < 0
	})
	return out
}

func (f fakeEventRepo) Count(ctx context.Context, flt domain.EventFilter) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.matching(flt)), nil
}

func (f fakeEventRepo) List(ctx context.Context, flt domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	all := f.matching(flt)
	start := params.Offset()
	if start > len(all) {
		return []*domain.Event{}, nil
	}
	end := start + params.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

type fakePostRepo struct{ *memStore }

func (f fakePostRepo) Create(ctx context.Context, p *domain.EventPost) error {
	if _, ok := f.events[p.EventID]; !ok {
		return &domain.ConstraintError{Constraint: "event_posts_event_id_fkey", Field: "event"}
	}
	p.ID = f.id("post")
	f.postClock = f.postClock.Add(time.Minute)
	p.CreatedAt = f.postClock
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f fakePostRepo) GetByID(ctx context.Context, id string) (*domain.EventPost, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f fakePostRepo) UpdateContent(ctx context.Context, id, content string) (*domain.EventPost, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Content = content
	cp := *p
	return &cp, nil
}

func (f fakePostRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f fakePostRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventPost, error) {
	var out []*domain.EventPost
	for _, p := range f.posts {
		if p.EventID == eventID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
