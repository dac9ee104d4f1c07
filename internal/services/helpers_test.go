package services

import (
	"testing"
	"time"

	"eventlist/internal/clock"
	"eventlist/internal/domain"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type testServices struct {
	store      *memStore
	clock      *clock.Manual
	categories domain.CategoryService
	venues     domain.VenueService
	events     domain.EventService
	posts      domain.EventPostService
}

func newTestServices() *testServices {
	store := newMemStore()
	clk := clock.NewFixed(testNow)
	cr, vr, er, pr := fakeCategoryRepo{store}, fakeVenueRepo{store}, fakeEventRepo{store}, fakePostRepo{store}
	return &testServices{
		store:      store,
		clock:      clk,
		categories: NewCategoryService(cr, testSanitizer, testTimeout),
		venues:     NewVenueService(vr, testSanitizer, testTimeout),
		events:     NewEventService(er, cr, vr, testSanitizer, clk, testTimeout),
		posts:      NewEventPostService(pr, er, testSanitizer, testTimeout),
	}
}

func (s *testServices) mustCategory(t *testing.T, name string) *domain.Category {
	t.Helper()
	c := domain.NewCategory(name, "")
	require.NoError(t, s.categories.CreateCategory(t.Context(), c))
	return c
}

func (s *testServices) mustVenue(t *testing.T, name string) *domain.Venue {
	t.Helper()
	v := domain.NewVenue(name, "", nil)
	require.NoError(t, s.venues.CreateVenue(t.Context(), v))
	return v
}

func (s *testServices) mustEvent(t *testing.T, title string, start time.Time, category *domain.Category, venue *domain.Venue) *domain.Event {
	t.Helper()
	var categoryID *string
	if category != nil {
		categoryID = &category.ID
	}
	e := domain.NewEvent(title, "", "", start, start.Add(2*time.Hour), categoryID, venue.ID)
	require.NoError(t, s.events.CreateEvent(t.Context(), e))
	return e
}

// requireFieldErrors asserts err is a ValidationError naming exactly fields, in any order.
func requireFieldErrors(t *testing.T, err error, fields ...string) *domain.ValidationError {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	got := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		got = append(got, f.Field)
	}
	require.ElementsMatch(t, fields, got)
	return verr
}

func strPtr(s string) *string        { return &s }
func intPtr(i int) *int              { return &i }
func timePtr(t time.Time) *time.Time { return &t }
