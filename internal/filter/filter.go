// Package filter turns raw listing query parameters into a domain.EventFilter.
//
// Filtering is fail-open: a value that cannot be parsed leaves its condition
// unset, so malformed input only ever widens the result.
package filter

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"

	"eventlist/internal/domain"
)

// Query parameter names recognized on event listings.
const (
	ParamCategory  = "category"
	ParamStartDate = "start_date"
	ParamEndDate   = "end_date"
	ParamUpcoming  = "upcoming"
)

// Params holds the raw listing parameters. Empty strings mean absent.
type Params struct {
	Category  string
	StartDate string
	EndDate   string
	Upcoming  string
}

// ParamsFromQuery reads the recognized parameters from q, ignoring everything else.
func ParamsFromQuery(q url.Values) Params {
	return Params{
		Category:  q.Get(ParamCategory),
		StartDate: q.Get(ParamStartDate),
		EndDate:   q.Get(ParamEndDate),
		Upcoming:  q.Get(ParamUpcoming),
	}
}

// EventFilterBuilder builds event filters from request parameters.
type EventFilterBuilder struct {
	Logger *slog.Logger
}

func NewEventFilterBuilder(logger *slog.Logger) *EventFilterBuilder {
	return &EventFilterBuilder{Logger: logger}
}

// Build returns the filter for p evaluated at now. It never fails: unparseable dates
// and any upcoming value other than "true" (any case) are ignored, and an unexpected
// panic yields the empty filter. A category that is not valid UTF-8 or holds a NUL
// byte sets MatchNone.
func (b *EventFilterBuilder) Build(ctx context.Context, p Params, now time.Time) (f domain.EventFilter) {
	defer func() {
		if r := recover(); r != nil {
			b.Logger.WarnContext(ctx, "event filter construction failed, listing unfiltered", "panic", r)
			f = domain.EventFilter{}
		}
	}()

	if p.Category != "" {
		if !storableText(p.Category) {
			b.Logger.DebugContext(ctx, "category cannot match any stored name", "param", ParamCategory)
			f.MatchNone = true
		} else {
			name := p.Category
			f.CategoryName = &name
		}
	}
	if p.StartDate != "" {
		if d, ok := ParseDate(p.StartDate); ok {
			f.StartsFrom = &d
		} else {
			b.Logger.DebugContext(ctx, "ignoring unparseable filter date", "param", ParamStartDate)
		}
	}
	if p.EndDate != "" {
		if d, ok := ParseDate(p.EndDate); ok {
			f.StartsUntil = &d
		} else {
			b.Logger.DebugContext(ctx, "ignoring unparseable filter date", "param", ParamEndDate)
		}
	}
	if strings.EqualFold(p.Upcoming, "true") {
		n := now
		f.UpcomingFrom = &n
	}
	return f
}

// storableText reports whether s could equal a stored text value: valid UTF-8 without NUL bytes.
func storableText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// ParseDate parses s as a calendar date in any format dateparse understands and
// returns midnight UTC of that date. Relative words such as "yesterday" are not dates.
func ParseDate(s string) (time.Time, bool) {
	if !storableText(s) {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}
