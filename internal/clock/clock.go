package clock

import (
	"sync"
	"time"
)

// Clock supplies the current instant to event validation and the upcoming filter.
type Clock interface {
	Now() time.Time
}

// Func adapts an ordinary function to Clock. Instants are returned in UTC.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f().UTC()
}

// NewSystem returns the wall clock.
func NewSystem() Clock {
	return Func(time.Now)
}

// Manual is a clock that moves only when told to. It is safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed returns a Manual clock stopped at t.
func NewFixed(t time.Time) *Manual {
	return &Manual{now: t.UTC()}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d. A negative d moves it back.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
