// Package dbtest opens throwaway stores for tests.
package dbtest

import (
	"sync"
	"testing"
	"time"

	"github.com/balkashynov/tend/internal/db"
)

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock stopped at t.
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// NewStore creates an in-memory SQLite store with all migrations applied,
// driven by clock and computing "today" in UTC. It is closed when the test
// completes.
func NewStore(t *testing.T, clock *Clock) *db.Store {
	t.Helper()

	s, err := db.Open(db.Config{
		Driver:   "sqlite",
		DSN:      ":memory:",
		Location: time.UTC,
	}, db.WithClock(clock.Now))
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
