package testutil

import (
	"sync"
	"time"
)

// DefaultNow is the starting time of a FakeClock.
var DefaultNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// FakeClock is a manually advanced clock, safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a clock frozen at DefaultNow.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: DefaultNow}
}

// Now returns the clock's current time. Pass c.Now wherever a domain.Clock is expected.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
