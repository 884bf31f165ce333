package service

import (
	"sync"
	"time"
)

// Clock provides time-related functionality that can be mocked for testing.
type Clock interface {
	// Now returns the current time
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns a Clock backed by the real system time.
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock implements Clock with a settable time for testing.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a FixedClock pinned to the given time.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// Now returns the fixed time.
func (f *FixedClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the fixed time forward (useful for testing time progression).
func (f *FixedClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
