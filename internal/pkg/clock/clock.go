// Package clock provides time for persistence timestamps and frame deltas
package clock

import (
	"sync"
	"time"
)

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Manual is a Clock that only moves when told to
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a manual clock starting at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual clock's current time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// FrameTimer measures wall-clock seconds between successive frames
type FrameTimer struct {
	clock Clock
	last  time.Time
}

// NewFrameTimer starts a frame timer at the clock's current time
func NewFrameTimer(c Clock) *FrameTimer {
	return &FrameTimer{clock: c, last: c.Now()}
}

// Delta returns the seconds elapsed since the previous call and resets the mark
func (f *FrameTimer) Delta() float64 {
	now := f.clock.Now()
	delta := now.Sub(f.last).Seconds()
	f.last = now
	if delta < 0 {
		return 0
	}
	return delta
}
