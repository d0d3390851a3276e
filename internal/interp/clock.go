package interp

import "sync/atomic"

// Clock is the monotonic logical clock stamping every processed command.
//
// Ordering is always by seq number, never by wall-clock time: replaying a
// journal must reproduce the exact stamp sequence of the original run.
//
// Thread-safety: atomic, although the interpreter's strictly sequential
// design means a single goroutine normally calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming from a specific sequence number,
// used by journal replay.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and advances the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the clock position without advancing it.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
