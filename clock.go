package dux

import "sync/atomic"

// Clock is a monotonic logical clock.
//
// The Store advances its clock exactly once per settled dispatch, never for
// a vetoed one. Journals and traces use the sequence number to order
// observations; wall-clock timestamps are never used for ordering.
//
// The Store itself is single-owner, but the clock uses atomic operations so
// read-side observers sampling Seq from another goroutine see a coherent
// value.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number. Used
// when resuming from a journal to continue numbering where the log left off.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next increments the clock and returns the new sequence number. Each call
// returns a unique, strictly increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
