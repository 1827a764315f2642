// Package diag provides the one piece of shared mutable state spec §5
// allows outside the core's per-call purity: an optional benchmarking
// timer that is explicitly off the correctness path. No pack repo
// supplies a single-call stopwatch smaller than a full benchmarking
// framework, and pulling one in for a wrap-a-call need would be the
// over-engineered direction — so this stays on the standard library,
// unlike the rest of the module's ambient stack.
package diag

import (
	"sync/atomic"
	"time"
)

// Timer accumulates wall-clock time and call counts across an
// arbitrary number of Track calls. Safe for concurrent use; the core
// itself never reads or writes a Timer — callers wrap their own
// Collide/Distance calls if they want the numbers.
type Timer struct {
	calls atomic.Int64
	nanos atomic.Int64
}

// Track times fn and records its duration. Returns fn's error, if any,
// unchanged.
func (t *Timer) Track(fn func() error) error {
	start := time.Now()
	err := fn()
	t.nanos.Add(int64(time.Since(start)))
	t.calls.Add(1)
	return err
}

// Snapshot is a point-in-time read of a Timer's accumulated stats.
type Snapshot struct {
	Calls int64
	Total time.Duration
}

// Mean is the average duration per call, or zero if no calls were
// tracked yet.
func (s Snapshot) Mean() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

// Snapshot reads the timer's current totals without resetting them.
func (t *Timer) Snapshot() Snapshot {
	return Snapshot{Calls: t.calls.Load(), Total: time.Duration(t.nanos.Load())}
}

// Reset zeroes the timer's accumulated stats.
func (t *Timer) Reset() {
	t.calls.Store(0)
	t.nanos.Store(0)
}
