package schedule

import "time"

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call prevented the
	// callback from running; false means it already ran, is already queued
	// to run, or was stopped before.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
//
// Implementations run every callback on a single logical flow: two
// callbacks never execute at the same time, mirroring a host event loop.
type Scheduler interface {
	// Schedule runs fn once after d. A non-positive d runs fn as soon as
	// the scheduler gets to it, never synchronously inside Schedule.
	Schedule(d time.Duration, fn func()) Timer

	// Now returns the scheduler's current time.
	Now() time.Time
}

// stoppedTimer is returned when a callback can never run.
type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return false }
