package schedule

import (
	"sort"
	"sync"
	"time"
)

// Epoch is the start time of every Fake clock.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Fake is a manually advanced Scheduler for tests and simulations.
// Callbacks run synchronously inside Advance, in due-time order; callbacks
// due at the same instant run in the order they were scheduled.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*fakeTimer
}

// NewFake creates a Fake clock positioned at Epoch.
func NewFake() *Fake {
	return &Fake{now: Epoch}
}

// Schedule implements Scheduler.
func (f *Fake) Schedule(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	t := &fakeTimer{owner: f, due: f.now.Add(d), seq: f.seq, fn: fn}
	f.pending = append(f.pending, t)
	sort.SliceStable(f.pending, func(i, j int) bool {
		a, b := f.pending[i], f.pending[j]
		if !a.due.Equal(b.due) {
			return a.due.Before(b.due)
		}
		return a.seq < b.seq
	})
	return t
}

// Now implements Scheduler.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Elapsed returns the time advanced since Epoch.
func (f *Fake) Elapsed() time.Duration {
	return f.Now().Sub(Epoch)
}

// Pending returns the number of callbacks waiting to run.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Advance moves the clock forward by d, running every callback that falls
// due on the way, including callbacks scheduled by earlier callbacks. It
// returns the number of callbacks run.
func (f *Fake) Advance(d time.Duration) int {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()
	return f.runUntil(target)
}

// AdvanceTo moves the clock to Epoch+offset. Moving backwards is a no-op.
func (f *Fake) AdvanceTo(offset time.Duration) int {
	target := Epoch.Add(offset)
	if !target.After(f.Now()) {
		return 0
	}
	return f.runUntil(target)
}

// RunAll runs callbacks until none remain or limit callbacks have run,
// moving the clock to each callback's due time.
func (f *Fake) RunAll(limit int) int {
	ran := 0
	for ran < limit {
		f.mu.Lock()
		if len(f.pending) == 0 {
			f.mu.Unlock()
			break
		}
		t := f.pending[0]
		f.pending = f.pending[1:]
		if t.due.After(f.now) {
			f.now = t.due
		}
		f.mu.Unlock()

		t.fn()
		ran++
	}
	return ran
}

func (f *Fake) runUntil(target time.Time) int {
	ran := 0
	for {
		f.mu.Lock()
		if len(f.pending) == 0 || f.pending[0].due.After(target) {
			f.now = target
			f.mu.Unlock()
			return ran
		}
		t := f.pending[0]
		f.pending = f.pending[1:]
		f.now = t.due
		f.mu.Unlock()

		t.fn()
		ran++
	}
}

func (f *Fake) remove(t *fakeTimer) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.pending {
		if p == t {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return true
		}
	}
	return false
}

type fakeTimer struct {
	owner *Fake
	due   time.Time
	seq   uint64
	fn    func()
}

func (t *fakeTimer) Stop() bool {
	return t.owner.remove(t)
}
