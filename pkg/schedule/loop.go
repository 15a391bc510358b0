package schedule

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Loop is a real-time Scheduler backed by a single dispatch goroutine.
// Timer callbacks, and anything handed to Dispatch, run serially in FIFO
// order on that goroutine.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}

	started  atomic.Bool
	stopOnce sync.Once
	logger   *slog.Logger
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLogger sets the logger used to report recovered callback panics.
func WithLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

// NewLoop creates a Loop. Call Start before scheduling work.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		logger:  slog.Default().With("component", "schedule"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start launches the dispatch goroutine. Calling Start more than once is a
// no-op.
func (l *Loop) Start() {
	if !l.started.CompareAndSwap(false, true) {
		return
	}
	go l.run()
}

// Stop ends the dispatch goroutine after the callback in flight, if any,
// returns. Queued callbacks are dropped. Stop must not be called from a
// callback running on the loop.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
		if l.started.Load() {
			<-l.stopped
		}
	})
}

// Dispatch queues fn to run on the loop. It reports false if the loop has
// been stopped.
func (l *Loop) Dispatch(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Schedule implements Scheduler.
func (l *Loop) Schedule(d time.Duration, fn func()) Timer {
	if d <= 0 {
		t := &loopTimer{}
		if !l.Dispatch(func() {
			if t.fired.CompareAndSwap(false, true) {
				fn()
			}
		}) {
			return stoppedTimer{}
		}
		return t
	}

	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		// Use atomic to prevent double-fire after cancel
		if t.fired.CompareAndSwap(false, true) {
			l.Dispatch(fn)
		}
	})
	return t
}

// Now implements Scheduler.
func (l *Loop) Now() time.Time {
	return time.Now()
}

func (l *Loop) run() {
	defer close(l.stopped)
	for {
		select {
		case <-l.done:
			return
		case <-l.wake:
		}

		for {
			l.mu.Lock()
			if len(l.queue) == 0 {
				l.mu.Unlock()
				break
			}
			fn := l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
			l.mu.Unlock()

			select {
			case <-l.done:
				return
			default:
			}
			l.invoke(fn)
		}
	}
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("scheduled callback panicked", "panic", r)
		}
	}()
	fn()
}

type loopTimer struct {
	fired atomic.Bool
	timer *time.Timer
}

func (t *loopTimer) Stop() bool {
	if !t.fired.CompareAndSwap(false, true) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}
