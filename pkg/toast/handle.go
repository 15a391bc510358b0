package toast

import (
	"time"

	"github.com/vango-dev/vango-toast/pkg/schedule"
	"github.com/vango-dev/vango-toast/pkg/vdom"
)

// Trigger records which dismissal path removed a toast.
type Trigger string

const (
	TriggerNone    Trigger = ""
	TriggerTimeout Trigger = "timeout"
	TriggerClose   Trigger = "close"
	TriggerClick   Trigger = "click"
	TriggerAPI     Trigger = "api"
)

func (t Trigger) String() string {
	if t == TriggerNone {
		return "none"
	}
	return string(t)
}

// Handle is an opaque reference to one shown toast. Handles are compared
// by pointer; the ID is for logs, metrics and the data-toast-id attribute.
type Handle struct {
	reg *Registry

	id       string
	severity Severity
	message  string
	options  Options

	element  *vdom.VNode
	progress *vdom.VNode // nil without a progress bar

	// Guarded by reg.mu.
	timer       schedule.Timer
	active      bool
	trigger     Trigger
	shownAt     time.Time
	dismissedAt time.Time
	pending     []notice // observer notices not yet delivered
	delivering  bool
}

// ID returns the toast's unique identifier.
func (h *Handle) ID() string { return h.id }

// Severity returns the normalized severity.
func (h *Handle) Severity() Severity { return h.severity }

// Message returns the message text.
func (h *Handle) Message() string { return h.message }

// Options returns the resolved options.
func (h *Handle) Options() Options { return h.options }

// Element returns the toast's root element.
func (h *Handle) Element() *vdom.VNode { return h.element }

// Theme returns the visual configuration derived from the severity.
func (h *Handle) Theme() Theme { return ThemeFor(h.severity) }

// Active reports whether the toast is still in its registry's active set.
func (h *Handle) Active() bool {
	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()
	return h.active
}

// Trigger returns the path that dismissed the toast, or TriggerNone.
func (h *Handle) Trigger() Trigger {
	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()
	return h.trigger
}

// ShownAt returns the scheduler time at which the toast was mounted.
func (h *Handle) ShownAt() time.Time {
	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()
	return h.shownAt
}

// DismissedAt returns the scheduler time of dismissal, or the zero time.
func (h *Handle) DismissedAt() time.Time {
	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()
	return h.dismissedAt
}

// ProgressDuration returns how long the progress bar takes to empty: the
// toast duration minus the settle delay, never negative. It is zero when
// the toast has no progress bar.
func (h *Handle) ProgressDuration() time.Duration {
	if h.progress == nil {
		return 0
	}
	return progressDuration(h.options.Duration, h.reg.config.ProgressSettle)
}

func progressDuration(duration, settle time.Duration) time.Duration {
	if d := duration - settle; d > 0 {
		return d
	}
	return 0
}
