package vtest

import (
	"testing"
	"time"

	"github.com/vango-dev/vango-toast/pkg/dom"
	"github.com/vango-dev/vango-toast/pkg/schedule"
	"github.com/vango-dev/vango-toast/pkg/toast"
	"github.com/vango-dev/vango-toast/pkg/vdom"
)

// Harness wires a fake clock, a document and a registry together and
// records every lifecycle notification.
type Harness struct {
	Clock    *schedule.Fake
	Doc      *dom.Document
	Registry *toast.Registry

	// Events holds lifecycle notifications in order.
	Events []Event
}

// Event is one recorded lifecycle notification.
type Event struct {
	Kind    string // "shown", "dismissed" or "detached"
	ID      string
	Trigger toast.Trigger
	At      time.Duration // fake clock offset
}

// HarnessConfig configures a Harness.
type HarnessConfig struct {
	Toast     toast.Config
	DocOpts   []dom.Option
	Observers []toast.Observer
}

// HarnessOption configures a Harness.
type HarnessOption func(*HarnessConfig)

// WithToastConfig sets the registry configuration.
func WithToastConfig(cfg toast.Config) HarnessOption {
	return func(c *HarnessConfig) {
		c.Toast = cfg
	}
}

// WithDocumentOptions passes options to dom.NewDocument.
//
//	h := vtest.NewHarness(vtest.WithDocumentOptions(dom.WithIgnoreStopPropagation()))
func WithDocumentOptions(opts ...dom.Option) HarnessOption {
	return func(c *HarnessConfig) {
		c.DocOpts = append(c.DocOpts, opts...)
	}
}

// WithObserver adds an observer next to the harness recorder.
func WithObserver(o toast.Observer) HarnessOption {
	return func(c *HarnessConfig) {
		c.Observers = append(c.Observers, o)
	}
}

// NewHarness creates a harness with the default toast configuration.
//
// Example:
//
//	h := vtest.NewHarness()
//	t1 := h.Registry.Show("Saved", toast.SeveritySuccess)
//	h.Advance(1600 * time.Millisecond)
func NewHarness(opts ...HarnessOption) *Harness {
	cfg := HarnessConfig{Toast: toast.DefaultConfig()}
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Harness{
		Clock: schedule.NewFake(),
		Doc:   dom.NewDocument(cfg.DocOpts...),
	}
	regOpts := []toast.RegistryOption{
		toast.WithConfig(cfg.Toast),
		toast.WithObserver(h.recorder()),
	}
	for _, o := range cfg.Observers {
		regOpts = append(regOpts, toast.WithObserver(o))
	}
	h.Registry = toast.New(h.Doc, h.Clock, regOpts...)
	return h
}

func (h *Harness) recorder() toast.Observer {
	return toast.ObserverFuncs{
		Shown: func(t *toast.Handle) {
			h.Events = append(h.Events, Event{Kind: "shown", ID: t.ID(), At: h.Clock.Elapsed()})
		},
		Dismissed: func(t *toast.Handle, trigger toast.Trigger) {
			h.Events = append(h.Events, Event{Kind: "dismissed", ID: t.ID(), Trigger: trigger, At: h.Clock.Elapsed()})
		},
		Detached: func(t *toast.Handle) {
			h.Events = append(h.Events, Event{Kind: "detached", ID: t.ID(), At: h.Clock.Elapsed()})
		},
	}
}

// Advance moves the fake clock forward and runs due callbacks.
func (h *Harness) Advance(d time.Duration) int {
	return h.Clock.Advance(d)
}

// AdvanceTo moves the fake clock to the given offset from its start.
func (h *Harness) AdvanceTo(offset time.Duration) int {
	return h.Clock.AdvanceTo(offset)
}

// Click dispatches a click on the toast body.
func (h *Harness) Click(t *toast.Handle) int {
	return h.Doc.Dispatch(t.Element(), "click")
}

// ClickClose dispatches a click on the toast's close button.
func (h *Harness) ClickClose(t *toast.Handle) int {
	return h.Doc.Dispatch(vdom.FindByClass(t.Element(), "toast-close"), "click")
}

// Count returns how many recorded events of kind belong to t.
func (h *Harness) Count(t *toast.Handle, kind string) int {
	n := 0
	for _, e := range h.Events {
		if e.ID == t.ID() && e.Kind == kind {
			n++
		}
	}
	return n
}

// ExpectActive asserts t's membership in the active set.
func (h *Harness) ExpectActive(tb testing.TB, t *toast.Handle, want bool) {
	tb.Helper()
	if got := h.Registry.Contains(t); got != want {
		tb.Errorf("toast %s active = %v, want %v (at %v)", t.ID(), got, want, h.Clock.Elapsed())
	}
}

// ExpectAttached asserts whether t's element is in the document.
func (h *Harness) ExpectAttached(tb testing.TB, t *toast.Handle, want bool) {
	tb.Helper()
	if got := h.Doc.IsAttached(t.Element()); got != want {
		tb.Errorf("toast %s attached = %v, want %v (at %v)", t.ID(), got, want, h.Clock.Elapsed())
	}
}
