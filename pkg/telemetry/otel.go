package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vango-toast/pkg/toast"
)

// Default tracer name for toast spans.
const defaultTracerName = "vango-toast"

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "vango-toast").
	TracerName string

	// Tracer overrides the tracer resolved from the global provider.
	Tracer trace.Tracer

	// IncludeMessage records the toast message as a span attribute.
	// Messages may contain user data, so this is off by default.
	IncludeMessage bool

	// Now is the clock used to end spans (default: time.Now).
	Now func() time.Time
}

// TracingOption configures the OpenTelemetry observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(tracer trace.Tracer) TracingOption {
	return func(c *TracingConfig) {
		c.Tracer = tracer
	}
}

// WithIncludeMessage enables recording the message text.
func WithIncludeMessage(include bool) TracingOption {
	return func(c *TracingConfig) {
		c.IncludeMessage = include
	}
}

// WithClock sets the clock used to end spans. Pass the scheduler's Now so
// span timestamps follow the same clock as the toast lifecycle.
func WithClock(now func() time.Time) TracingOption {
	return func(c *TracingConfig) {
		c.Now = now
	}
}

// Tracing is a toast.Observer that records one span per toast, from show
// to detach. Dismissal is recorded as a span event carrying the trigger.
//
// The tracer uses the global OpenTelemetry tracer provider unless one is
// given with WithTracer. Configure the provider in main() before use.
type Tracing struct {
	config TracingConfig

	mu    sync.Mutex
	spans map[*toast.Handle]trace.Span
}

var _ toast.Observer = (*Tracing)(nil)

// NewTracing creates the tracing observer.
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{
		TracerName: defaultTracerName,
		Now:        time.Now,
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Tracer == nil {
		config.Tracer = otel.Tracer(config.TracerName)
	}
	return &Tracing{
		config: config,
		spans:  make(map[*toast.Handle]trace.Span),
	}
}

// ToastShown implements toast.Observer.
func (t *Tracing) ToastShown(h *toast.Handle) {
	opts := h.Options()
	attrs := []attribute.KeyValue{
		attribute.String("toast.id", h.ID()),
		attribute.String("toast.severity", string(h.Severity())),
		attribute.Int64("toast.duration_ms", opts.Duration.Milliseconds()),
		attribute.Bool("toast.progress", opts.Progress),
		attribute.Bool("toast.click_to_dismiss", opts.ClickToDismiss),
	}
	if t.config.IncludeMessage {
		attrs = append(attrs, attribute.String("toast.message", h.Message()))
	}

	_, span := t.config.Tracer.Start(
		context.Background(),
		"toast "+string(h.Severity()),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(h.ShownAt()),
	)

	t.mu.Lock()
	t.spans[h] = span
	t.mu.Unlock()
}

// ToastDismissed implements toast.Observer.
func (t *Tracing) ToastDismissed(h *toast.Handle, trigger toast.Trigger) {
	span := t.span(h, false)
	if span == nil {
		return
	}
	span.AddEvent("dismissed",
		trace.WithAttributes(attribute.String("toast.trigger", trigger.String())),
		trace.WithTimestamp(h.DismissedAt()),
	)
	span.SetAttributes(attribute.String("toast.trigger", trigger.String()))
}

// ToastDetached implements toast.Observer.
func (t *Tracing) ToastDetached(h *toast.Handle) {
	span := t.span(h, true)
	if span == nil {
		return
	}
	span.SetStatus(codes.Ok, "")
	span.End(trace.WithTimestamp(t.config.Now()))
}

// Open returns the number of toasts whose spans have not ended.
func (t *Tracing) Open() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.spans)
}

func (t *Tracing) span(h *toast.Handle, remove bool) trace.Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	span := t.spans[h]
	if remove {
		delete(t.spans, h)
	}
	return span
}
