package telemetry

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/vango-toast/pkg/toast"
	"github.com/vango-dev/vango-toast/pkg/vtest"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	return m.GetGauge().GetValue()
}

func metricHistogram(t *testing.T, o prometheus.Observer) *dto.Histogram {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	return m.GetHistogram()
}

func TestMetricsObserveLifecycle(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	h := vtest.NewHarness(vtest.WithObserver(m))

	a := h.Registry.Show("a", toast.SeveritySuccess, toast.WithDuration(1600*time.Millisecond))
	b := h.Registry.Show("b", toast.SeverityError, toast.WithDuration(0))

	if got := metricGaugeValue(t, m.active); got != 2 {
		t.Errorf("active = %v, want 2", got)
	}

	h.AdvanceTo(1600 * time.Millisecond)
	h.Click(b)
	h.Registry.Remove(a) // already gone
	h.AdvanceTo(3 * time.Second)

	if got := metricCounterValue(t, m.shown.WithLabelValues("success")); got != 1 {
		t.Errorf("shown{success} = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.dismissed.WithLabelValues("success", "timeout")); got != 1 {
		t.Errorf("dismissed{success,timeout} = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.dismissed.WithLabelValues("error", "click")); got != 1 {
		t.Errorf("dismissed{error,click} = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.dismissed.WithLabelValues("success", "api")); got != 0 {
		t.Errorf("dismissed{success,api} = %v, want 0", got)
	}
	if got := metricGaugeValue(t, m.active); got != 0 {
		t.Errorf("active = %v, want 0", got)
	}
	if got := metricCounterValue(t, m.detached); got != 2 {
		t.Errorf("detached = %v, want 2", got)
	}

	hist := metricHistogram(t, m.lifetime.WithLabelValues("timeout"))
	if hist.GetSampleCount() != 1 || math.Abs(hist.GetSampleSum()-1.6) > 1e-9 {
		t.Errorf("lifetime{timeout} count=%d sum=%v, want 1 and 1.6", hist.GetSampleCount(), hist.GetSampleSum())
	}
}

func TestMetricsPreviewCounters(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"), WithSubsystem(""))

	m.ClientConnected()
	m.ClientConnected()
	m.ClientDisconnected()
	m.RecordPatches(3)
	m.RecordPatches(2)
	m.RecordWebSocketError("write")

	if got := metricGaugeValue(t, m.clients); got != 1 {
		t.Errorf("clients = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.patchesSent); got != 5 {
		t.Errorf("patches = %v, want 5", got)
	}
	if got := metricCounterValue(t, m.wsErrors.WithLabelValues("write")); got != 1 {
		t.Errorf("ws errors = %v, want 1", got)
	}
}

func TestMetricsDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(WithRegistry(reg))

	defer func() {
		if recover() == nil {
			t.Error("expected a panic on duplicate registration")
		}
	}()
	NewMetrics(WithRegistry(reg))
}

// recordingTracer wraps a no-op tracer and keeps every span it starts.
type recordingTracer struct {
	trace.Tracer

	mu    sync.Mutex
	spans []*recordingSpan
}

func newRecordingTracer() *recordingTracer {
	return &recordingTracer{Tracer: noop.NewTracerProvider().Tracer("test")}
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	ctx, inner := r.Tracer.Start(ctx, name, opts...)
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordingSpan{Span: inner, name: name, start: cfg.Timestamp(), attrs: cfg.Attributes()}
	r.mu.Lock()
	r.spans = append(r.spans, s)
	r.mu.Unlock()
	return ctx, s
}

type recordingSpan struct {
	trace.Span

	name   string
	start  time.Time
	end    time.Time
	ended  bool
	attrs  []attribute.KeyValue
	events []string
}

func (s *recordingSpan) End(opts ...trace.SpanEndOption) {
	s.ended = true
	cfg := trace.NewSpanEndConfig(opts...)
	s.end = cfg.Timestamp()
}

func (s *recordingSpan) AddEvent(name string, _ ...trace.EventOption) {
	s.events = append(s.events, name)
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	s.attrs = append(s.attrs, kv...)
}

func (s *recordingSpan) attr(key string) attribute.Value {
	var v attribute.Value
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			v = kv.Value
		}
	}
	return v
}

func TestTracingSpanPerToast(t *testing.T) {
	tracer := newRecordingTracer()
	var h *vtest.Harness
	tr := NewTracing(WithTracer(tracer), WithClock(func() time.Time { return h.Clock.Now() }))
	h = vtest.NewHarness(vtest.WithObserver(tr))

	t1 := h.Registry.Show("Saved", toast.SeveritySuccess, toast.WithDuration(time.Second))
	if tr.Open() != 1 || len(tracer.spans) != 1 {
		t.Fatalf("open = %d, spans = %d", tr.Open(), len(tracer.spans))
	}

	h.AdvanceTo(time.Second + toast.DefaultExitDelay)

	span := tracer.spans[0]
	if span.name != "toast success" {
		t.Errorf("span name = %q", span.name)
	}
	if !span.ended || tr.Open() != 0 {
		t.Fatal("span should end when the toast is detached")
	}
	if got := span.end.Sub(span.start); got != time.Second+toast.DefaultExitDelay {
		t.Errorf("span length = %v, want 1.4s", got)
	}
	if len(span.events) != 1 || span.events[0] != "dismissed" {
		t.Errorf("events = %v", span.events)
	}
	if got := span.attr("toast.trigger").AsString(); got != "timeout" {
		t.Errorf("toast.trigger = %q", got)
	}
	if got := span.attr("toast.id").AsString(); got != t1.ID() {
		t.Errorf("toast.id = %q, want %q", got, t1.ID())
	}
	if span.attr("toast.message").Type() != attribute.INVALID {
		t.Error("message should not be recorded by default")
	}
}

func TestTracingIncludeMessage(t *testing.T) {
	tracer := newRecordingTracer()
	tr := NewTracing(WithTracer(tracer), WithIncludeMessage(true))
	h := vtest.NewHarness(vtest.WithObserver(tr))

	h.Registry.Show("hello", toast.SeverityInfo)
	if got := tracer.spans[0].attr("toast.message").AsString(); got != "hello" {
		t.Errorf("toast.message = %q", got)
	}
}

func TestTracingGlobalProvider(t *testing.T) {
	tr := NewTracing(WithTracerName("custom"))
	h := vtest.NewHarness(vtest.WithObserver(tr))

	t1 := h.Registry.Show("x", toast.SeverityInfo)
	h.Registry.Remove(t1)
	h.Advance(time.Second)

	if tr.Open() != 0 {
		t.Errorf("open = %d, want 0", tr.Open())
	}
}
