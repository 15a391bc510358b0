package vtest_test

import (
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/vango-toast/pkg/dom"
	"github.com/vango-dev/vango-toast/pkg/toast"
	"github.com/vango-dev/vango-toast/pkg/vdom"
	"github.com/vango-dev/vango-toast/pkg/vtest"
)

// recorder captures assertion failures without failing the outer test.
type recorder struct {
	testing.TB
	failed bool
}

func (r *recorder) Helper() {}
func (r *recorder) Errorf(string, ...any) { r.failed = true }
func (r *recorder) Fatalf(string, ...any) { r.failed = true }

func TestRenderToString(t *testing.T) {
	node := vdom.Div(
		vdom.Class("container"),
		vdom.H6(vdom.Text("Hello")),
		vdom.P(vdom.Text("World")),
	)
	node.HID = "h1"

	html := vtest.RenderToString(node)

	if html == "" {
		t.Fatal("expected non-empty HTML")
	}
	for _, want := range []string{"container", "Hello", "World"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in %s", want, html)
		}
	}
	if strings.Contains(html, "data-hid") {
		t.Error("hydration IDs should be omitted")
	}
}

func TestExpectations(t *testing.T) {
	node := vdom.Div(
		vdom.Role("status"),
		vdom.Styles("opacity", "0"),
		vdom.Span(vdom.Class("badge"), vdom.Text("Hello World")),
	)

	tests := []struct {
		name     string
		check    func(tb testing.TB)
		wantFail bool
	}{
		{"contains", func(tb testing.TB) { vtest.ExpectContains(tb, node, "Hello") }, false},
		{"contains missing", func(tb testing.TB) { vtest.ExpectContains(tb, node, "Goodbye") }, true},
		{"not contains", func(tb testing.TB) { vtest.ExpectNotContains(tb, node, "Goodbye") }, false},
		{"element", func(tb testing.TB) { vtest.ExpectElement(tb, node, "badge") }, false},
		{"element missing", func(tb testing.TB) { vtest.ExpectElement(tb, node, "nope") }, true},
		{"attribute", func(tb testing.TB) { vtest.ExpectAttribute(tb, node, "role", "status") }, false},
		{"attribute mismatch", func(tb testing.TB) { vtest.ExpectAttribute(tb, node, "role", "alert") }, true},
		{"style", func(tb testing.TB) { vtest.ExpectStyle(tb, node, "opacity", "0") }, false},
		{"style mismatch", func(tb testing.TB) { vtest.ExpectStyle(tb, node, "opacity", "1") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{TB: t}
			tt.check(rec)
			if rec.failed != tt.wantFail {
				t.Errorf("failed = %v, want %v", rec.failed, tt.wantFail)
			}
		})
	}
}

func TestHarnessRecordsLifecycle(t *testing.T) {
	h := vtest.NewHarness()
	t1 := h.Registry.Show("Saved", toast.SeveritySuccess, toast.WithDuration(time.Second))

	h.ExpectActive(t, t1, true)
	h.AdvanceTo(time.Second)
	h.ExpectActive(t, t1, false)
	h.ExpectAttached(t, t1, true)
	h.AdvanceTo(time.Second + toast.DefaultExitDelay)
	h.ExpectAttached(t, t1, false)

	want := []vtest.Event{
		{Kind: "shown", ID: t1.ID()},
		{Kind: "dismissed", ID: t1.ID(), Trigger: toast.TriggerTimeout, At: time.Second},
		{Kind: "detached", ID: t1.ID(), At: time.Second + toast.DefaultExitDelay},
	}
	if len(h.Events) != len(want) {
		t.Fatalf("events = %+v", h.Events)
	}
	for i := range want {
		if h.Events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, h.Events[i], want[i])
		}
	}
}

func TestHarnessOptions(t *testing.T) {
	cfg := toast.DefaultConfig()
	cfg.ContainerID = "notices"
	seen := 0

	h := vtest.NewHarness(
		vtest.WithToastConfig(cfg),
		vtest.WithDocumentOptions(dom.WithIgnoreStopPropagation()),
		vtest.WithObserver(toast.ObserverFuncs{Shown: func(*toast.Handle) { seen++ }}),
	)
	h.Registry.Show("hi", toast.SeverityInfo)

	if h.Doc.ElementByID("notices") == nil {
		t.Error("container should use the configured id")
	}
	if seen != 1 {
		t.Errorf("extra observer saw %d toasts", seen)
	}
}
