// Package vtest provides testing helpers for toast lifecycles.
//
// A Harness wires a schedule.Fake clock, a dom.Document and a
// toast.Registry together and records every lifecycle notification, so
// tests drive time explicitly and assert on what happened when.
//
// # Quick Start
//
//	func TestAutoDismiss(t *testing.T) {
//	    h := vtest.NewHarness()
//	    t1 := h.Registry.Show("Saved", toast.SeveritySuccess)
//
//	    h.AdvanceTo(1600 * time.Millisecond)
//	    h.ExpectActive(t, t1, false)
//	    h.ExpectAttached(t, t1, true)
//
//	    h.AdvanceTo(2000 * time.Millisecond)
//	    h.ExpectAttached(t, t1, false)
//	}
//
// # Render Assertions
//
//	vtest.ExpectContains(t, t1.Element(), "Saved")
//	vtest.ExpectAttribute(t, t1.Element(), "role", "status")
//	vtest.ExpectStyle(t, t1.Element(), "opacity", "1")
//
// # Propagation Quirks
//
// Hosts that keep bubbling after a handler stops propagation are modelled
// with WithDocumentOptions(dom.WithIgnoreStopPropagation()).
package vtest
