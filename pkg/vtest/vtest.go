package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/vango-toast/pkg/render"
	"github.com/vango-dev/vango-toast/pkg/vdom"
)

// RenderToString renders a VNode and returns the HTML string, without
// hydration IDs. Rendering errors yield "".
//
// Example:
//
//	html := vtest.RenderToString(handle.Element())
//	if !strings.Contains(html, "Saved") {
//	    t.Error("missing message")
//	}
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{OmitHIDs: true})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, handle.Element(), "Saved successfully")
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that the tree contains an element with the class.
//
// Example:
//
//	vtest.ExpectElement(t, handle.Element(), "progress-bar")
func ExpectElement(t testing.TB, node *vdom.VNode, class string) *vdom.VNode {
	t.Helper()
	found := vdom.FindByClass(node, class)
	if found == nil {
		t.Errorf("expected an element with class %q, got:\n%s", class, truncate(RenderToString(node), 500))
	}
	return found
}

// ExpectAttribute asserts the value of an attribute on node itself.
//
// Example:
//
//	vtest.ExpectAttribute(t, handle.Element(), "role", "status")
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	if got := node.Attr(attr); got != value {
		t.Errorf("attribute %s = %q, want %q", attr, got, value)
	}
}

// ExpectStyle asserts the value of an inline style property on node.
//
// Example:
//
//	vtest.ExpectStyle(t, handle.Element(), "opacity", "1")
func ExpectStyle(t testing.TB, node *vdom.VNode, prop, value string) {
	t.Helper()
	if node == nil {
		t.Errorf("style %s: node is nil", prop)
		return
	}
	if got := node.Style().Get(prop); got != value {
		t.Errorf("style %s = %q, want %q", prop, got, value)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
