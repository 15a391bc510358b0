package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/vango-toast/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Class("container"),
		vdom.H6(vdom.Text("Title")),
		vdom.P(vdom.Text("Content")),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `<div class="container"><h6>Title</h6><p>Content</p></div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderVoidElements(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{"meta", vdom.Element("meta", vdom.Charset("utf-8")), `<meta charset="utf-8">`},
		{"link", vdom.Element("link", vdom.Attr{Key: "rel", Value: "stylesheet"}), `<link rel="stylesheet">`},
		{"br", vdom.Element("br"), `<br>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := renderer.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if html != tt.want {
				t.Errorf("got %q, want %q", html, tt.want)
			}
		})
	}
}

func TestRenderBooleanAttributes(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Button(vdom.Attr{Key: "disabled", Value: true}, vdom.Attr{Key: "hidden", Value: false})
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != `<button disabled></button>` {
		t.Errorf("got %q", html)
	}
}

func TestRenderStyleDeclarations(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Styles("opacity", "0", "transform", "translateY(-20px)"))
	node.Style().Set("opacity", "1")

	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div style="opacity: 1; transform: translateY(-20px)"></div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderHydrationIDAndEventMarkers(t *testing.T) {
	node := vdom.Button(vdom.OnClick(vdom.StopPropagation(func() {})), vdom.Text("x"))
	node.HID = "h7"

	html, err := NewRenderer(RendererConfig{}).RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `data-hid="h7"`) {
		t.Errorf("should contain hydration ID, got %q", html)
	}
	if !strings.Contains(html, `data-on-click="true"`) {
		t.Errorf("should contain event marker, got %q", html)
	}
	if strings.Contains(html, "onclick=") {
		t.Errorf("handlers must not render as attributes, got %q", html)
	}

	html, _ = NewRenderer(RendererConfig{OmitHIDs: true}).RenderToString(node)
	if strings.Contains(html, "data-hid") {
		t.Errorf("OmitHIDs should suppress data-hid, got %q", html)
	}
}

func TestRenderRaw(t *testing.T) {
	html, err := NewRenderer(RendererConfig{}).RenderToString(vdom.Raw("<strong>Bold</strong>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<strong>Bold</strong>" {
		t.Errorf("raw HTML should not be escaped, got %q", html)
	}
}

func TestRenderFragment(t *testing.T) {
	html, err := NewRenderer(RendererConfig{}).RenderToString(vdom.Fragment(vdom.Span("a"), "b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<span>a</span>b" {
		t.Errorf("got %q", html)
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true, Indent: "  "})

	node := vdom.Div(
		vdom.H6(vdom.Text("Title")),
		vdom.P(vdom.Text("Content")),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "  <h6>Title</h6>\n") {
		t.Errorf("pretty output should have indentation, got %q", html)
	}
}

func TestRenderNilNode(t *testing.T) {
	html, err := NewRenderer(RendererConfig{}).RenderToString(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "" {
		t.Errorf("nil node should produce empty string, got %q", html)
	}
}

func TestRenderToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(RendererConfig{}).RenderToWriter(&buf, vdom.Div(vdom.Text("Hello"))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "<div>Hello</div>" {
		t.Errorf("got %q, want %q", buf.String(), "<div>Hello</div>")
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	node := vdom.Div(vdom.Data("msg", `test" onclick="alert('xss')`))
	html, err := NewRenderer(RendererConfig{}).RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `data-msg="test&quot;`) {
		t.Errorf("should have properly escaped attribute, got %q", html)
	}
}

func TestRenderPage(t *testing.T) {
	body := vdom.Body(vdom.Div(vdom.ID("toast-container")))
	body.HID = "h2"

	var buf bytes.Buffer
	err := NewRenderer(RendererConfig{}).RenderPage(&buf, PageData{
		Title:   "Preview <1>",
		Head:    []*vdom.VNode{vdom.StyleEl(vdom.Raw(".a{}"))},
		Body:    body,
		Scripts: []ScriptTag{{Inline: "window.x=1"}, {Src: "/client.js", Defer: true}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Preview &lt;1&gt;</title>",
		"<style>.a{}</style>",
		`<body data-hid="h2"><div id="toast-container"></div>`,
		"<script>window.x=1</script>",
		`<script src="/client.js" defer></script>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q:\n%s", want, html)
		}
	}
	if strings.Index(html, "<script>") > strings.Index(html, "</body>") {
		t.Error("scripts should be rendered inside body")
	}
}

func TestRenderPageWrapsNonBodyRoot(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(RendererConfig{}).RenderPage(&buf, PageData{Body: vdom.P("x"), Lang: "de"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `<html lang="de">`) || !strings.Contains(buf.String(), "<body><p>x</p></body>") {
		t.Errorf("got %q", buf.String())
	}
}
