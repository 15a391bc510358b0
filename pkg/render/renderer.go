package render

import (
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/vango-dev/vango-toast/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty indents block elements one level per depth and ends each
	// element with a newline. Meant for previews and debugging.
	Pretty bool

	// Indent is one level of indentation in pretty mode (default: two spaces).
	Indent string

	// OmitHIDs suppresses data-hid attributes. Used when the output is a
	// static snapshot that no client will bind to.
	OmitHIDs bool
}

// Renderer turns VNode trees into HTML. It holds no per-render state and
// may be shared between goroutines.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a Renderer.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var sb strings.Builder
	if err := r.RenderToWriter(&sb, node); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderToWriter streams a VNode tree to w. The first write error stops
// rendering and is returned.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	p := r.printer(w)
	p.node(node, 0)
	return p.err
}

func (r *Renderer) printer(w io.Writer) *printer {
	return &printer{
		w:        w,
		pretty:   r.config.Pretty,
		indent:   r.config.Indent,
		omitHIDs: r.config.OmitHIDs,
	}
}

// printer writes markup and keeps the first error it sees. Every write
// after a failure is a no-op.
type printer struct {
	w        io.Writer
	pretty   bool
	indent   string
	omitHIDs bool
	err      error
}

func (p *printer) str(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *printer) printf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

func (p *printer) newline() {
	if p.pretty {
		p.str("\n")
	}
}

func (p *printer) pad(depth int) {
	if p.pretty && depth > 0 {
		p.str(strings.Repeat(p.indent, depth))
	}
}

func (p *printer) node(n *vdom.VNode, depth int) {
	if n == nil || p.err != nil {
		return
	}
	switch n.Kind {
	case vdom.KindElement:
		p.element(n, depth)
	case vdom.KindText:
		p.str(escapeHTML(n.Text))
	case vdom.KindRaw:
		p.str(n.Text)
	case vdom.KindFragment:
		for _, c := range n.Children {
			p.node(c, depth)
		}
	default:
		p.err = fmt.Errorf("render: unknown node kind %d", n.Kind)
	}
}

func (p *printer) element(n *vdom.VNode, depth int) {
	p.pad(depth)
	p.openTag(n)
	p.str(">")
	if isVoidElement(n.Tag) {
		p.newline()
		return
	}

	block := p.pretty && len(n.Children) > 0 && !isInlineElement(n.Tag) && !textOnly(n)
	if block {
		p.str("\n")
	}
	for _, c := range n.Children {
		p.node(c, depth+1)
	}
	if block {
		p.pad(depth)
	}
	p.str("</" + n.Tag + ">")
	p.newline()
}

// openTag writes "<tag attrs" without the closing '>'. Props are written
// in key order. Handler props become data-on-<event> markers after the
// plain attributes.
func (p *printer) openTag(n *vdom.VNode) {
	p.str("<" + n.Tag)

	var events []string
	for _, key := range slices.Sorted(maps.Keys(n.Props)) {
		value := n.Props[key]
		switch {
		case strings.HasPrefix(key, "_"):
			// internal
		case strings.HasPrefix(key, "on") && isEventHandler(value):
			events = append(events, strings.ToLower(key[2:]))
		default:
			p.attr(key, value)
		}
	}
	for _, name := range events {
		p.printf(` data-on-%s="true"`, name)
	}

	if n.HID != "" && !p.omitHIDs {
		p.printf(` data-hid="%s"`, escapeAttr(n.HID))
	}
}

func (p *printer) attr(key string, value any) {
	if b, ok := value.(bool); ok && isBooleanAttr(key) {
		if b {
			p.str(" " + key)
		}
		return
	}
	if s := attrString(value); s != "" {
		p.printf(` %s="%s"`, key, escapeAttr(s))
	}
}

func isEventHandler(value any) bool {
	switch value.(type) {
	case nil:
		return false
	case func(), func(*vdom.Event), vdom.ModifiedHandler:
		return true
	}
	return reflect.TypeOf(value).Kind() == reflect.Func
}

func attrString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *vdom.Style:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprint(value)
}

func textOnly(n *vdom.VNode) bool {
	for _, c := range n.Children {
		if c.Kind != vdom.KindText {
			return false
		}
	}
	return true
}
