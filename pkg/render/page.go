package render

import (
	"io"

	"github.com/vango-dev/vango-toast/pkg/vdom"
)

// PageData describes a complete HTML document.
type PageData struct {
	Title string

	// Head holds extra head nodes such as style elements.
	Head []*vdom.VNode

	// Body is the page content. A <body> element is rendered as-is,
	// anything else is wrapped in one.
	Body *vdom.VNode

	// Scripts are appended to the end of the body.
	Scripts []ScriptTag

	// StyleSheets are external stylesheet URLs.
	StyleSheets []string

	// Lang is the html lang attribute (default: "en").
	Lang string
}

// ScriptTag is a script element, either external (Src) or inline.
type ScriptTag struct {
	Src    string
	Defer  bool
	Inline string
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	p := r.printer(w)
	p.printf("<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", escapeAttr(lang))
	p.str("<meta charset=\"utf-8\">\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	if page.Title != "" {
		p.printf("<title>%s</title>\n", escapeHTML(page.Title))
	}
	for _, href := range page.StyleSheets {
		p.printf("<link rel=\"stylesheet\" href=\"%s\">\n", escapeAttr(href))
	}
	for _, n := range page.Head {
		p.node(n, 0)
	}
	p.str("</head>\n")

	// Scripts go inside the body element, so a <body> root is opened
	// here rather than rendered whole.
	if body := page.Body; body != nil && body.Kind == vdom.KindElement && body.Tag == "body" {
		p.openTag(body)
		p.str(">")
		for _, c := range body.Children {
			p.node(c, 0)
		}
	} else {
		p.str("<body>")
		p.node(body, 0)
	}

	for _, s := range page.Scripts {
		switch {
		case s.Src == "":
			p.printf("\n<script>%s</script>", s.Inline)
		case s.Defer:
			p.printf("\n<script src=\"%s\" defer></script>", escapeAttr(s.Src))
		default:
			p.printf("\n<script src=\"%s\"></script>", escapeAttr(s.Src))
		}
	}
	p.str("</body>\n</html>\n")
	return p.err
}
