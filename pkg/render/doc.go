// Package render converts VNode trees into HTML.
//
// It is used for document snapshots (the live preview's initial page and
// inserted nodes), for the CLI's render command, and for test assertions.
//
//   - HTML5 compliant element rendering
//   - Proper text and attribute escaping (XSS prevention)
//   - Void element and boolean attribute handling
//   - Inline Style declarations rendered in insertion order
//   - data-hid attributes for elements mounted into a document
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Full Page Rendering
//
//	err := renderer.RenderPage(w, render.PageData{
//	    Title:   "Toast preview",
//	    Head:    doc.Head().Children,
//	    Body:    doc.Body(),
//	    Scripts: []render.ScriptTag{{Inline: clientJS}},
//	})
//
// # Security
//
// All text content is escaped. Raw HTML can be inserted using KindRaw
// nodes, but should only be used with trusted content.
package render
