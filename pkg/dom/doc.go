// Package dom implements the host document toasts are mounted into.
//
// A Document is an in-memory <html> tree built from vdom nodes. It provides
// the primitives a browser page would: lookup by id, appending and
// detaching elements, inline style and class mutation, and event dispatch
// with bubbling. Mutations of attached nodes are published as vdom.Patch
// values so a remote surface (see package live) can mirror the document.
//
//	doc := dom.NewDocument()
//	unsubscribe := doc.Subscribe(func(p vdom.Patch) { ... })
//	defer unsubscribe()
//
//	doc.AppendChild(doc.Body(), vdom.Div(vdom.ID("toast-container")))
//	doc.Dispatch(closeButton, "click")
package dom
