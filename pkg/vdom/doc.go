// Package vdom provides the virtual DOM node tree used to build toasts.
//
// A toast, its mounting surface and the host page are all VNode trees held
// in memory. Hosts mirror them into a real rendering surface by applying the
// Patch records a document emits when the tree is mutated.
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text,
// fragments and raw HTML. Props holds attributes and event handlers. Attr
// and EventHandler are used to build Props. Style is an ordered set of
// inline CSS declarations that can be mutated after mount.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("toast-notification"), Styles("opacity", "0"),
//	    P(Class("toast-message"), Text("Saved")),
//	    OnClick(dismiss),
//	)
//
// # Events
//
// Handlers are func() or func(*Event), optionally wrapped with
// StopPropagation, PreventDefault or Self. Invoke applies the wrappers and
// runs the handler; bubbling is the dispatcher's job.
package vdom
