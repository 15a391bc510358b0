package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// Event is a dispatched DOM event.
type Event struct {
	// Type is the event name without the "on" prefix ("click").
	Type string

	// Target is the node the event was dispatched on.
	Target *VNode

	// CurrentTarget is the node whose handler is running.
	CurrentTarget *VNode

	stopped   bool
	prevented bool
}

// StopPropagation prevents the event from bubbling to ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// PreventDefault marks the default action as cancelled.
func (e *Event) PreventDefault() { e.prevented = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// ModifiedHandler wraps a handler with modifier flags applied by the
// dispatcher before the handler runs.
type ModifiedHandler struct {
	Handler any

	PreventDefault  bool // Prevent default host behavior
	StopPropagation bool // Stop event bubbling
	Self            bool // Only fire if target is the exact element
}

// Unwrap returns the innermost handler, unwrapping any nested ModifiedHandlers.
func (m ModifiedHandler) Unwrap() any {
	if inner, ok := m.Handler.(ModifiedHandler); ok {
		return inner.Unwrap()
	}
	return m.Handler
}

// StopPropagation wraps a handler to stop event bubbling.
//
//	OnClick(StopPropagation(func() {
//	    // Click won't bubble up
//	}))
func StopPropagation(handler any) ModifiedHandler {
	if mh, ok := handler.(ModifiedHandler); ok {
		mh.StopPropagation = true
		return mh
	}
	return ModifiedHandler{Handler: handler, StopPropagation: true}
}

// PreventDefault wraps a handler to prevent the default host behavior.
func PreventDefault(handler any) ModifiedHandler {
	if mh, ok := handler.(ModifiedHandler); ok {
		mh.PreventDefault = true
		return mh
	}
	return ModifiedHandler{Handler: handler, PreventDefault: true}
}

// Self wraps a handler so it only fires when the element itself is the target.
func Self(handler any) ModifiedHandler {
	if mh, ok := handler.(ModifiedHandler); ok {
		mh.Self = true
		return mh
	}
	return ModifiedHandler{Handler: handler, Self: true}
}

// Invoke runs a handler for ev, applying any modifiers. Supported handler
// shapes are func(), func(*Event) and ModifiedHandler wrapping either.
// It reports whether a handler ran.
func Invoke(handler any, ev *Event) bool {
	if mh, ok := handler.(ModifiedHandler); ok {
		if mh.Self && ev.Target != ev.CurrentTarget {
			return false
		}
		if mh.PreventDefault {
			ev.PreventDefault()
		}
		if mh.StopPropagation {
			ev.StopPropagation()
		}
		handler = mh.Unwrap()
	}

	switch fn := handler.(type) {
	case func():
		fn()
	case func(*Event):
		fn(ev)
	default:
		return false
	}
	return true
}
