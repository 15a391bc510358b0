package dom

import "github.com/vango-dev/vango-toast/pkg/vdom"

// Dispatch fires an event of the given type ("click") at target and
// bubbles it through target's ancestors. Each element's "on<type>" handler
// runs via vdom.Invoke. Bubbling stops when a handler stops propagation,
// unless the document was built with WithIgnoreStopPropagation.
//
// Dispatch returns the number of handlers that ran. Events on detached
// nodes still bubble through whatever ancestors they have.
func (d *Document) Dispatch(target *vdom.VNode, eventType string) int {
	if target == nil {
		return 0
	}

	// Resolve the propagation path up front; handlers may detach nodes.
	d.mu.Lock()
	var path []*vdom.VNode
	for n := target; n != nil; n = d.parents[n] {
		path = append(path, n)
	}
	d.mu.Unlock()

	ev := &vdom.Event{Type: eventType, Target: target}
	key := "on" + eventType
	ran := 0
	for _, node := range path {
		d.mu.Lock()
		handler := node.Props[key]
		d.mu.Unlock()
		if handler == nil {
			continue
		}

		ev.CurrentTarget = node
		if vdom.Invoke(handler, ev) {
			ran++
		}
		if ev.PropagationStopped() && !d.ignoreStop {
			break
		}
	}

	d.logger.Debug("event dispatched", "type", eventType, "hid", target.HID, "handlers", ran)
	return ran
}

// DispatchHID is Dispatch addressed by hydration ID, as used by remote
// clients. Unknown IDs are ignored.
func (d *Document) DispatchHID(hid, eventType string) int {
	return d.Dispatch(d.ElementByHID(hid), eventType)
}
