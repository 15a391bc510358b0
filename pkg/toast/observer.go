package toast

// Observer receives lifecycle notifications from a Registry. Methods are
// called outside the registry lock, from whichever goroutine drove the
// transition, and must not block.
type Observer interface {
	// ToastShown is called after the toast is mounted and active.
	ToastShown(h *Handle)

	// ToastDismissed is called once, after the toast left the active set.
	ToastDismissed(h *Handle, trigger Trigger)

	// ToastDetached is called when the element has been removed from the
	// document after the exit animation.
	ToastDetached(h *Handle)
}

// ObserverFuncs adapts optional functions to an Observer.
type ObserverFuncs struct {
	Shown     func(h *Handle)
	Dismissed func(h *Handle, trigger Trigger)
	Detached  func(h *Handle)
}

func (f ObserverFuncs) ToastShown(h *Handle) {
	if f.Shown != nil {
		f.Shown(h)
	}
}

func (f ObserverFuncs) ToastDismissed(h *Handle, trigger Trigger) {
	if f.Dismissed != nil {
		f.Dismissed(h, trigger)
	}
}

func (f ObserverFuncs) ToastDetached(h *Handle) {
	if f.Detached != nil {
		f.Detached(h)
	}
}
