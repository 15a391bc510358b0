package toast

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vango-dev/vango-toast/pkg/schedule"
	"github.com/vango-dev/vango-toast/pkg/vdom"
)

// Document is the host document a Registry mounts toasts into.
// *dom.Document implements it.
type Document interface {
	Head() *vdom.VNode
	Body() *vdom.VNode
	ElementByID(id string) *vdom.VNode
	AppendChild(parent, child *vdom.VNode)
	RemoveChild(child *vdom.VNode) bool
	SetStyle(node *vdom.VNode, prop, value string)
	AddClass(node *vdom.VNode, class string)
}

// Registry owns the mounting surface and the set of active toasts.
//
// Every dismissal path (timeout, close button, click, Remove) goes through
// one membership check under the registry lock, so each toast is dismissed
// and detached exactly once. All methods are safe for concurrent use.
type Registry struct {
	doc       Document
	sched     schedule.Scheduler
	config    Config
	logger    *slog.Logger
	observers []Observer

	mu        sync.Mutex
	container *vdom.VNode
	active    map[*Handle]struct{}
	order     []*Handle // active handles in show order
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithConfig sets the registry configuration. Zero fields keep defaults.
func WithConfig(cfg Config) RegistryOption {
	return func(r *Registry) {
		r.config = cfg.withDefaults()
	}
}

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithObserver adds a lifecycle observer. It may be given more than once.
func WithObserver(o Observer) RegistryOption {
	return func(r *Registry) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// New creates a registry over doc, driven by sched, and initializes the
// mounting surface.
func New(doc Document, sched schedule.Scheduler, opts ...RegistryOption) *Registry {
	r := &Registry{
		doc:    doc,
		sched:  sched,
		config: DefaultConfig(),
		logger: slog.Default().With("component", "toast"),
		active: make(map[*Handle]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Init()
	return r
}

// Config returns the registry configuration.
func (r *Registry) Config() Config { return r.config }

// Init makes sure the mounting surface and the animation stylesheet exist.
// An element that already carries the container id is reused, so Init is
// idempotent and several registries may share one document.
func (r *Registry) Init() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initLocked()
}

func (r *Registry) initLocked() *vdom.VNode {
	if r.doc.ElementByID(StylesheetID) == nil {
		r.doc.AppendChild(r.doc.Head(), vdom.StyleEl(vdom.ID(StylesheetID), vdom.Raw(stylesheet)))
	}

	if existing := r.doc.ElementByID(r.config.ContainerID); existing != nil {
		r.container = existing
		return existing
	}

	r.container = vdom.Div(
		vdom.ID(r.config.ContainerID),
		vdom.Styles(containerStyles...),
	)
	r.doc.AppendChild(r.doc.Body(), r.container)
	r.logger.Debug("toast container created", "id", r.config.ContainerID)
	return r.container
}

// Container returns the mounting surface.
func (r *Registry) Container() *vdom.VNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.container
}

// Show mounts a new toast and returns its handle immediately. The entry
// animation, progress bar and auto-dismiss run on the scheduler.
// Unknown severities are shown as SeverityInfo.
func (r *Registry) Show(message string, severity Severity, opts ...Option) *Handle {
	options := r.config.Defaults
	for _, opt := range opts {
		opt(&options)
	}

	h := &Handle{
		reg:      r,
		id:       uuid.NewString(),
		severity: severity.Normalize(),
		message:  message,
		options:  options,
	}
	r.build(h)

	r.mu.Lock()
	container := r.container
	if container == nil || r.doc.ElementByID(r.config.ContainerID) != container {
		container = r.initLocked()
	}
	r.doc.AppendChild(container, h.element)
	h.active = true
	h.shownAt = r.sched.Now()
	r.active[h] = struct{}{}
	r.order = append(r.order, h)
	r.queueLocked(h, notice{kind: noticeShown})
	r.mu.Unlock()

	r.logger.Debug("toast shown",
		"toast_id", h.id,
		"severity", string(h.severity),
		"duration", options.Duration,
	)
	r.deliver(h)

	r.sched.Schedule(r.config.EntryDelay, func() { r.enter(h) })
	if h.progress != nil {
		r.sched.Schedule(r.config.ProgressSettle, func() { r.startProgress(h) })
	}
	if options.AutoDismiss() {
		timer := r.sched.Schedule(options.Duration, func() {
			r.dismiss(h, TriggerTimeout)
		})
		r.mu.Lock()
		if h.active {
			h.timer = timer
		} else {
			timer.Stop()
		}
		r.mu.Unlock()
	}
	return h
}

// enter runs the entry animation if the toast is still active. The check
// and the style writes share one hold of r.mu, so a concurrent dismissal
// either prevents them or overwrites them with the exit styles.
func (r *Registry) enter(h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !h.active {
		return
	}
	r.doc.AddClass(h.element, "show")
	setStyles(r.doc, h.element, entryStyles)
}

// startProgress starts shrinking the progress bar if the toast is still
// active.
func (r *Registry) startProgress(h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !h.active {
		return
	}
	d := h.ProgressDuration()
	r.doc.SetStyle(h.progress, "transition", "width "+formatMillis(d)+" linear")
	r.doc.SetStyle(h.progress, "width", "0%")
}

// Remove dismisses h. It reports whether this call performed the
// dismissal; nil, foreign and already dismissed handles are ignored.
func (r *Registry) Remove(h *Handle) bool {
	return r.dismiss(h, TriggerAPI)
}

// dismiss is the single removal path. Phase one (synchronous) cancels the
// timer, leaves the active set and starts the exit animation. Phase two
// detaches the element after ExitDelay.
func (r *Registry) dismiss(h *Handle, trigger Trigger) bool {
	if h == nil {
		return false
	}

	r.mu.Lock()
	if _, ok := r.active[h]; !ok {
		r.mu.Unlock()
		r.logger.Debug("toast already dismissed", "toast_id", h.id, "trigger", trigger.String())
		return false
	}
	delete(r.active, h)
	for i, a := range r.order {
		if a == h {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.active = false
	h.trigger = trigger
	h.dismissedAt = r.sched.Now()
	r.queueLocked(h, notice{kind: noticeDismissed, trigger: trigger})
	r.mu.Unlock()

	setStyles(r.doc, h.element, exitStyles)
	r.sched.Schedule(r.config.ExitDelay, func() { r.detach(h) })

	r.logger.Debug("toast dismissed",
		"toast_id", h.id,
		"severity", string(h.severity),
		"trigger", trigger.String(),
	)
	r.deliver(h)
	return true
}

// detach removes the element from the document. An element that is
// already detached is left alone.
func (r *Registry) detach(h *Handle) {
	if !r.doc.RemoveChild(h.element) {
		r.logger.Debug("toast element already detached", "toast_id", h.id)
	}
	r.logger.Debug("toast detached", "toast_id", h.id)

	r.mu.Lock()
	r.queueLocked(h, notice{kind: noticeDetached})
	r.mu.Unlock()
	r.deliver(h)
}

type noticeKind uint8

const (
	noticeShown noticeKind = iota
	noticeDismissed
	noticeDetached
)

// notice is one pending observer call.
type notice struct {
	kind    noticeKind
	trigger Trigger
}

// queueLocked appends n to h's notices. Notices are queued in the same
// critical section as the state change they report, so their order is
// the order of the lifecycle.
func (r *Registry) queueLocked(h *Handle, n notice) {
	h.pending = append(h.pending, n)
}

// deliver calls the observers for h's queued notices, in order. Only one
// goroutine delivers for a handle at a time: a caller that finds delivery
// in progress leaves its notice to that goroutine. This also covers an
// observer that dismisses the toast from inside ToastShown.
func (r *Registry) deliver(h *Handle) {
	r.mu.Lock()
	if h.delivering {
		r.mu.Unlock()
		return
	}
	h.delivering = true
	for len(h.pending) > 0 {
		n := h.pending[0]
		h.pending = h.pending[1:]
		r.mu.Unlock()

		for _, o := range r.observers {
			switch n.kind {
			case noticeShown:
				o.ToastShown(h)
			case noticeDismissed:
				o.ToastDismissed(h, n.trigger)
			case noticeDetached:
				o.ToastDetached(h)
			}
		}

		r.mu.Lock()
	}
	h.delivering = false
	r.mu.Unlock()
}

// Clear dismisses every active toast.
func (r *Registry) Clear() int {
	n := 0
	for _, h := range r.Active() {
		if r.dismiss(h, TriggerAPI) {
			n++
		}
	}
	return n
}

// Active returns the active toasts in the order they were shown.
func (r *Registry) Active() []*Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Handle, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of active toasts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// Contains reports whether h is in the active set.
func (r *Registry) Contains(h *Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[h]
	return ok
}

// Lookup returns the active toast with the given ID.
func (r *Registry) Lookup(id string) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.order {
		if h.id == id {
			return h, true
		}
	}
	return nil, false
}

func setStyles(doc Document, node *vdom.VNode, pairs []string) {
	for i := 0; i+1 < len(pairs); i += 2 {
		doc.SetStyle(node, pairs[i], pairs[i+1])
	}
}
