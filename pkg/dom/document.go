package dom

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/vango-dev/vango-toast/pkg/render"
	"github.com/vango-dev/vango-toast/pkg/vdom"
)

// Document is an in-memory host document: an <html> tree with parent
// tracking, hydration IDs and event dispatch. Every mutation of an attached
// node is published to subscribers as a vdom.Patch so a real rendering
// surface can mirror it.
//
// Document is safe for concurrent use. Handlers run by Dispatch are called
// without the document lock held, so they may mutate the document.
type Document struct {
	mu      sync.Mutex
	root    *vdom.VNode
	head    *vdom.VNode
	body    *vdom.VNode
	parents map[*vdom.VNode]*vdom.VNode
	hids    *vdom.HIDGenerator

	subMu   sync.Mutex
	subs    map[int]func(vdom.Patch)
	nextSub int

	ignoreStop bool
	logger     *slog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the document logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// WithIgnoreStopPropagation makes Dispatch keep bubbling after a handler
// stops propagation. It models hosts whose propagation semantics differ.
func WithIgnoreStopPropagation() Option {
	return func(d *Document) {
		d.ignoreStop = true
	}
}

// NewDocument creates an empty document with <head> and <body>.
func NewDocument(opts ...Option) *Document {
	head := vdom.Head()
	body := vdom.Body()
	root := vdom.Html(vdom.Lang("en"), head, body)

	d := &Document{
		root:    root,
		head:    head,
		body:    body,
		parents: make(map[*vdom.VNode]*vdom.VNode),
		hids:    vdom.NewHIDGenerator(),
		subs:    make(map[int]func(vdom.Patch)),
		logger:  slog.Default().With("component", "dom"),
	}
	for _, opt := range opts {
		opt(d)
	}
	vdom.AssignAllHIDs(root, d.hids)
	d.trackChildren(root)
	return d
}

// Root returns the <html> element.
func (d *Document) Root() *vdom.VNode { return d.root }

// Head returns the <head> element.
func (d *Document) Head() *vdom.VNode { return d.head }

// Body returns the <body> element.
func (d *Document) Body() *vdom.VNode { return d.body }

// ElementByID returns the attached element with the given id, or nil.
func (d *Document) ElementByID(id string) *vdom.VNode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return vdom.FindByID(d.root, id)
}

// ElementByHID returns the attached element with the given hydration ID.
func (d *Document) ElementByHID(hid string) *vdom.VNode {
	if hid == "" {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	var found *vdom.VNode
	vdom.Walk(d.root, func(n *vdom.VNode) bool {
		if n.HID == hid {
			found = n
			return false
		}
		return true
	})
	return found
}

// Parent returns the node's parent, or nil if it is detached or the root.
func (d *Document) Parent(node *vdom.VNode) *vdom.VNode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.parents[node]
}

// IsAttached reports whether node is reachable from the document root.
func (d *Document) IsAttached(node *vdom.VNode) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attachedLocked(node)
}

func (d *Document) attachedLocked(node *vdom.VNode) bool {
	for n := node; n != nil; n = d.parents[n] {
		if n == d.root {
			return true
		}
	}
	return false
}

// AppendChild appends child to parent. A child that is already attached
// elsewhere is moved.
func (d *Document) AppendChild(parent, child *vdom.VNode) {
	if parent == nil || child == nil {
		return
	}
	d.mu.Lock()
	if old := d.parents[child]; old != nil {
		d.detachLocked(child, old)
	}
	parent.Children = append(parent.Children, child)
	d.parents[child] = parent
	d.trackChildren(child)
	vdom.AssignAllHIDs(child, d.hids)
	p := vdom.Patch{
		Op:       vdom.PatchInsertNode,
		ParentID: parent.HID,
		Index:    len(parent.Children) - 1,
		Node:     child,
	}
	attached := d.attachedLocked(parent)
	if attached && d.hasSubscribers() {
		// Snapshot the markup now; later mutations arrive as their own patches.
		html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(child)
		if err != nil {
			d.logger.Warn("render inserted node", "hid", child.HID, "error", err)
		}
		p.Value = html
	}
	if attached {
		d.publish(p)
	}
	d.mu.Unlock()
}

// RemoveChild detaches node from its parent. It reports false if the node
// was not attached to a parent.
func (d *Document) RemoveChild(node *vdom.VNode) bool {
	if node == nil {
		return false
	}
	d.mu.Lock()
	parent := d.parents[node]
	if parent == nil {
		d.mu.Unlock()
		return false
	}
	wasAttached := d.attachedLocked(node)
	d.detachLocked(node, parent)
	if wasAttached {
		d.publish(vdom.Patch{Op: vdom.PatchRemoveNode, HID: node.HID})
	}
	d.mu.Unlock()
	return true
}

func (d *Document) detachLocked(node, parent *vdom.VNode) {
	for i, c := range parent.Children {
		if c == node {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	delete(d.parents, node)
}

// trackChildren records parent links for node's descendants.
func (d *Document) trackChildren(node *vdom.VNode) {
	for _, c := range node.Children {
		d.parents[c] = node
		d.trackChildren(c)
	}
}

// SetStyle sets one inline style property on node.
func (d *Document) SetStyle(node *vdom.VNode, prop, value string) {
	if node == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	node.Style().Set(prop, value)
	if d.attachedLocked(node) {
		d.publish(vdom.Patch{Op: vdom.PatchSetStyle, HID: node.HID, Key: prop, Value: value})
	}
}

// StyleOf returns the current value of an inline style property.
func (d *Document) StyleOf(node *vdom.VNode, prop string) string {
	if node == nil {
		return ""
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return node.Style().Get(prop)
}

// AddClass adds a class to node.
func (d *Document) AddClass(node *vdom.VNode, class string) {
	if node == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if node.AddClass(class) && d.attachedLocked(node) {
		d.publish(vdom.Patch{Op: vdom.PatchAddClass, HID: node.HID, Value: class})
	}
}

// Subscribe registers fn to receive every patch for attached nodes.
// fn is called synchronously, in mutation order, with the document lock
// held: it must not block and must not call back into the document.
// Insert patches carry the inserted node's markup in Value.
func (d *Document) Subscribe(fn func(vdom.Patch)) (unsubscribe func()) {
	d.subMu.Lock()
	id := d.nextSub
	d.nextSub++
	d.subs[id] = fn
	d.subMu.Unlock()

	return func() {
		d.subMu.Lock()
		delete(d.subs, id)
		d.subMu.Unlock()
	}
}

func (d *Document) hasSubscribers() bool {
	d.subMu.Lock()
	defer d.subMu.Unlock()
	return len(d.subs) > 0
}

func (d *Document) publish(p vdom.Patch) {
	d.subMu.Lock()
	subs := make([]func(vdom.Patch), 0, len(d.subs))
	for _, fn := range d.subs {
		subs = append(subs, fn)
	}
	d.subMu.Unlock()

	for _, fn := range subs {
		fn(p)
	}
}

// HTML renders the whole document, doctype excluded.
func (d *Document) HTML() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return render.NewRenderer(render.RendererConfig{}).RenderToString(d.root)
}

// RenderNode renders one node while holding the document lock, so the
// output is consistent with concurrent mutations.
func (d *Document) RenderNode(node *vdom.VNode, config render.RendererConfig) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return render.NewRenderer(config).RenderToString(node)
}

// Snapshot is the rendered content of <head> and <body> at one point in
// time. Head and Body hold the children's markup, with hydration IDs.
type Snapshot struct {
	HeadHID string `json:"headHid"`
	Head    string `json:"head"`
	BodyHID string `json:"bodyHid"`
	Body    string `json:"body"`
}

// Snapshot renders the current content of the document.
func (d *Document) Snapshot() (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Document) snapshotLocked() (Snapshot, error) {
	r := render.NewRenderer(render.RendererConfig{})
	snap := Snapshot{HeadHID: d.head.HID, BodyHID: d.body.HID}
	var err error
	if snap.Head, err = renderChildren(r, d.head); err != nil {
		return Snapshot{}, err
	}
	if snap.Body, err = renderChildren(r, d.body); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func renderChildren(r *render.Renderer, node *vdom.VNode) (string, error) {
	var b strings.Builder
	for _, c := range node.Children {
		if err := r.RenderToWriter(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Watch renders a snapshot, hands it to onSnapshot and subscribes fn, all
// under one hold of the document lock. fn therefore receives exactly the
// patches that follow the snapshot. onSnapshot has the same restrictions
// as a Subscribe callback.
func (d *Document) Watch(onSnapshot func(Snapshot), fn func(vdom.Patch)) (unsubscribe func(), err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	snap, err := d.snapshotLocked()
	if err != nil {
		return nil, err
	}
	onSnapshot(snap)
	return d.Subscribe(fn), nil
}
