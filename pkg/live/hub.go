package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vango-toast/pkg/dom"
	"github.com/vango-dev/vango-toast/pkg/telemetry"
	"github.com/vango-dev/vango-toast/pkg/vdom"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Frame types.
const (
	FrameSnapshot = "snapshot"
	FramePatch    = "patch"
	FrameEvent    = "event"
)

// Frame is a server to client message.
type Frame struct {
	Type string `json:"type"`

	// Snapshot fields.
	HeadHID string `json:"headHid,omitempty"`
	Head    string `json:"head,omitempty"`
	BodyHID string `json:"bodyHid,omitempty"`
	Body    string `json:"body,omitempty"`

	// Patch fields.
	Op     string `json:"op,omitempty"`
	HID    string `json:"hid,omitempty"`
	Parent string `json:"parent,omitempty"`
	Index  int    `json:"index,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
	HTML   string `json:"html,omitempty"`
}

// ClientMessage is a client to server message.
type ClientMessage struct {
	Type  string `json:"type"`
	HID   string `json:"hid"`
	Event string `json:"event"`
}

func snapshotFrame(s dom.Snapshot) Frame {
	return Frame{Type: FrameSnapshot, HeadHID: s.HeadHID, Head: s.Head, BodyHID: s.BodyHID, Body: s.Body}
}

func patchFrame(p vdom.Patch) Frame {
	f := Frame{Type: FramePatch, Op: p.Op.String(), HID: p.HID, Key: p.Key, Value: p.Value}
	if p.Op == vdom.PatchInsertNode {
		f.Parent = p.ParentID
		f.Index = p.Index
		f.HTML = p.Value
		f.Value = ""
	}
	return f
}

// Dispatcher runs fn on the host's event loop. It reports false if fn
// could not be queued.
type Dispatcher func(fn func()) bool

// Hub mirrors a document to connected browsers and feeds their events back.
type Hub struct {
	doc      *dom.Document
	dispatch Dispatcher
	metrics  *telemetry.Metrics
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// client is one connected browser.
type client struct {
	conn      *websocket.Conn
	send      chan outbound
	done      chan struct{}
	closeOnce sync.Once
}

type outbound struct {
	data  []byte
	patch bool
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// NewHub creates a hub for doc. A nil dispatch runs events inline.
func NewHub(doc *dom.Document, dispatch Dispatcher, metrics *telemetry.Metrics, logger *slog.Logger) *Hub {
	if dispatch == nil {
		dispatch = func(fn func()) bool {
			fn()
			return true
		}
	}
	if logger == nil {
		logger = slog.Default().With("component", "live")
	}
	return &Hub{
		doc:      doc,
		dispatch: dispatch,
		metrics:  metrics,
		logger:   logger,
		clients:  make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Local preview only
			},
		},
	}
}

// HandleWebSocket upgrades the request and streams the document to it
// until the browser disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.wsError("upgrade", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan outbound, sendBuffer),
		done: make(chan struct{}),
	}

	unsubscribe, err := h.doc.Watch(
		func(s dom.Snapshot) { h.enqueue(c, snapshotFrame(s)) },
		func(p vdom.Patch) { h.enqueue(c, patchFrame(p)) },
	)
	if err != nil {
		h.wsError("snapshot", err)
		conn.Close()
		return
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.ClientConnected()
	}
	h.logger.Info("preview client connected", "remote", r.RemoteAddr)

	go h.writeLoop(c)
	h.readLoop(c)

	unsubscribe()
	c.close()
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.ClientDisconnected()
	}
	conn.Close()
	h.logger.Info("preview client disconnected", "remote", r.RemoteAddr)
}

// enqueue hands a frame to the client's writer. It runs with the document
// lock held, so it never blocks: a client whose buffer is full is dropped.
func (h *Hub) enqueue(c *client, f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		h.wsError("encode", err)
		return
	}
	select {
	case <-c.done:
	case c.send <- outbound{data: data, patch: f.Type == FramePatch}:
	default:
		h.logger.Warn("preview client too slow, dropping")
		h.wsError("overflow", nil)
		c.close()
	}
}

func (h *Hub) readLoop(c *client) {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				h.wsError("read", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.wsError("decode", err)
			continue
		}
		if msg.Type != FrameEvent || msg.HID == "" || msg.Event == "" {
			h.wsError("decode", nil)
			continue
		}
		if !h.dispatch(func() { h.doc.DispatchHID(msg.HID, msg.Event) }) {
			h.logger.Warn("event dropped", "hid", msg.HID, "event", msg.Event)
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			// Unblocks readLoop when the client was dropped.
			c.conn.Close()
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg.data); err != nil {
				h.wsError("write", err)
				c.close()
				continue
			}
			if msg.patch && h.metrics != nil {
				h.metrics.RecordPatches(1)
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.wsError("ping", err)
				c.close()
			}
		}
	}
}

func (h *Hub) wsError(kind string, err error) {
	if h.metrics != nil {
		h.metrics.RecordWebSocketError(kind)
	}
	if err != nil {
		h.logger.Warn("websocket error", "type", kind, "error", err)
	}
}

// ClientCount returns the number of connected browsers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every browser.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.close()
	}
}
