package live

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vango-toast/internal/errors"
	"github.com/vango-dev/vango-toast/pkg/dom"
	"github.com/vango-dev/vango-toast/pkg/render"
	"github.com/vango-dev/vango-toast/pkg/telemetry"
	"github.com/vango-dev/vango-toast/pkg/toast"
	"github.com/vango-dev/vango-toast/pkg/vdom"
)

const shutdownTimeout = 5 * time.Second

// Server is the live preview HTTP server.
type Server struct {
	doc      *dom.Document
	registry *toast.Registry
	hub      *Hub
	metrics  *telemetry.Metrics
	gatherer prometheus.Gatherer
	dispatch Dispatcher
	logger   *slog.Logger
	title    string
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records hub activity on m and serves gatherer at /metrics.
func WithMetrics(m *telemetry.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

// WithDispatcher runs browser events through dispatch, typically the
// Dispatch method of the scheduler loop driving the registry.
func WithDispatcher(dispatch Dispatcher) Option {
	return func(s *Server) {
		s.dispatch = dispatch
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// NewServer creates a preview server for a registry mounted on doc.
func NewServer(doc *dom.Document, registry *toast.Registry, opts ...Option) *Server {
	s := &Server{
		doc:      doc,
		registry: registry,
		logger:   slog.Default().With("component", "live"),
		title:    "vango-toast preview",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hub = NewHub(doc, s.dispatch, s.metrics, s.logger)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.hub.HandleWebSocket)
	r.Route("/api/toasts", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Delete("/{id}", s.handleDelete)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.New(errors.CodePreviewFailed).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("preview server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.New(errors.CodePreviewFailed).Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return errors.New(errors.CodePreviewFailed).Wrap(err)
	}
	s.logger.Info("preview server stopped")
	return nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap, err := s.doc.Snapshot()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := render.PageData{
		Title:   s.title,
		Head:    []*vdom.VNode{vdom.Raw(snap.Head)},
		Body:    vdom.Raw(snap.Body),
		Scripts: []render.ScriptTag{{Inline: ClientScript}},
	}
	if err := render.NewRenderer(render.RendererConfig{}).RenderPage(w, page); err != nil {
		s.logger.Warn("render page", "error", err)
	}
}

// ToastRequest is the body of POST /api/toasts.
type ToastRequest struct {
	Message        string `json:"message"`
	Severity       string `json:"severity"`
	DurationMs     *int64 `json:"durationMs,omitempty"`
	Progress       *bool  `json:"progress,omitempty"`
	ClickToDismiss *bool  `json:"clickToDismiss,omitempty"`
}

// Options converts the request into toast options.
func (req ToastRequest) Options() []toast.Option {
	var opts []toast.Option
	if req.DurationMs != nil {
		opts = append(opts, toast.WithDuration(time.Duration(*req.DurationMs)*time.Millisecond))
	}
	if req.Progress != nil {
		opts = append(opts, toast.WithProgress(*req.Progress))
	}
	if req.ClickToDismiss != nil {
		opts = append(opts, toast.WithClickToDismiss(*req.ClickToDismiss))
	}
	return opts
}

func (req ToastRequest) validate() error {
	if req.Message == "" {
		return errors.New(errors.CodeInvalidToastReq).WithDetail("message is required")
	}
	if req.DurationMs != nil && *req.DurationMs < 0 {
		return errors.New(errors.CodeInvalidToastReq).
			WithDetail(fmt.Sprintf("durationMs is %d; use 0 to disable auto-dismiss", *req.DurationMs))
	}
	if req.DurationMs != nil && *req.DurationMs > toast.MaxDurationMillis {
		return errors.New(errors.CodeInvalidToastReq).
			WithDetail(fmt.Sprintf("durationMs is %d; the maximum is %d", *req.DurationMs, toast.MaxDurationMillis))
	}
	return nil
}

// ToastResponse describes one toast.
type ToastResponse struct {
	ID             string `json:"id"`
	Severity       string `json:"severity"`
	Message        string `json:"message"`
	DurationMs     int64  `json:"durationMs"`
	Progress       bool   `json:"progress"`
	ClickToDismiss bool   `json:"clickToDismiss"`
	Active         bool   `json:"active"`
}

func toastResponse(h *toast.Handle) ToastResponse {
	opts := h.Options()
	return ToastResponse{
		ID:             h.ID(),
		Severity:       string(h.Severity()),
		Message:        h.Message(),
		DurationMs:     opts.Duration.Milliseconds(),
		Progress:       opts.Progress,
		ClickToDismiss: opts.ClickToDismiss,
		Active:         h.Active(),
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req ToastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.CodeInvalidToastReq).Wrap(err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	h := s.registry.Show(req.Message, toast.Severity(req.Severity), req.Options()...)
	s.logger.Debug("toast created", "toast_id", h.ID(), "request_id", middleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusCreated, toastResponse(h))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	active := s.registry.Active()
	out := make([]ToastResponse, 0, len(active))
	for _, h := range active {
		out = append(out, toastResponse(h))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	h, ok := s.registry.Lookup(chi.URLParam(r, "id"))
	if !ok || !s.registry.Remove(h) {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintln(w, errors.FromError(err, errors.CodeInvalidToastReq).FormatJSON())
}
