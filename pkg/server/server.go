package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pyrx/pyrx-cli/internal/telemetry"
	"github.com/pyrx/pyrx-cli/pkg/export"
)

const requestTimeout = 60 * time.Second

var tracer = telemetry.Tracer("github.com/pyrx/pyrx-cli/pkg/server")

// Options configure a Server
type Options struct {
	// Exporter builds archives for /api/export; nil means one without
	// shared icons
	Exporter *export.Exporter
	Logger   *slog.Logger
}

// Server serves the editor API for one session
type Server struct {
	session  *Session
	exporter *export.Exporter
	hub      *hub
	logger   *slog.Logger
	router   chi.Router
	stop     context.CancelFunc
}

// New builds the router and starts the websocket hub. Call Close to stop it.
func New(session *Session, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	exporter := opts.Exporter
	if exporter == nil {
		exporter = export.New(nil, logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		session:  session,
		exporter: exporter,
		hub:      newHub(ctx, logger),
		logger:   logger,
		stop:     cancel,
	}
	go s.hub.run()
	session.Subscribe(func(snap Snapshot) {
		s.hub.publish(previewMessage(snap))
	})
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close disconnects websocket clients and stops the hub
func (s *Server) Close() {
	s.stop()
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ws", s.serveWS)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Use(s.observe)

		r.Get("/layout", s.getLayout)
		r.Put("/layout", s.putLayout)
		r.Patch("/layout", s.renameExtension)
		r.Get("/preview", s.getPreview)
		r.Get("/export", s.getExport)

		r.Post("/tabs", s.createTab)
		r.Route("/tabs/{id}", func(r chi.Router) {
			r.Patch("/", s.renameTab)
			r.Delete("/", s.deleteTab)
			r.Post("/activate", s.activateTab)
			r.Post("/panels", s.createPanel)
		})

		r.Route("/panels/{id}", func(r chi.Router) {
			r.Patch("/", s.renamePanel)
			r.Delete("/", s.deletePanel)
			r.Post("/stacks", s.createStack)
		})

		r.Post("/elements", s.createElement)
		r.Route("/elements/{id}", func(r chi.Router) {
			r.Patch("/", s.editElement)
			r.Delete("/", s.deleteElement)
			r.Post("/move", s.moveElement)
		})
	})

	return r
}

// observe logs each API request and records it as a span
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx, span := tracer.Start(r.Context(), "http.request", trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := chi.RouteContext(r.Context()).RoutePattern()
		span.SetName(r.Method + " " + route)
		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &wsClient{hub: s.hub, conn: conn, send: make(chan WSMessage, sendBuffer)}
	if !s.hub.join(c) {
		conn.Close()
		return
	}

	go c.writePump()
	// joined first: any change after this snapshot is broadcast to c too
	s.session.Current(func(snap Snapshot) {
		s.hub.publishTo(c, previewMessage(snap))
	})
	go c.readPump(s.session.Snapshot)
}
