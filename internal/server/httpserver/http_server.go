// Package httpserver wires the posts API, health and metrics endpoints into
// a single http.Server.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/blogcontent/internal/foundation/errors"
	"git.home.luguber.info/inful/blogcontent/internal/logfields"
	"git.home.luguber.info/inful/blogcontent/internal/metrics"
	"git.home.luguber.info/inful/blogcontent/internal/posts"
	"git.home.luguber.info/inful/blogcontent/internal/server/handlers"
	smw "git.home.luguber.info/inful/blogcontent/internal/server/middleware"
)

// Options configures a Server.
type Options struct {
	Addr   string
	Source posts.Source
	// Registry enables /metrics when set.
	Registry *prom.Registry
	Logger   *slog.Logger
}

// Server serves the read-only posts API.
type Server struct {
	opts         Options
	logger       *slog.Logger
	errorAdapter *ferrors.HTTPErrorAdapter
	srv          *http.Server
	ln           net.Listener

	postHandlers       *handlers.PostHandlers
	monitoringHandlers *handlers.MonitoringHandlers

	// middleware chain
	mchain func(http.Handler) http.Handler
}

// New constructs a Server. Call Start to begin listening.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		opts:         opts,
		logger:       logger,
		errorAdapter: ferrors.NewHTTPErrorAdapter(logger),
	}
	s.postHandlers = handlers.NewPostHandlers(opts.Source, logger)
	s.monitoringHandlers = handlers.NewMonitoringHandlers(opts.Source, logger)
	s.mchain = smw.Chain(logger, s.errorAdapter)
	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts", s.postHandlers.HandleListPosts)
	mux.HandleFunc("/api/posts/{id}", s.postHandlers.HandleGetPost)
	mux.HandleFunc("/api/post-ids", s.postHandlers.HandlePostIDs)
	mux.HandleFunc("/api/tags", s.postHandlers.HandleTags)
	mux.HandleFunc("/healthz", s.monitoringHandlers.HandleHealthCheck)
	if s.opts.Registry != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(s.opts.Registry))
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.errorAdapter.WriteErrorResponse(w, r, ferrors.NotFoundError("no such endpoint").
			WithContext("path", r.URL.Path).
			Build())
	})
	return s.mchain(mux)
}

// Start binds the listen address and serves in the background. Bind errors
// are returned directly so misconfiguration fails fast.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "http startup failed").
			WithContext("addr", s.opts.Addr).
			Build()
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", logfields.Error(err))
		}
	}()

	s.logger.Info("HTTP server started", logfields.Addr(ln.Addr().String()))
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.opts.Addr
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
