package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	apperrors "github.com/NVIDIA/tagstamp/pkg/errors"
	"github.com/NVIDIA/tagstamp/pkg/serializer"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Server is a reusable HTTP front end: a mux over the configured
// application handlers plus health, readiness, and metrics endpoints,
// with a standard middleware chain and graceful shutdown.
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	mu          sync.RWMutex
	ready       bool
}

// Option mutates the server configuration during New.
type Option func(*Config)

// WithConfig replaces the entire configuration.
func WithConfig(cfg *Config) Option {
	return func(c *Config) {
		if cfg != nil {
			*c = *cfg
		}
	}
}

// WithName sets the server name used in logs and the index response.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithVersion sets the build version reported by the index response.
func WithVersion(version string) Option {
	return func(c *Config) {
		c.Version = version
	}
}

// WithHandler registers the application handlers by URL path.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(c *Config) {
		c.Handlers = handlers
	}
}

// WithAddress sets the bind address; empty means all interfaces.
func WithAddress(address string) Option {
	return func(c *Config) {
		c.Address = address
	}
}

// WithPort sets the listen port. Non-positive values are ignored.
func WithPort(port int) Option {
	return func(c *Config) {
		if port > 0 {
			c.Port = port
		}
	}
}

// WithRateLimit sets the request rate limit and burst size.
// Non-positive values are ignored.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Config) {
		if limit > 0 {
			c.RateLimit = limit
		}
		if burst > 0 {
			c.RateLimitBurst = burst
		}
	}
}

// New creates a Server from defaults and the supplied options. When the
// application does not register its own root handler, a default index
// handler is installed under "/".
func New(opts ...Option) *Server {
	cfg := parseConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Handlers == nil {
		cfg.Handlers = make(map[string]http.HandlerFunc, 1)
	}

	s := &Server{
		config:      cfg,
		rateLimiter: rate.NewLimiter(cfg.RateLimit, cfg.RateLimitBurst),
	}

	if _, ok := cfg.Handlers["/"]; !ok {
		cfg.Handlers["/"] = s.handleIndex
	}

	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddress(),
		Handler:           s.setupRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s
}

// setupRoutes wires system endpoints directly and application handlers
// through the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	for path, handler := range s.config.Handlers {
		mux.HandleFunc(path, s.withMiddleware(handler))
	}

	return mux
}

// handleIndex serves a small JSON index of the registered routes.
// The "/" pattern also catches unknown paths, which get a 404 here.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, nil)
		return
	}

	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, apperrors.ErrCodeNotFound,
			"route not found", false, map[string]any{"path": r.URL.Path})
		return
	}

	resp := struct {
		Name      string   `json:"name"`
		Version   string   `json:"version"`
		Ready     bool     `json:"ready"`
		Timestamp string   `json:"timestamp"`
		Routes    []string `json:"routes"`
	}{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.isReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    s.routeList(),
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

func (s *Server) routeList() []string {
	routes := make([]string, 0, len(s.config.Handlers)+3)
	for path := range s.config.Handlers {
		if path == "/" {
			continue
		}
		routes = append(routes, path)
	}
	routes = append(routes, "/health", "/ready", "/metrics")
	sort.Strings(routes)
	return routes
}

func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start begins serving and blocks until ctx is canceled or the listener
// fails. Cancellation triggers a graceful shutdown bounded by the
// configured ShutdownTimeout; a clean shutdown returns nil.
func (s *Server) Start(ctx context.Context) error {
	s.setReady(true)

	slog.Info("server listening",
		"name", s.config.Name,
		"version", s.config.Version,
		"address", s.httpServer.Addr)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.shutdown()
	case err := <-errChan:
		return apperrors.Wrap(apperrors.ErrCodeInternal, "server failed", err)
	}
}

// shutdown flips readiness off and drains in-flight requests within the
// configured timeout.
func (s *Server) shutdown() error {
	s.setReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server", "timeout", s.config.ShutdownTimeout.String())
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "graceful shutdown failed", err)
	}

	slog.Info("server stopped")
	return nil
}

// Run starts the server and blocks until an interrupt or SIGTERM
// arrives, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Start(gctx)
	})

	return g.Wait()
}
