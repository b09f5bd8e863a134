package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pitchslap/pitchslap/internal/config"
	apperrors "github.com/pitchslap/pitchslap/internal/errors"
	"github.com/pitchslap/pitchslap/internal/observability"
	"github.com/pitchslap/pitchslap/internal/server/handlers"
	servermw "github.com/pitchslap/pitchslap/internal/server/middleware"
)

// DefaultMaxBodyBytes caps request bodies when Options leaves it unset.
const DefaultMaxBodyBytes = 64 << 10

// Options carries the collaborators the routes are wired to.
type Options struct {
	API    *handlers.API
	Health *handlers.HealthManager

	// AdminToken enables POST /admin/signal when set.
	AdminToken string

	// DisableHealth leaves the /health routes unmounted.
	DisableHealth bool

	MaxBodyBytes int64
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	cfg    config.ServerConfig
	opts   Options
}

// New creates a new HTTP server instance
func New(cfg config.ServerConfig, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Health == nil {
		opts.Health = handlers.NewHealthManager(handlers.AppVersion)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)

	// RequestID first so every later layer can correlate.
	r.Use(servermw.RequestID)
	r.Use(servermw.RequestMetrics)
	r.Use(servermw.Recovery)
	r.Use(servermw.MaxBodyBytes(opts.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		HandleError(w, req, apperrors.NewNotFoundError("The requested resource was not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		HandleError(w, req, apperrors.NewMethodNotAllowedError("The requested method is not allowed for this resource"))
	})

	s := &Server{router: r, cfg: cfg, opts: opts}

	handlers.SetHTTPErrorResponder(HandleError)
	s.registerRoutes()

	return s
}

// Start starts the HTTP server and blocks until it stops. A clean shutdown
// returns nil.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  orDefault(s.cfg.ReadTimeout, 30*time.Second),
		WriteTimeout: orDefault(s.cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  orDefault(s.cfg.IdleTimeout, 120*time.Second),
	}

	observability.ServerLogger.Info("Starting HTTP server",
		zap.String("host", s.cfg.Host),
		zap.Int("port", s.cfg.Port),
		zap.String("addr", addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	observability.ServerLogger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the underlying router for testing and instrumentation
func (s *Server) Handler() http.Handler {
	return s.router
}

// Port returns the configured port.
func (s *Server) Port() int {
	return s.cfg.Port
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
