// Package server exposes the menu catalogue over HTTP.
//
// Menus are uploaded as documents to POST /weeks; every read route answers
// in HTML, plain text or JSON depending on the Accept header.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tsawler/cantine/catalogue"
	"github.com/tsawler/cantine/internal/config"
	"github.com/tsawler/cantine/internal/metrics"
	"github.com/tsawler/cantine/model"
)

// Saver persists parsed days.
type Saver interface {
	Save(ctx context.Context, days []model.Day) error
}

// Server holds the catalogue and the HTTP routes answering about it.
type Server struct {
	cfg       config.Config
	catalogue *catalogue.Catalogue
	saver     Saver
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
	router    chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithSaver persists every upload before it reaches the catalogue.
func WithSaver(s Saver) Option {
	return func(srv *Server) { srv.saver = s }
}

// WithMetrics records request and parsing metrics and serves /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(srv *Server) { srv.metrics = m }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(srv *Server) { srv.logger = l }
}

// WithClock sets the clock "today" is read from.
func WithClock(now func() time.Time) Option {
	return func(srv *Server) { srv.now = now }
}

// New creates a server answering from cat.
func New(cfg config.Config, cat *catalogue.Catalogue, opts ...Option) *Server {
	s := &Server{
		cfg:       cfg,
		catalogue: cat,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer returns an http.Server serving the routes on the configured
// address with the configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(StructuredLogger(s.logger))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, ErrMethodNotAllowed)
	})

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/weeks", func(r chi.Router) {
		r.Get("/", s.handleWeeks)
		r.Get("/{week}", s.handleWeek)
		r.Group(func(r chi.Router) {
			if s.cfg.RateLimit.Enabled {
				r.Use(NewRateLimiter(s.cfg.RateLimit.RPS, s.cfg.RateLimit.Burst, s.logger).Handler)
			}
			r.Post("/", s.handleUpload)
		})
	})

	r.Get("/days", s.handleDays)
	r.Get("/days/{date}", s.handleDay)
	r.Get("/today", s.handleToday)
	r.Get("/next", s.handleNext)
	r.Get("/search", s.handleSearch)
	r.Get("/calendar.ics", s.handleCalendar)

	return r
}
