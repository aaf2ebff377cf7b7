// SPDX-License-Identifier: MIT

// Package service serves distance matrices over HTTP.
//
// Routes:
//
//	POST /v1/distances/{metric}   compute a matrix (JSON in, JSON out)
//	GET  /v1/metrics              catalog of metrics and their parameters
//	GET  /healthz                 liveness
//	GET  /metrics                 Prometheus exposition
//
// catch_euclidean requests name their feature extractor in "extractor". No
// extractor ships with tsdist: the embedding binary registers one with
// features.Register, and until it does these requests fail with code 1.
package service

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/tsdist/cache"
	"github.com/katalvlaran/tsdist/config"
	"github.com/katalvlaran/tsdist/device"
	"github.com/katalvlaran/tsdist/metrics"
)

// Server is the HTTP front end. Build it with New.
type Server struct {
	router     *mux.Router
	server     *http.Server
	cfg        config.Config
	cache      cache.Cache
	metrics    *metrics.Collector
	gatherer   prometheus.Gatherer
	limiter    *rate.Limiter
	logger     zerolog.Logger
	dispatcher *device.Dispatcher
}

// Option configures New.
type Option func(*Server)

// WithCache enables the result cache.
func WithCache(c cache.Cache) Option {
	return func(s *Server) { s.cache = c }
}

// WithMetrics records request, cache and matrix metrics into col and serves
// g on /metrics.
func WithMetrics(col *metrics.Collector, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = col
		s.gatherer = g
	}
}

// WithLogger sets the access and error logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithDispatcher routes "gpu" requests through d.
func WithDispatcher(d *device.Dispatcher) Option {
	return func(s *Server) { s.dispatcher = d }
}

// New builds a Server for cfg. cfg is assumed to be validated.
func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		cfg:      cfg,
		logger:   zerolog.Nop(),
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if cfg.Server.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), max(1, cfg.Server.RateBurst))
	}
	s.setupRoutes()
	s.server = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.accessLogMiddleware)

	api := s.router.PathPrefix("/v1").Subrouter()
	api.Use(jsonContentTypeMiddleware)
	api.HandleFunc("/metrics", s.handleCatalog).Methods(http.MethodGet)

	compute := api.PathPrefix("/distances").Subrouter()
	compute.Use(s.rateLimitMiddleware)
	compute.HandleFunc("/{metric}", s.handleDistances).Methods(http.MethodPost)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, errNotFound)
	})
}

// Handler returns the routed handler (used by tests and embedding servers).
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("tsdist: http server listening")

	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("tsdist: http server shutting down")

	return s.server.Shutdown(ctx)
}
