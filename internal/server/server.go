// Package server is the thin interactive front end: it parses request
// parameters, drives fetch → analyze through the cache, and returns the
// analysis contract as JSON for an external chart renderer.
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"chipchart/internal/analyzer"
	"chipchart/internal/cache"
	"chipchart/internal/config"
	"chipchart/internal/fetcher"
	"chipchart/internal/store"
)

// Server exposes the analysis API over HTTP.
type Server struct {
	cfg     *config.Config
	fetcher fetcher.Fetcher
	store   store.Store
	cache   *cache.ResultCache
	httpSrv *http.Server
}

// New wires the HTTP server with its collaborators.
func New(cfg *config.Config, f fetcher.Fetcher, st store.Store, c *cache.ResultCache) *Server {
	s := &Server{
		cfg:     cfg,
		fetcher: f,
		store:   st,
		cache:   c,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/v1/analysis", s.handleAnalysis)

	s.httpSrv = &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[INFO] http server listening on %s", s.cfg.Server.ListenAddr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler returns the underlying HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// analyzerParams maps the configured defaults plus per-request overrides
// into the core's parameter set.
func (s *Server) analyzerParams(mode analyzer.Mode, buckets int) analyzer.Params {
	if buckets <= 0 {
		buckets = s.cfg.Profile.BucketCount
	}
	return analyzer.Params{
		Mode:            mode,
		BucketCount:     buckets,
		MAWindows:       s.cfg.Indicators.MAWindows,
		BollingerWindow: s.cfg.Indicators.BollingerWindow,
		BollingerWidth:  s.cfg.Indicators.BollingerWidth,
		StepCap:         s.cfg.Profile.TickStepCap,
		MinBars:         s.cfg.Profile.MinBars,
	}
}
