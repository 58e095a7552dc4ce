// Package web exposes the concordancer's search API over HTTP, per
// spec.md §1 ("the HTTP server exposing the search" is an external
// collaborator, not part of the core) and §6 (the `search(cql, left,
// right)` contract). Routing, middleware and auth are grounded on the
// teacher's internal/web/router + internal/web/middleware packages,
// generalized from Conduit's CRUD resource routes to this single
// read-only search endpoint.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/czcorpus/kwic/internal/search"
	"github.com/czcorpus/kwic/internal/web/auth"
	"github.com/czcorpus/kwic/internal/web/cache"
	"github.com/czcorpus/kwic/internal/web/middleware"
	"github.com/czcorpus/kwic/internal/web/ratelimit"
	"github.com/czcorpus/kwic/internal/web/websocket"
)

// Config configures the search API server.
type Config struct {
	APIPrefix    string
	DefaultLeft  int
	DefaultRight int
	MaxPageSize  int
	// AuthSecret, when non-empty, requires a valid bearer token on every
	// search request (internal/web/auth).
	AuthSecret string
}

// NewRouter builds the chi router exposing GET {prefix}/search (and the
// GET {prefix}/stream WebSocket endpoint), wrapped in the same
// middleware chain shape the teacher wraps every route in: request ID,
// recovery, CORS, structured logging, rate limiting, then (optionally)
// auth.
func NewRouter(idx *search.Index, cfg Config, logger *zap.Logger, resultCache cache.Cache, limiter ratelimit.Limiter) *chi.Mux {
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/v1"
	}
	if cfg.DefaultLeft == 0 {
		cfg.DefaultLeft = search.DefaultLeftContext
	}
	if cfg.DefaultRight == 0 {
		cfg.DefaultRight = search.DefaultRightContext
	}
	if cfg.MaxPageSize == 0 {
		cfg.MaxPageSize = 100
	}
	if limiter == nil {
		limiter = ratelimit.New(ratelimit.DefaultConfig())
	}

	h := &handler{idx: idx, cfg: cfg, logger: logger, cache: resultCache}
	stream := websocket.NewHandler(idx, cfg.DefaultLeft, cfg.DefaultRight)

	chain := middleware.NewChain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.CORS(),
		middleware.Logging(logger),
		middleware.RateLimit(limiter),
	)
	if cfg.AuthSecret != "" {
		chain = chain.Use(middleware.Auth(auth.NewService(cfg.AuthSecret)))
	}

	r := chi.NewRouter()
	r.Route(cfg.APIPrefix, func(sub chi.Router) {
		sub.Method(http.MethodGet, "/search", chain.ThenFunc(h.handleSearch))
		sub.Handle("/stream", chain.Then(stream))
	})
	return r
}

// requestTimeout bounds how long a single search request (including quantifier
// expansion and candidate verification) may run, guarding against a
// pathological query over a very large corpus.
const requestTimeout = 10 * time.Second
