// Package middleware provides the composable HTTP middleware chain the
// search API server wraps every route in: request IDs, panic recovery,
// CORS, structured request logging and rate limiting — generalized from
// the teacher's internal/web/middleware package to the concordancer's
// /v1/search surface.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Chain is a composable, ordered sequence of middleware.
type Chain struct {
	middlewares []Middleware
}

// NewChain creates a Chain from the given middleware, applied in the
// order given (the first middleware added runs first).
func NewChain(middlewares ...Middleware) *Chain {
	return &Chain{middlewares: middlewares}
}

// Use appends a middleware to the chain.
func (c *Chain) Use(m Middleware) *Chain {
	c.middlewares = append(c.middlewares, m)
	return c
}

// Then wraps handler with every middleware in the chain.
func (c *Chain) Then(handler http.Handler) http.Handler {
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		handler = c.middlewares[i](handler)
	}
	return handler
}

// ThenFunc is Then for an http.HandlerFunc.
func (c *Chain) ThenFunc(handler http.HandlerFunc) http.Handler {
	return c.Then(handler)
}
