// Package middleware composes http.Handler wrappers for request logging,
// CORS, and path canonicalization.
package middleware

import "net/http"

// System collects middleware and applies it to a handler.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type chain struct {
	stack []func(http.Handler) http.Handler
}

func New() System {
	return &chain{}
}

func (c *chain) Use(mw func(http.Handler) http.Handler) {
	c.stack = append(c.stack, mw)
}

// Apply wraps handler so the first registered middleware runs first.
func (c *chain) Apply(handler http.Handler) http.Handler {
	for i := len(c.stack) - 1; i >= 0; i-- {
		handler = c.stack[i](handler)
	}
	return handler
}
