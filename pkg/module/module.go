// Package module mounts self-contained HTTP handlers under single-segment prefixes.
package module

import (
	"net/http"
	"strings"

	"github.com/testersconnect/site/pkg/middleware"
)

// Module is an isolated handler tree served under a prefix such as "/api".
// Requests reach the inner handler with the prefix stripped.
type Module struct {
	prefix     string
	handler    http.Handler
	middleware middleware.System
}

// New creates a Module. It panics if prefix is empty, lacks a leading slash,
// or contains more than one path segment.
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != "" {
		panic("module: " + err + ": " + prefix)
	}
	return &Module{
		prefix:     prefix,
		handler:    handler,
		middleware: middleware.New(),
	}
}

func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. The first registered middleware runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler returns the inner handler wrapped in the module middleware.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.handler)
}

// Serve strips the module prefix from the request path and dispatches it.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	req := r.Clone(r.Context())
	req.URL.Path = path
	req.URL.RawPath = ""

	m.Handler().ServeHTTP(w, req)
}

func validatePrefix(prefix string) string {
	switch {
	case prefix == "":
		return "empty prefix"
	case !strings.HasPrefix(prefix, "/"):
		return "prefix must start with /"
	case strings.Count(prefix, "/") > 1:
		return "prefix must be a single path segment"
	}
	return ""
}
