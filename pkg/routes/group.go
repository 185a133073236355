// Package routes declares route groups once and uses them both to register
// handlers on a mux and to describe operations in the OpenAPI document.
package routes

import (
	"net/http"

	"github.com/testersconnect/site/pkg/openapi"
)

// Route is a single method and pattern bound to a handler.
// Pattern is relative to the enclosing group prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group is a set of routes sharing a URL prefix and OpenAPI tags.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// AddToSpec adds the group's operations and schemas to spec. Operations
// without their own tags inherit the group tags. Routes without an OpenAPI
// operation are skipped.
func (g Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath, spec)
}

func (g Group) addToSpec(parent string, spec *openapi.Spec) {
	prefix := parent + g.Prefix

	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}
		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}
		spec.AddOperation(prefix+route.Pattern, route.Method, op)
	}

	for _, child := range g.Children {
		child.addToSpec(prefix, spec)
	}
}

func (g Group) register(mux *http.ServeMux, parent string) {
	prefix := parent + g.Prefix
	for _, route := range g.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range g.Children {
		child.register(mux, prefix)
	}
}
