package routes

import (
	"net/http"

	"github.com/testersconnect/site/pkg/openapi"
)

// Register binds every group to mux and records it in spec. Handlers are
// registered relative to the mux root because modules strip their prefix;
// basePath only shapes the documented paths.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, g := range groups {
		g.register(mux, "")
		g.AddToSpec(basePath, spec)
	}
}
