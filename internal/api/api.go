// Package api assembles the JSON API module served under the configured base path.
package api

import (
	"net/http"

	"github.com/testersconnect/site/internal/config"
	"github.com/testersconnect/site/internal/infrastructure"
	"github.com/testersconnect/site/pkg/middleware"
	"github.com/testersconnect/site/pkg/module"
	"github.com/testersconnect/site/pkg/openapi"
	"github.com/testersconnect/site/web/scalar"
)

// NewModule wires every domain system and returns the API module with its
// OpenAPI document served at /openapi.json and its reference page at /docs.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, cfg)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.AddServer(cfg.Domain)
	cfg.API.OpenAPI.Apply(spec)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, runtime, domain, cfg)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))
	mux.HandleFunc("GET /docs", scalar.Handler())

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
