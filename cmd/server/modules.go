package main

import (
	"net/http"

	"github.com/testersconnect/site/internal/api"
	"github.com/testersconnect/site/internal/config"
	"github.com/testersconnect/site/internal/infrastructure"
	"github.com/testersconnect/site/pkg/middleware"
	"github.com/testersconnect/site/pkg/module"
	"github.com/testersconnect/site/pkg/storage"
)

// Modules are the handler trees mounted on the root router. Objects is nil
// unless the filesystem storage provider is active.
type Modules struct {
	API     *module.Module
	Objects *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	modules := &Modules{API: apiModule}

	if fs, ok := infra.Storage.(*storage.Filesystem); ok {
		objects := module.New("/storage", fs.Handler())
		objects.Use(middleware.Logger(infra.Logger.With("module", "storage")))
		modules.Objects = objects
	}

	return modules, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	if m.Objects != nil {
		router.Mount(m.Objects)
	}
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return router
}
