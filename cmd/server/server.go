package main

import (
	"log/slog"
	"time"

	"github.com/testersconnect/site/internal/config"
	"github.com/testersconnect/site/internal/infrastructure"
)

// Server owns the infrastructure, the mounted site modules and the HTTP
// listener. Lifecycle hooks registered by each are run in order on Start.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
	backing []any
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"domain", cfg.Domain,
		"version", cfg.Version,
		"env", cfg.Env(),
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
		backing: backingServices(cfg),
	}, nil
}

// backingServices summarizes where uploads land and how mail leaves, so a
// misconfigured deploy shows up in the first lines of the log.
func backingServices(cfg *config.Config) []any {
	return []any{
		slog.Group("storage",
			"provider", cfg.Storage.Provider,
			"event_covers", cfg.Storage.Buckets.EventCovers,
			"resource_covers", cfg.Storage.Buckets.ResourceCovers,
			"resource_files", cfg.Storage.Buckets.ResourceFiles,
		),
		slog.Group("mail",
			"provider", cfg.Mail.Provider,
			"from", cfg.Mail.FromEmail,
		),
		"api", cfg.API.BasePath,
	}
}

// Start runs the infrastructure hooks, then opens the listener. Readiness is
// logged once every hook has reported startup.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting testers connect", s.backing...)

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("site ready")
	}()

	return nil
}

// Shutdown stops the listener and closes the database pool within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}
