// Package infrastructure assembles the shared systems domain packages depend on:
// lifecycle, logging, database, object storage and mail.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/testersconnect/site/internal/config"
	"github.com/testersconnect/site/pkg/database"
	"github.com/testersconnect/site/pkg/lifecycle"
	"github.com/testersconnect/site/pkg/logging"
	"github.com/testersconnect/site/pkg/mail"
	"github.com/testersconnect/site/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Mail      mail.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	sender, err := mail.New(&cfg.Mail, logger)
	if err != nil {
		return nil, fmt.Errorf("mail init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Mail:      sender,
	}, nil
}

// Start opens the database and storage and registers them with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
