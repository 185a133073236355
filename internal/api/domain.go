package api

import (
	"github.com/testersconnect/site/internal/config"
	"github.com/testersconnect/site/internal/events"
	"github.com/testersconnect/site/internal/learning"
	"github.com/testersconnect/site/internal/notifications"
	"github.com/testersconnect/site/internal/resources"
	"github.com/testersconnect/site/internal/reviews"
	"github.com/testersconnect/site/pkg/uploads"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Events        events.System
	Resources     resources.System
	Reviews       reviews.System
	Learning      learning.System
	Notifications notifications.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	db := runtime.Database.Connection()

	eventsSys := events.New(
		events.NewRepository(db),
		runtime.Storage,
		events.Settings{
			Bucket:      cfg.Storage.Buckets.EventCovers,
			Location:    cfg.Events.Location(),
			Pagination:  runtime.Pagination,
			CoverPolicy: uploads.CoverPolicy(&cfg.Uploads),
		},
		runtime.Logger,
	)

	resourcesSys := resources.New(
		resources.NewRepository(db),
		runtime.Storage,
		resources.Settings{
			CoverBucket: cfg.Storage.Buckets.ResourceCovers,
			FileBucket:  cfg.Storage.Buckets.ResourceFiles,
			PDFPolicy:   uploads.PDFPolicy(&cfg.Uploads),
			CoverPolicy: uploads.CoverPolicy(&cfg.Uploads),
		},
		runtime.Logger,
	)

	return &Domain{
		Events:        eventsSys,
		Resources:     resourcesSys,
		Reviews:       reviews.New(reviews.NewRepository(db), runtime.Logger),
		Learning:      learning.New(learning.NewRepository(db), runtime.Logger),
		Notifications: notifications.New(runtime.Mail, cfg.Mail.AdminTo, runtime.Logger),
	}
}
