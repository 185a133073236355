package api

import (
	"net/http"

	"github.com/testersconnect/site/internal/config"
	"github.com/testersconnect/site/internal/events"
	"github.com/testersconnect/site/internal/learning"
	"github.com/testersconnect/site/internal/notifications"
	"github.com/testersconnect/site/internal/resources"
	"github.com/testersconnect/site/internal/reviews"
	"github.com/testersconnect/site/pkg/openapi"
	"github.com/testersconnect/site/pkg/routes"
	"github.com/testersconnect/site/pkg/uploads"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	formLimit := cfg.Uploads.FormMaxBytes()
	coverPolicy := uploads.CoverPolicy(&cfg.Uploads)
	pdfPolicy := uploads.PDFPolicy(&cfg.Uploads)

	eventsHandler := events.NewHandler(domain.Events, runtime.Logger, runtime.Pagination, formLimit, coverPolicy.SizeMessage)
	resourcesHandler := resources.NewHandler(domain.Resources, runtime.Logger, formLimit, pdfPolicy.SizeMessage, cfg.Admin.ResourcesURL)
	reviewsHandler := reviews.NewHandler(domain.Reviews, runtime.Logger)
	learningHandler := learning.NewHandler(domain.Learning, runtime.Logger)
	notificationsHandler := notifications.NewHandler(domain.Notifications, runtime.Logger)

	routes.Register(
		mux,
		cfg.API.BasePath,
		spec,
		eventsHandler.Routes(),
		eventsHandler.AdminRoutes(),
		resourcesHandler.Routes(),
		resourcesHandler.AdminRoutes(),
		reviewsHandler.Routes(),
		learningHandler.Routes(),
		notificationsHandler.Routes(),
	)
}
