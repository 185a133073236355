package learning

import (
	"log/slog"
	"net/http"

	"github.com/testersconnect/site/pkg/handlers"
	"github.com/testersconnect/site/pkg/routes"
)

type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{sys: sys, logger: logger.With("handler", "learning")}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Learning"},
		Description: "Published courses and webinars",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/courses", Handler: h.Courses, OpenAPI: Spec.Courses},
			{Method: "GET", Pattern: "/webinars", Handler: h.Webinars, OpenAPI: Spec.Webinars},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) Courses(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.Courses(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondOK(w, map[string]any{"items": items})
}

func (h *Handler) Webinars(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.Webinars(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondOK(w, map[string]any{"items": items})
}
