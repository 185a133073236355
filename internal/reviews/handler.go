package reviews

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/testersconnect/site/pkg/decode"
	"github.com/testersconnect/site/pkg/handlers"
	"github.com/testersconnect/site/pkg/routes"
)

// Handler serves /resource-reviews. Failures use the "message" envelope.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "reviews"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/resource-reviews",
		Tags:        []string{"Reviews"},
		Description: "Published reviews of library resources",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.List(r.Context(), r.URL.Query().Get("resource_id"))
	if err != nil {
		handlers.RespondMessage(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondOK(w, map[string]any{"reviews": items})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decode.Fields(r.Body)
	if err != nil {
		body = map[string]json.RawMessage{}
	}

	review, err := h.sys.Create(r.Context(), DecodeCreate(body))
	if err != nil {
		handlers.RespondMessage(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondOK(w, map[string]any{"review": review})
}
