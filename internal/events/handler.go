package events

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/testersconnect/site/pkg/decode"
	"github.com/testersconnect/site/pkg/handlers"
	"github.com/testersconnect/site/pkg/pagination"
	"github.com/testersconnect/site/pkg/routes"
	"github.com/testersconnect/site/pkg/uploads"
)

// Handler provides HTTP endpoints for the events catalog and its admin panel.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
	tooLarge      string
}

func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, maxUploadSize int64, tooLarge string) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "events"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
		tooLarge:      tooLarge,
	}
}

// Routes returns the public catalog group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/events",
		Tags:        []string{"Events"},
		Description: "Published events partitioned into upcoming and past",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Page, OpenAPI: Spec.Page},
			{Method: "GET", Pattern: "/published", Handler: h.Published, OpenAPI: Spec.Published},
			{Method: "GET", Pattern: "/sidebar", Handler: h.Sidebar, OpenAPI: Spec.Sidebar},
			{Method: "GET", Pattern: "/{slug}", Handler: h.Find, OpenAPI: Spec.Find},
		},
		Schemas: Spec.Schemas(),
	}
}

// AdminRoutes returns the event mutation group.
func (h *Handler) AdminRoutes() routes.Group {
	return routes.Group{
		Prefix:      "/admin/events",
		Tags:        []string{"Admin: Events"},
		Description: "Event create, sparse update, delete and cover upload",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/list", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "PUT", Pattern: "", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "", Handler: h.Delete, OpenAPI: Spec.Delete},
			{Method: "POST", Pattern: "/cover", Handler: h.UploadCover, OpenAPI: Spec.UploadCover},
		},
	}
}

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	view := ParseView(values.Get("view"))
	page := pagination.PageRequestFromQuery(values, h.pagination)

	result, err := h.sys.Page(r.Context(), view, page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondOK(w, map[string]any{
		"view":       view,
		"items":      result.Items,
		"totalPages": result.TotalPages,
		"totalCount": result.TotalCount,
		"page":       result.Page,
		"pageSize":   result.PageSize,
	})
}

func (h *Handler) Published(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.Published(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondOK(w, map[string]any{"items": items})
}

func (h *Handler) Sidebar(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	view := ParseView(values.Get("view"))
	limit := pagination.ParseInt(values.Get("limit"))

	items, err := h.sys.Sidebar(r.Context(), view, limit)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondOK(w, map[string]any{"view": view, "items": items})
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	e, err := h.sys.Find(r.Context(), r.PathValue("slug"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err, http.StatusInternalServerError), err)
		return
	}
	handlers.RespondOK(w, map[string]any{"item": e})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	handlers.RespondOK(w, map[string]any{"items": items})
}

// Create and the other admin mutations report every failure as 400,
// unknown and duplicate slugs included. The error message names the cause.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decode.Fields(r.Body)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd, err := DecodeCreate(body)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	e, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	handlers.RespondOK(w, map[string]any{"item": e})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := decode.Fields(r.Body)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	slug, patch, err := DecodePatch(body)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	e, err := h.sys.Update(r.Context(), slug, patch)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	handlers.RespondOK(w, map[string]any{"item": e})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.URL.Query().Get("slug")); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	handlers.RespondOK(w, nil)
}

var errMultipart = errors.New("expected a multipart form with slug and file")

func (h *Handler) UploadCover(w http.ResponseWriter, r *http.Request) {
	if err := uploads.ParseForm(w, r, h.maxUploadSize, h.tooLarge, errMultipart); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	file, err := uploads.FormFile(r, "file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cover, err := h.sys.UploadCover(r.Context(), r.FormValue("slug"), file)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err, http.StatusInternalServerError), err)
		return
	}
	handlers.RespondOK(w, map[string]any{"path": cover.Path, "url": cover.URL})
}
