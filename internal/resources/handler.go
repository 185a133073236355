package resources

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/testersconnect/site/pkg/handlers"
	"github.com/testersconnect/site/pkg/routes"
	"github.com/testersconnect/site/pkg/uploads"
)

// Handler provides the library endpoints and the admin form target.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
	tooLarge      string
	redirectURL   string
}

// NewHandler creates a resource handler. A form body over maxUploadSize is
// rejected with the tooLarge message. A successful create redirects to
// redirectURL with created=1 and the new slug.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64, tooLarge, redirectURL string) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "resources"),
		maxUploadSize: maxUploadSize,
		tooLarge:      tooLarge,
		redirectURL:   redirectURL,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/resources",
		Tags:        []string{"Resources"},
		Description: "Published resource library with search and facet filters",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Explore, OpenAPI: Spec.Explore},
			{Method: "GET", Pattern: "/{slug}", Handler: h.Find, OpenAPI: Spec.Find},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) AdminRoutes() routes.Group {
	return routes.Group{
		Prefix:      "/admin/resources",
		Tags:        []string{"Admin: Resources"},
		Description: "Resource form submission and full listing",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/list", Handler: h.List, OpenAPI: Spec.List},
		},
	}
}

func (h *Handler) Explore(w http.ResponseWriter, r *http.Request) {
	listing, err := h.sys.Explore(r.Context(), FilterFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondOK(w, map[string]any{
		"items":  listing.Items,
		"total":  listing.Total,
		"facets": listing.Facets,
	})
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	res, err := h.sys.Find(r.Context(), r.PathValue("slug"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondOK(w, map[string]any{"item": res})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	handlers.RespondOK(w, map[string]any{"items": items})
}

var errForm = errors.New("expected a multipart resource form")

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := uploads.ParseForm(w, r, h.maxUploadSize, h.tooLarge, errForm); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd, err := CommandFromForm(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	res, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	http.Redirect(w, r, h.createdURL(res.Slug), http.StatusSeeOther)
}

func (h *Handler) createdURL(slug string) string {
	u, err := url.Parse(h.redirectURL)
	if err != nil {
		u = &url.URL{Path: "/admin/resources"}
	}
	q := u.Query()
	q.Set("created", "1")
	q.Set("slug", slug)
	u.RawQuery = q.Encode()
	return u.String()
}
