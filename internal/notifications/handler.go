package notifications

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/testersconnect/site/pkg/decode"
	"github.com/testersconnect/site/pkg/handlers"
	"github.com/testersconnect/site/pkg/routes"
	"github.com/testersconnect/site/pkg/validation"
)

type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{sys: sys, logger: logger.With("handler", "notifications")}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Notifications"},
		Description: "Contact form and newsletter subscription",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/contact", Handler: h.Contact, OpenAPI: Spec.Contact},
			{Method: "POST", Pattern: "/subscribe", Handler: h.Subscribe, OpenAPI: Spec.Subscribe},
		},
		Schemas: Spec.Schemas(),
	}
}

// Contact accepts "name" or "full_name". An unreadable body is treated as
// an empty form.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	body, err := decode.Fields(r.Body)
	if err != nil {
		body = map[string]json.RawMessage{}
	}

	name := member(body, "name")
	if name == "" {
		name = member(body, "full_name")
	}

	_, err = h.sys.Contact(r.Context(), ContactRequest{
		FullName:    name,
		Email:       member(body, "email"),
		Message:     member(body, "message"),
		CompanySite: member(body, "company_site"),
	})
	if err != nil {
		if _, ok := validation.As(err); ok {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, errors.New(contactFailure(err)))
		return
	}
	handlers.RespondOK(w, nil)
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email any `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusInternalServerError, "Failed to subscribe", err)
		return
	}

	email, _ := req.Email.(string)
	if err := h.sys.Subscribe(r.Context(), email); err != nil {
		if verr, ok := validation.As(err); ok {
			h.fail(w, http.StatusBadRequest, verr.Message, err)
			return
		}
		h.fail(w, http.StatusInternalServerError, "Failed to subscribe", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) fail(w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("subscribe failed", "error", err)
	} else {
		h.logger.Warn("subscribe rejected", "error", err)
	}
	handlers.RespondJSON(w, status, map[string]any{"error": message})
}

func member(body map[string]json.RawMessage, key string) string {
	raw, ok := body[key]
	if !ok {
		return ""
	}
	s, _ := decode.String(raw)
	return s
}
