package events

import (
	"errors"
	"net/http"

	"github.com/testersconnect/site/pkg/validation"
)

var (
	ErrNotFound  = errors.New("event not found")
	ErrDuplicate = errors.New("an event with this slug already exists")
)

// MapHTTPStatus converts domain errors to status codes for the public and
// upload routes. Upstream failures map to fallback.
func MapHTTPStatus(err error, fallback int) int {
	if _, ok := validation.As(err); ok {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return fallback
}
