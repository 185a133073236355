package resources

import (
	"errors"
	"net/http"

	"github.com/testersconnect/site/pkg/validation"
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("a resource with this slug already exists")
)

func MapHTTPStatus(err error) int {
	if _, ok := validation.As(err); ok {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
