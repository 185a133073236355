package reviews

import (
	"errors"
	"net/http"

	"github.com/testersconnect/site/pkg/validation"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrDuplicate        = errors.New("review already exists")
)

// MapHTTPStatus reports validation failures as 400. Every backend failure,
// a review for a missing resource included, is a 500.
func MapHTTPStatus(err error) int {
	if _, ok := validation.As(err); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
