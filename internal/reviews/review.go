// Package reviews reads and records public reviews of library resources.
package reviews

import (
	"time"

	"github.com/google/uuid"
)

// Review is a published rating of a resource.
type Review struct {
	ID         uuid.UUID `json:"id"`
	ResourceID uuid.UUID `json:"resource_id"`
	Name       string    `json:"name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateCommand is a review submission. Rating is nil when the body carried
// no usable number. Field order is the order failures are reported in.
type CreateCommand struct {
	ResourceID string   `json:"resource_id" validate:"uuid_shape"`
	Rating     *float64 `json:"rating" validate:"min=1,max=5"`
	Name       string   `json:"name" validate:"max=60"`
	Comment    string   `json:"comment" validate:"max=800"`
}

const (
	MaxName    = 60
	MaxComment = 800
)
