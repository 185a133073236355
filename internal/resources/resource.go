// Package resources serves the resource library: published listings with
// the explorer filter, and the admin create flow that uploads a PDF and a
// cover before the row is written.
package resources

import (
	"time"

	"github.com/google/uuid"

	"github.com/testersconnect/site/pkg/uploads"
)

// Kind is the resource format shown in the library.
type Kind string

const (
	KindGuide    Kind = "Guide"
	KindTemplate Kind = "Template"
	KindArticle  Kind = "Article"
	KindVideo    Kind = "Video"
)

func (k Kind) Valid() bool {
	switch k {
	case KindGuide, KindTemplate, KindArticle, KindVideo:
		return true
	}
	return false
}

// Resource is a library entry. CoverPath and FilePath are object keys;
// CoverURL and FileURL are derived on read.
type Resource struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Type        Kind      `json:"type"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	URL         *string   `json:"url"`
	Category    *string   `json:"category"`
	Stage       *string   `json:"stage"`
	IsPublished bool      `json:"is_published"`
	CoverPath   *string   `json:"cover_path"`
	FilePath    *string   `json:"file_path"`
	PageCount   *int      `json:"page_count"`
	CreatedAt   time.Time `json:"created_at"`

	CoverURL *string `json:"cover_url"`
	FileURL  *string `json:"file_url"`
}

// CreateCommand is a resource form submission. PDF and Cover are nil when
// the form carried no file.
type CreateCommand struct {
	Title       string   `json:"title" validate:"required"`
	Type        Kind     `json:"type" validate:"required,oneof=Guide Template Article Video"`
	Description string   `json:"description" validate:"required"`
	URL         *string  `json:"url"`
	Category    *string  `json:"category"`
	Stage       *string  `json:"stage"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`

	PDF   *uploads.File `json:"-"`
	Cover *uploads.File `json:"-"`
}

// Facets lists the distinct filter values of a result set, "All" first.
type Facets struct {
	Categories []string `json:"categories"`
	Stages     []string `json:"stages"`
	Types      []string `json:"types"`
}
