package resources

import (
	"net/http"
	"strings"

	"github.com/testersconnect/site/pkg/uploads"
)

// CommandFromForm reads a parsed multipart resource form. Text fields are
// trimmed and blank optional fields become nil; tags is a comma list and
// is_published is true unless it is exactly "false".
func CommandFromForm(r *http.Request) (CreateCommand, error) {
	cmd := CreateCommand{
		Title:       field(r, "title"),
		Type:        Kind(field(r, "type")),
		Description: field(r, "description"),
		URL:         optional(r, "url"),
		Category:    optional(r, "category"),
		Stage:       optional(r, "stage"),
		Tags:        SplitTags(field(r, "tags")),
		IsPublished: field(r, "is_published") != "false",
	}

	var err error
	if cmd.PDF, err = uploads.FormFile(r, "pdf"); err != nil {
		return cmd, err
	}
	if cmd.Cover, err = uploads.FormFile(r, "cover"); err != nil {
		return cmd, err
	}
	return cmd, nil
}

// SplitTags splits a comma list, trimming entries and dropping blanks.
func SplitTags(raw string) []string {
	tags := []string{}
	for t := range strings.SplitSeq(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func field(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

func optional(r *http.Request, key string) *string {
	v := field(r, key)
	if v == "" {
		return nil
	}
	return &v
}
