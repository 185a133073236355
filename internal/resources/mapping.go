package resources

import (
	"github.com/lib/pq"

	"github.com/testersconnect/site/pkg/query"
	"github.com/testersconnect/site/pkg/repository"
)

var projection = query.NewProjectionMap("public", "resources", "r").
	Project("id", "ID").
	Project("title", "Title").
	Project("slug", "Slug").
	Project("type", "Type").
	Project("description", "Description").
	Project("tags", "Tags").
	Project("url", "URL").
	Project("category", "Category").
	Project("stage", "Stage").
	Project("is_published", "IsPublished").
	Project("cover_path", "CoverPath").
	Project("file_path", "FilePath").
	Project("page_count", "PageCount").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

func scanResource(s repository.Scanner) (Resource, error) {
	var r Resource
	var tags pq.StringArray
	err := s.Scan(
		&r.ID,
		&r.Title,
		&r.Slug,
		&r.Type,
		&r.Description,
		&tags,
		&r.URL,
		&r.Category,
		&r.Stage,
		&r.IsPublished,
		&r.CoverPath,
		&r.FilePath,
		&r.PageCount,
		&r.CreatedAt,
	)
	r.Tags = []string(tags)
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return r, err
}
