package reviews

import (
	"github.com/testersconnect/site/pkg/query"
	"github.com/testersconnect/site/pkg/repository"
)

var projection = query.NewProjectionMap("public", "resource_reviews", "rr").
	Project("id", "ID").
	Project("resource_id", "ResourceID").
	Project("name", "Name").
	Project("rating", "Rating").
	Project("comment", "Comment").
	Project("created_at", "CreatedAt")

var newestFirst = query.SortField{Field: "CreatedAt", Descending: true}

func scanReview(s repository.Scanner) (Review, error) {
	var r Review
	err := s.Scan(&r.ID, &r.ResourceID, &r.Name, &r.Rating, &r.Comment, &r.CreatedAt)
	return r, err
}
