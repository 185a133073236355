package learning

import (
	"github.com/lib/pq"

	"github.com/testersconnect/site/pkg/query"
	"github.com/testersconnect/site/pkg/repository"
)

var courseProjection = query.NewProjectionMap("public", "courses", "c").
	Project("id", "ID").
	Project("title", "Title").
	Project("slug", "Slug").
	Project("level", "Level").
	Project("duration", "Duration").
	Project("description", "Description").
	Project("tags", "Tags").
	Project("is_published", "IsPublished")

var webinarProjection = query.NewProjectionMap("public", "webinars", "w").
	Project("id", "ID").
	Project("title", "Title").
	Project("slug", "Slug").
	Project("level", "Level").
	Project("duration", "Duration").
	Project("description", "Description").
	Project("tags", "Tags").
	Project("webinar_date", "WebinarDate").
	Project("mode", "Mode").
	Project("join_url", "JoinURL").
	Project("replay_url", "ReplayURL").
	Project("cover_image_url", "CoverImageURL").
	Project("is_published", "IsPublished")

var newestFirst = query.SortField{Field: "created_at", Descending: true}

func scanCourse(s repository.Scanner) (Course, error) {
	var c Course
	var tags pq.StringArray
	err := s.Scan(&c.ID, &c.Title, &c.Slug, &c.Level, &c.Duration, &c.Description, &tags, &c.IsPublished)
	c.Tags = orEmpty(tags)
	return c, err
}

func scanWebinar(s repository.Scanner) (Webinar, error) {
	var w Webinar
	var tags pq.StringArray
	err := s.Scan(
		&w.ID,
		&w.Title,
		&w.Slug,
		&w.Level,
		&w.Duration,
		&w.Description,
		&tags,
		&w.WebinarDate,
		&w.Mode,
		&w.JoinURL,
		&w.ReplayURL,
		&w.CoverImageURL,
		&w.IsPublished,
	)
	w.Tags = orEmpty(tags)
	return w, err
}

func orEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
