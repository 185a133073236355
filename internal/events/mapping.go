package events

import (
	"github.com/lib/pq"

	"github.com/testersconnect/site/pkg/query"
	"github.com/testersconnect/site/pkg/repository"
)

var projection = query.NewProjectionMap("public", "events", "e").
	Project("id", "ID").
	Project("title", "Title").
	Project("slug", "Slug").
	Project("event_date", "EventDate").
	Project("mode", "Mode").
	Project("city", "City").
	Project("description", "Description").
	Project("tags", "Tags").
	Project("is_published", "IsPublished").
	Project("cover_image_url", "CoverImageURL").
	Project("register_url", "RegisterURL").
	Project("event_type", "EventType").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var newestFirst = query.SortField{Field: "EventDate", Descending: true}

func scanEvent(s repository.Scanner) (Event, error) {
	var e Event
	var tags pq.StringArray
	err := s.Scan(
		&e.ID,
		&e.Title,
		&e.Slug,
		&e.EventDate,
		&e.Mode,
		&e.City,
		&e.Description,
		&tags,
		&e.IsPublished,
		&e.CoverImageURL,
		&e.RegisterURL,
		&e.EventType,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	e.Tags = normalizeTags(tags)
	return e, err
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// windowed applies the partition predicate and ordering: upcoming soonest
// first, past most recent first. Slug breaks ties so pages are stable.
func windowed(b *query.Builder, view View, today Date) *query.Builder {
	if view == ViewPast {
		return b.WhereLT("EventDate", today).
			OrderBy("EventDate", true).
			OrderBy("Slug", false)
	}
	return b.WhereGTE("EventDate", today).
		OrderBy("EventDate", false).
		OrderBy("Slug", false)
}
