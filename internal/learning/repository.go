package learning

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/testersconnect/site/pkg/query"
	"github.com/testersconnect/site/pkg/repository"
)

// Repository is the persistence port for courses and webinars. The insert
// methods serve seeding; the site exposes no course or webinar mutations.
type Repository interface {
	ListCourses(ctx context.Context) ([]Course, error)
	ListWebinars(ctx context.Context) ([]Webinar, error)
	InsertCourse(ctx context.Context, c Course) (*Course, error)
	InsertWebinar(ctx context.Context, w Webinar) (*Webinar, error)
}

type postgres struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgres{db: db}
}

func (p *postgres) ListCourses(ctx context.Context) ([]Course, error) {
	q, args := query.
		NewBuilder(courseProjection, newestFirst).
		WhereEquals("IsPublished", true).
		Build()

	items, err := repository.QueryMany(ctx, p.db, q, args, scanCourse)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	return items, nil
}

func (p *postgres) ListWebinars(ctx context.Context) ([]Webinar, error) {
	q, args := query.
		NewBuilder(webinarProjection, newestFirst).
		WhereEquals("IsPublished", true).
		Build()

	items, err := repository.QueryMany(ctx, p.db, q, args, scanWebinar)
	if err != nil {
		return nil, fmt.Errorf("query webinars: %w", err)
	}
	return items, nil
}

func (p *postgres) InsertCourse(ctx context.Context, c Course) (*Course, error) {
	q := fmt.Sprintf(`INSERT INTO %s AS %s (title, slug, level, duration, description, tags, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slug) DO UPDATE SET title = EXCLUDED.title
		RETURNING %s`, courseProjection.Name(), courseProjection.Alias(), courseProjection.Columns())

	created, err := repository.QueryOne(ctx, p.db, q, []any{
		c.Title, c.Slug, c.Level, c.Duration, c.Description, pq.Array(c.Tags), c.IsPublished,
	}, scanCourse)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}
	return &created, nil
}

func (p *postgres) InsertWebinar(ctx context.Context, w Webinar) (*Webinar, error) {
	q := fmt.Sprintf(`INSERT INTO %s AS %s
		(title, slug, level, duration, description, tags, webinar_date, mode, join_url, replay_url, cover_image_url, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (slug) DO UPDATE SET title = EXCLUDED.title
		RETURNING %s`, webinarProjection.Name(), webinarProjection.Alias(), webinarProjection.Columns())

	created, err := repository.QueryOne(ctx, p.db, q, []any{
		w.Title, w.Slug, w.Level, w.Duration, w.Description, pq.Array(w.Tags),
		w.WebinarDate, w.Mode, w.JoinURL, w.ReplayURL, w.CoverImageURL, w.IsPublished,
	}, scanWebinar)
	if err != nil {
		return nil, fmt.Errorf("insert webinar: %w", err)
	}
	return &created, nil
}
