package events

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/testersconnect/site/pkg/query"
	"github.com/testersconnect/site/pkg/repository"
)

// Repository is the persistence port for events.
type Repository interface {
	FindPublishedBySlug(ctx context.Context, slug string) (*Event, error)
	ListPublished(ctx context.Context) ([]Event, error)
	ListInRange(ctx context.Context, w Window) ([]Event, int, error)
	ListAll(ctx context.Context) ([]Event, error)
	Insert(ctx context.Context, cmd CreateCommand, date Date) (*Event, error)
	UpdateFields(ctx context.Context, slug string, patch Patch) (*Event, error)
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
}

type postgres struct {
	db *sql.DB
}

// NewRepository returns the PostgreSQL adapter.
func NewRepository(db *sql.DB) Repository {
	return &postgres{db: db}
}

func (r *postgres) FindPublishedBySlug(ctx context.Context, slug string) (*Event, error) {
	q, args := query.
		NewBuilder(projection, newestFirst).
		WhereEquals("IsPublished", true).
		BuildSingle("Slug", slug)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEvent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *postgres) ListPublished(ctx context.Context) ([]Event, error) {
	q, args := query.
		NewBuilder(projection, newestFirst).
		WhereEquals("IsPublished", true).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	return items, nil
}

func (r *postgres) ListInRange(ctx context.Context, w Window) ([]Event, int, error) {
	qb := windowed(
		query.NewBuilder(projection, newestFirst).WhereEquals("IsPublished", true),
		w.View,
		w.Today,
	)

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryCount(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	page := w.Offset/max(w.Limit, 1) + 1
	pageSQL, pageArgs := qb.BuildPage(page, w.Limit)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEvent)
	if err != nil {
		return nil, 0, fmt.Errorf("query events: %w", err)
	}
	return items, total, nil
}

func (r *postgres) ListAll(ctx context.Context) ([]Event, error) {
	q, args := query.NewBuilder(projection, newestFirst).Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	return items, nil
}

func (r *postgres) Insert(ctx context.Context, cmd CreateCommand, date Date) (*Event, error) {
	q := fmt.Sprintf(`INSERT INTO %s AS %s
		(title, slug, event_date, mode, city, description, tags, is_published, cover_image_url, register_url, event_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s`, projection.Name(), projection.Alias(), projection.Columns())

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Event, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			cmd.Title,
			cmd.Slug,
			date,
			cmd.Mode,
			cmd.City,
			cmd.Description,
			pq.Array(cmd.Tags),
			cmd.IsPublished,
			cmd.CoverImageURL,
			cmd.RegisterURL,
			cmd.EventType,
		}, scanEvent)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *postgres) UpdateFields(ctx context.Context, slug string, patch Patch) (*Event, error) {
	u := query.NewUpdate(projection)
	if patch.Title.Set {
		u.Set("title", patch.Title.Value)
	}
	if patch.EventDate.Set {
		u.Set("event_date", patch.EventDate.Value)
	}
	if patch.Mode.Set {
		u.Set("mode", patch.Mode.Value)
	}
	if patch.City.Set {
		u.Set("city", patch.City.Value)
	}
	if patch.Description.Set {
		u.Set("description", patch.Description.Value)
	}
	if patch.Tags.Set {
		u.Set("tags", pq.Array(patch.Tags.Value))
	}
	if patch.IsPublished.Set {
		u.Set("is_published", patch.IsPublished.Value)
	}
	if patch.CoverImageURL.Set {
		u.Set("cover_image_url", patch.CoverImageURL.Value)
	}
	if patch.RegisterURL.Set {
		u.Set("register_url", patch.RegisterURL.Value)
	}
	if patch.EventType.Set {
		u.Set("event_type", patch.EventType.Value)
	}
	u.SetExpr("updated_at", "NOW()").Where("Slug", slug)

	q, args := u.Build()
	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Event, error) {
		return repository.QueryOne(ctx, tx, q, args, scanEvent)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *postgres) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	q := fmt.Sprintf("DELETE FROM %s WHERE slug = $1", projection.Name())

	n, err := repository.Exec(ctx, r.db, q, slug)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	return n > 0, nil
}
