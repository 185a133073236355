package resources

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/testersconnect/site/pkg/query"
	"github.com/testersconnect/site/pkg/repository"
)

// Repository is the persistence port for resources.
type Repository interface {
	ListPublished(ctx context.Context) ([]Resource, error)
	ListAll(ctx context.Context) ([]Resource, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*Resource, error)
	Insert(ctx context.Context, r Resource) (*Resource, error)
}

type postgres struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgres{db: db}
}

func (p *postgres) ListPublished(ctx context.Context) ([]Resource, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("IsPublished", true).
		Build()

	items, err := repository.QueryMany(ctx, p.db, q, args, scanResource)
	if err != nil {
		return nil, fmt.Errorf("query resources: %w", err)
	}
	return items, nil
}

func (p *postgres) ListAll(ctx context.Context) ([]Resource, error) {
	q, args := query.NewBuilder(projection, defaultSort).Build()

	items, err := repository.QueryMany(ctx, p.db, q, args, scanResource)
	if err != nil {
		return nil, fmt.Errorf("query resources: %w", err)
	}
	return items, nil
}

func (p *postgres) FindPublishedBySlug(ctx context.Context, slug string) (*Resource, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("IsPublished", true).
		BuildSingle("Slug", slug)

	r, err := repository.QueryOne(ctx, p.db, q, args, scanResource)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &r, nil
}

func (p *postgres) Insert(ctx context.Context, r Resource) (*Resource, error) {
	q := fmt.Sprintf(`INSERT INTO %s AS %s
		(title, slug, type, description, tags, url, category, stage, is_published, cover_path, file_path, page_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s`, projection.Name(), projection.Alias(), projection.Columns())

	created, err := repository.WithTx(ctx, p.db, func(tx *sql.Tx) (Resource, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			r.Title,
			r.Slug,
			r.Type,
			r.Description,
			pq.Array(r.Tags),
			r.URL,
			r.Category,
			r.Stage,
			r.IsPublished,
			r.CoverPath,
			r.FilePath,
			r.PageCount,
		}, scanResource)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &created, nil
}
