package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/testersconnect/site/pkg/query"
	"github.com/testersconnect/site/pkg/repository"
)

const foreignKeyViolation = "23503"

// Repository is the persistence port for reviews.
type Repository interface {
	ListPublished(ctx context.Context, resourceID uuid.UUID) ([]Review, error)
	Insert(ctx context.Context, resourceID uuid.UUID, name string, rating int, comment string) (*Review, error)
}

type postgres struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgres{db: db}
}

func (p *postgres) ListPublished(ctx context.Context, resourceID uuid.UUID) ([]Review, error) {
	q, args := query.
		NewBuilder(projection, newestFirst).
		WhereEquals("ResourceID", resourceID).
		WhereEquals("rr.is_published", true).
		Build()

	items, err := repository.QueryMany(ctx, p.db, q, args, scanReview)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	return items, nil
}

func (p *postgres) Insert(ctx context.Context, resourceID uuid.UUID, name string, rating int, comment string) (*Review, error) {
	q := fmt.Sprintf(`INSERT INTO %s AS %s (resource_id, name, rating, comment, is_published)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING %s`, projection.Name(), projection.Alias(), projection.Columns())

	r, err := repository.QueryOne(ctx, p.db, q, []any{resourceID, name, rating, comment}, scanReview)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, ErrResourceNotFound
		}
		return nil, repository.MapError(err, ErrResourceNotFound, ErrDuplicate)
	}
	return &r, nil
}
