package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/testersconnect/site/internal/resources"
)

func init() {
	registerSeeder(&ResourceSeeder{})
}

type ResourceSeedData struct {
	Resources []resources.Resource `json:"resources"`
}

// ResourceSeeder implements Seeder for link-only library resources. Seeded
// resources carry no uploaded files.
type ResourceSeeder struct {
	file string
}

func (s *ResourceSeeder) Name() string {
	return "resources"
}

func (s *ResourceSeeder) Description() string {
	return "Seeds published library resources"
}

func (s *ResourceSeeder) SetFile(path string) {
	s.file = path
}

func (s *ResourceSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := loadSeedData[ResourceSeedData](s.file, s.Name())
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO resources (title, slug, type, description, tags, url, category, stage, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (slug) DO NOTHING`

	for _, r := range data.Resources {
		if !r.Type.Valid() {
			return fmt.Errorf("resource %s: unknown type %q", r.Slug, r.Type)
		}
		_, err := tx.ExecContext(ctx, query,
			r.Title, r.Slug, r.Type, r.Description, pq.Array(r.Tags),
			r.URL, r.Category, r.Stage, r.IsPublished,
		)
		if err != nil {
			return fmt.Errorf("save resource %s: %w", r.Slug, err)
		}
	}
	return nil
}
