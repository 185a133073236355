package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/testersconnect/site/internal/learning"
)

func init() {
	registerSeeder(&CourseSeeder{})
	registerSeeder(&WebinarSeeder{})
}

// courseSeed and webinarSeed expose is_published, which the API never
// serializes.
type courseSeed struct {
	learning.Course
	Published bool `json:"is_published"`
}

type webinarSeed struct {
	learning.Webinar
	Published bool `json:"is_published"`
}

type CourseSeeder struct {
	file string
}

func (s *CourseSeeder) Name() string        { return "courses" }
func (s *CourseSeeder) Description() string { return "Seeds the course catalog" }
func (s *CourseSeeder) SetFile(path string) { s.file = path }

func (s *CourseSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := loadSeedData[struct {
		Courses []courseSeed `json:"courses"`
	}](s.file, s.Name())
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO courses (title, slug, level, duration, description, tags, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			level = EXCLUDED.level,
			duration = EXCLUDED.duration,
			description = EXCLUDED.description,
			tags = EXCLUDED.tags,
			is_published = EXCLUDED.is_published`

	for _, c := range data.Courses {
		_, err := tx.ExecContext(ctx, query,
			c.Title, c.Slug, c.Level, c.Duration, c.Description, pq.Array(c.Tags), c.Published,
		)
		if err != nil {
			return fmt.Errorf("save course %s: %w", c.Slug, err)
		}
	}
	return nil
}

type WebinarSeeder struct {
	file string
}

func (s *WebinarSeeder) Name() string        { return "webinars" }
func (s *WebinarSeeder) Description() string { return "Seeds live and replay webinars" }
func (s *WebinarSeeder) SetFile(path string) { s.file = path }

func (s *WebinarSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := loadSeedData[struct {
		Webinars []webinarSeed `json:"webinars"`
	}](s.file, s.Name())
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO webinars (title, slug, level, duration, description, tags,
			webinar_date, mode, join_url, replay_url, cover_image_url, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			webinar_date = EXCLUDED.webinar_date,
			join_url = EXCLUDED.join_url,
			replay_url = EXCLUDED.replay_url,
			is_published = EXCLUDED.is_published`

	for _, w := range data.Webinars {
		_, err := tx.ExecContext(ctx, query,
			w.Title, w.Slug, w.Level, w.Duration, w.Description, pq.Array(w.Tags),
			w.WebinarDate, w.Mode, w.JoinURL, w.ReplayURL, w.CoverImageURL, w.Published,
		)
		if err != nil {
			return fmt.Errorf("save webinar %s: %w", w.Slug, err)
		}
	}
	return nil
}
