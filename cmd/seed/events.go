package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/testersconnect/site/internal/events"
)

func init() {
	registerSeeder(&EventSeeder{})
}

// EventSeed is a catalog entry whose date is either fixed or relative to the
// day the seeder runs, so both partitions stay populated.
type EventSeed struct {
	events.CreateCommand
	DaysFromToday *int `json:"days_from_today"`
}

type EventSeedData struct {
	Events []EventSeed `json:"events"`
}

// EventSeeder implements Seeder for the events catalog.
type EventSeeder struct {
	file string
	now  func() time.Time
}

func (s *EventSeeder) Name() string {
	return "events"
}

func (s *EventSeeder) Description() string {
	return "Seeds upcoming, past and draft events"
}

func (s *EventSeeder) SetFile(path string) {
	s.file = path
}

// Seed inserts each event once; existing slugs are left untouched.
func (s *EventSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := loadSeedData[EventSeedData](s.file, s.Name())
	if err != nil {
		return err
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	today := events.Today(now(), time.UTC)

	const query = `
		INSERT INTO events (title, slug, event_date, mode, city, description, tags,
			is_published, cover_image_url, register_url, event_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (slug) DO NOTHING`

	for _, e := range data.Events {
		date, err := e.date(today)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.Slug, err)
		}
		mode := e.Mode
		if mode == "" {
			mode = events.ModeOnline
		}

		_, err = tx.ExecContext(ctx, query,
			e.Title, e.Slug, date, mode, e.City, e.Description, pq.Array(e.Tags),
			e.IsPublished, e.CoverImageURL, e.RegisterURL, e.EventType,
		)
		if err != nil {
			return fmt.Errorf("save event %s: %w", e.Slug, err)
		}
	}
	return nil
}

func (e EventSeed) date(today events.Date) (events.Date, error) {
	if e.DaysFromToday != nil {
		return today.AddDays(*e.DaysFromToday), nil
	}
	return events.ParseDate(e.EventDate)
}
