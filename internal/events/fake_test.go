package events_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/testersconnect/site/internal/events"
)

var errBackend = errors.New("backend unavailable")

// memRepo is an in-memory events.Repository.
type memRepo struct {
	mu     sync.Mutex
	events []events.Event
	fail   bool
}

func (m *memRepo) seed(slug, date string, published bool) {
	d, err := events.ParseDate(date)
	if err != nil {
		panic(err)
	}
	m.events = append(m.events, events.Event{
		ID:          uuid.New(),
		Title:       strings.ToUpper(slug),
		Slug:        slug,
		EventDate:   d,
		Mode:        events.ModeOnline,
		Tags:        []string{},
		IsPublished: published,
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}

func byDate(desc bool) func(a, b events.Event) int {
	return func(a, b events.Event) int {
		c := strings.Compare(a.EventDate.String(), b.EventDate.String())
		if desc {
			c = -c
		}
		if c == 0 {
			c = strings.Compare(a.Slug, b.Slug)
		}
		return c
	}
}

func (m *memRepo) filter(keep func(events.Event) bool, desc bool) []events.Event {
	out := []events.Event{}
	for _, e := range m.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, byDate(desc))
	return out
}

func (m *memRepo) FindPublishedBySlug(ctx context.Context, slug string) (*events.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errBackend
	}
	for _, e := range m.events {
		if e.Slug == slug && e.IsPublished {
			return &e, nil
		}
	}
	return nil, events.ErrNotFound
}

func (m *memRepo) ListPublished(ctx context.Context) ([]events.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errBackend
	}
	return m.filter(func(e events.Event) bool { return e.IsPublished }, true), nil
}

func (m *memRepo) ListInRange(ctx context.Context, w events.Window) ([]events.Event, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, 0, errBackend
	}
	all := m.filter(func(e events.Event) bool {
		return e.IsPublished && w.Contains(e.EventDate)
	}, w.View == events.ViewPast)

	start := min(w.Offset, len(all))
	end := min(start+w.Limit, len(all))
	return all[start:end], len(all), nil
}

func (m *memRepo) ListAll(ctx context.Context) ([]events.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errBackend
	}
	return m.filter(func(events.Event) bool { return true }, true), nil
}

func (m *memRepo) Insert(ctx context.Context, cmd events.CreateCommand, date events.Date) (*events.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errBackend
	}
	for _, e := range m.events {
		if e.Slug == cmd.Slug {
			return nil, events.ErrDuplicate
		}
	}
	e := events.Event{
		ID:            uuid.New(),
		Title:         cmd.Title,
		Slug:          cmd.Slug,
		EventDate:     date,
		Mode:          cmd.Mode,
		City:          cmd.City,
		Description:   cmd.Description,
		Tags:          cmd.Tags,
		IsPublished:   cmd.IsPublished,
		CoverImageURL: cmd.CoverImageURL,
		RegisterURL:   cmd.RegisterURL,
		EventType:     cmd.EventType,
	}
	m.events = append(m.events, e)
	return &e, nil
}

func (m *memRepo) UpdateFields(ctx context.Context, slug string, patch events.Patch) (*events.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errBackend
	}
	for i, e := range m.events {
		if e.Slug == slug {
			m.events[i] = patch.Apply(e)
			updated := m.events[i]
			return &updated, nil
		}
	}
	return nil, events.ErrNotFound
}

func (m *memRepo) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return false, errBackend
	}
	for i, e := range m.events {
		if e.Slug == slug {
			m.events = slices.Delete(m.events, i, i+1)
			return true, nil
		}
	}
	return false, nil
}
