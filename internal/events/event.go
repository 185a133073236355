// Package events serves the events catalog, its upcoming/past partitions,
// and the admin mutations that maintain it.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Mode is how an event is attended.
type Mode string

const (
	ModeOnline   Mode = "Online"
	ModeInPerson Mode = "In-person"
)

func (m Mode) Valid() bool {
	return m == ModeOnline || m == ModeInPerson
}

// View selects one of the two date partitions.
type View string

const (
	ViewUpcoming View = "upcoming"
	ViewPast     View = "past"
)

// ParseView maps "past" to ViewPast and anything else to ViewUpcoming.
func ParseView(s string) View {
	if s == string(ViewPast) {
		return ViewPast
	}
	return ViewUpcoming
}

// Event is a catalog entry. Slug is the lookup key for admin mutations.
type Event struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	EventDate     Date      `json:"event_date"`
	Mode          Mode      `json:"mode"`
	City          *string   `json:"city"`
	Description   string    `json:"description"`
	Tags          []string  `json:"tags"`
	IsPublished   bool      `json:"is_published"`
	CoverImageURL *string   `json:"cover_image_url"`
	RegisterURL   *string   `json:"register_url"`
	EventType     *string   `json:"event_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Summary is the compact sidebar projection of an event.
type Summary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	EventDate     Date      `json:"event_date"`
	CoverImageURL *string   `json:"cover_image_url"`
	RegisterURL   *string   `json:"register_url"`
}

func (e Event) Summary() Summary {
	return Summary{
		ID:            e.ID,
		Title:         e.Title,
		Slug:          e.Slug,
		EventDate:     e.EventDate,
		CoverImageURL: e.CoverImageURL,
		RegisterURL:   e.RegisterURL,
	}
}

// CreateCommand carries a new event with defaults already applied.
type CreateCommand struct {
	Title         string   `json:"title" validate:"required"`
	Slug          string   `json:"slug" validate:"required,slug"`
	EventDate     string   `json:"event_date" validate:"required,civil_date"`
	Mode          Mode     `json:"mode" validate:"oneof=Online In-person"`
	City          *string  `json:"city"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	IsPublished   bool     `json:"is_published"`
	CoverImageURL *string  `json:"cover_image_url"`
	RegisterURL   *string  `json:"register_url"`
	EventType     *string  `json:"event_type"`
}

// Optional is a patch field that distinguishes "absent" from any value,
// including null.
type Optional[T any] struct {
	Set   bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Patch is a sparse update. Only fields with Set are written.
type Patch struct {
	Title         Optional[string]
	EventDate     Optional[Date]
	Mode          Optional[Mode]
	City          Optional[*string]
	Description   Optional[string]
	Tags          Optional[[]string]
	IsPublished   Optional[bool]
	CoverImageURL Optional[*string]
	RegisterURL   Optional[*string]
	EventType     Optional[*string]
}

// Empty reports whether the patch touches no field.
func (p Patch) Empty() bool {
	return !p.Title.Set &&
		!p.EventDate.Set &&
		!p.Mode.Set &&
		!p.City.Set &&
		!p.Description.Set &&
		!p.Tags.Set &&
		!p.IsPublished.Set &&
		!p.CoverImageURL.Set &&
		!p.RegisterURL.Set &&
		!p.EventType.Set
}

// Apply returns e with the patch fields written over it.
func (p Patch) Apply(e Event) Event {
	if p.Title.Set {
		e.Title = p.Title.Value
	}
	if p.EventDate.Set {
		e.EventDate = p.EventDate.Value
	}
	if p.Mode.Set {
		e.Mode = p.Mode.Value
	}
	if p.City.Set {
		e.City = p.City.Value
	}
	if p.Description.Set {
		e.Description = p.Description.Value
	}
	if p.Tags.Set {
		e.Tags = p.Tags.Value
	}
	if p.IsPublished.Set {
		e.IsPublished = p.IsPublished.Value
	}
	if p.CoverImageURL.Set {
		e.CoverImageURL = p.CoverImageURL.Value
	}
	if p.RegisterURL.Set {
		e.RegisterURL = p.RegisterURL.Value
	}
	if p.EventType.Set {
		e.EventType = p.EventType.Value
	}
	return e
}

// Window is one page of a partition relative to Today.
type Window struct {
	View   View
	Today  Date
	Offset int
	Limit  int
}

// Contains reports whether an event date falls in the window's partition.
func (w Window) Contains(d Date) bool {
	if w.View == ViewPast {
		return d.Before(w.Today)
	}
	return !d.Before(w.Today)
}

// CoverUpload is the stored location of an uploaded event cover.
type CoverUpload struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}
