// Package learning lists the published courses and webinars.
package learning

import (
	"time"

	"github.com/google/uuid"
)

// Level is the difficulty shared by courses and webinars.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

type Course struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Level       Level     `json:"level"`
	Duration    string    `json:"duration"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	IsPublished bool      `json:"-"`
}

type Webinar struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Level         Level      `json:"level"`
	Duration      string     `json:"duration"`
	Description   string     `json:"description"`
	Tags          []string   `json:"tags"`
	WebinarDate   *time.Time `json:"webinar_date"`
	Mode          string     `json:"mode"`
	JoinURL       *string    `json:"join_url"`
	ReplayURL     *string    `json:"replay_url"`
	CoverImageURL *string    `json:"cover_image_url"`
	IsPublished   bool       `json:"-"`
}
