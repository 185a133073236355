package events

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/testersconnect/site/pkg/pagination"
	"github.com/testersconnect/site/pkg/slug"
	"github.com/testersconnect/site/pkg/storage"
	"github.com/testersconnect/site/pkg/uploads"
	"github.com/testersconnect/site/pkg/validation"
)

// Settings carries the non-dependency inputs of the events system.
type Settings struct {
	Bucket      string
	Location    *time.Location
	Pagination  pagination.Config
	CoverPolicy uploads.Policy

	// Now defaults to time.Now.
	Now func() time.Time
}

type service struct {
	repo      Repository
	storage   storage.System
	settings  Settings
	validator *validation.Validator
	logger    *slog.Logger
}

// New creates the events system over a repository and object storage.
func New(repo Repository, store storage.System, settings Settings, logger *slog.Logger) System {
	if settings.Now == nil {
		settings.Now = time.Now
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}

	v := validation.NewValidator()
	v.RegisterRule("slug", "{0} must contain only lowercase letters, numbers and hyphens", func(fl validator.FieldLevel) bool {
		return slug.Valid(fl.Field().String())
	})
	v.RegisterRule("civil_date", "{0} must be a date in YYYY-MM-DD form", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})

	return &service{
		repo:      repo,
		storage:   store,
		settings:  settings,
		validator: v,
		logger:    logger.With("system", "events"),
	}
}

func (s *service) today() Date {
	return Today(s.settings.Now(), s.settings.Location)
}

func (s *service) Page(ctx context.Context, view View, page pagination.PageRequest) (*pagination.PageResult[Event], error) {
	page.Normalize(s.settings.Pagination)

	items, total, err := s.repo.ListInRange(ctx, Window{
		View:   view,
		Today:  s.today(),
		Offset: page.Offset(),
		Limit:  page.PageSize,
	})
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(items, total, page)
	return &result, nil
}

func (s *service) Sidebar(ctx context.Context, view View, limit int) ([]Summary, error) {
	page := pagination.PageRequest{Page: 1, PageSize: limit}
	page.Normalize(s.settings.Pagination)

	items, _, err := s.repo.ListInRange(ctx, Window{
		View:  view,
		Today: s.today(),
		Limit: page.PageSize,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, len(items))
	for i, e := range items {
		summaries[i] = e.Summary()
	}
	return summaries, nil
}

func (s *service) Published(ctx context.Context) ([]Event, error) {
	return s.repo.ListPublished(ctx)
}

func (s *service) Find(ctx context.Context, slug string) (*Event, error) {
	return s.repo.FindPublishedBySlug(ctx, strings.TrimSpace(slug))
}

func (s *service) List(ctx context.Context) ([]Event, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Create(ctx context.Context, cmd CreateCommand) (*Event, error) {
	if err := s.validator.Check(cmd, createMessage); err != nil {
		return nil, err
	}

	date, err := ParseDate(cmd.EventDate)
	if err != nil {
		return nil, validation.New("event_date must be a date in YYYY-MM-DD form")
	}
	if cmd.Tags == nil {
		cmd.Tags = []string{}
	}

	e, err := s.repo.Insert(ctx, cmd, date)
	if err != nil {
		return nil, err
	}

	s.logger.Info("event created", "slug", e.Slug, "event_date", e.EventDate.String())
	return e, nil
}

func createMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Missing title, slug, or event_date"
	case "oneof":
		return "mode must be Online or In-person"
	}
	return ""
}

func (s *service) Update(ctx context.Context, slug string, patch Patch) (*Event, error) {
	if slug == "" {
		return nil, validation.New("Missing slug")
	}
	if patch.Empty() {
		return nil, validation.New("Nothing to update")
	}
	if patch.Title.Set && patch.Title.Value == "" {
		return nil, validation.New("title cannot be empty")
	}
	if patch.Mode.Set && !patch.Mode.Value.Valid() {
		return nil, validation.New("mode must be Online or In-person")
	}
	if patch.Tags.Set && patch.Tags.Value == nil {
		patch.Tags.Value = []string{}
	}

	e, err := s.repo.UpdateFields(ctx, slug, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("event updated", "slug", e.Slug)
	return e, nil
}

func (s *service) Delete(ctx context.Context, slug string) error {
	if slug == "" {
		return validation.New("Missing slug")
	}

	found, err := s.repo.DeleteBySlug(ctx, slug)
	if err != nil {
		return err
	}

	s.logger.Info("event deleted", "slug", slug, "found", found)
	return nil
}

var whitespace = regexp.MustCompile(`\s+`)

// CoverKey is the object key for an event cover uploaded at the given time.
func CoverKey(slug, filename string, at time.Time) string {
	name := whitespace.ReplaceAllString(filepath.Base(filename), "-")
	return fmt.Sprintf("%s/%d-%s", slug, at.UnixMilli(), name)
}

func (s *service) UploadCover(ctx context.Context, eventSlug string, file *uploads.File) (*CoverUpload, error) {
	eventSlug = strings.TrimSpace(eventSlug)
	if eventSlug == "" {
		return nil, validation.New("Add a slug before uploading an image.")
	}
	if !slug.Valid(eventSlug) {
		return nil, validation.New("slug must contain only lowercase letters, numbers and hyphens")
	}
	if file == nil {
		return nil, validation.New("Choose an image to upload.")
	}
	if err := s.settings.CoverPolicy.Check(file); err != nil {
		return nil, err
	}

	key := CoverKey(eventSlug, file.Name, s.settings.Now())
	if err := s.storage.Store(ctx, s.settings.Bucket, key, file.Data, file.ContentType); err != nil {
		return nil, fmt.Errorf("upload cover: %w", err)
	}

	attrs := []any{"slug", eventSlug, "key", key, "size", file.Size}
	if w, h, err := uploads.ImageSize(file.Data); err == nil {
		attrs = append(attrs, "width", w, "height", h)
	}
	s.logger.Info("event cover uploaded", attrs...)
	return &CoverUpload{
		Path: key,
		URL:  s.storage.PublicURL(s.settings.Bucket, key),
	}, nil
}
