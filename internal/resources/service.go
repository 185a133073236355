package resources

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/testersconnect/site/pkg/slug"
	"github.com/testersconnect/site/pkg/storage"
	"github.com/testersconnect/site/pkg/uploads"
	"github.com/testersconnect/site/pkg/validation"
)

// Settings carries the buckets, upload policies and id sources.
type Settings struct {
	CoverBucket string
	FileBucket  string
	PDFPolicy   uploads.Policy
	CoverPolicy uploads.Policy

	// NewID defaults to uuid.NewString; the slug suffix is its first six runes.
	NewID func() string
	Now   func() time.Time
}

type service struct {
	repo      Repository
	storage   storage.System
	settings  Settings
	validator *validation.Validator
	logger    *slog.Logger
}

func New(repo Repository, store storage.System, settings Settings, logger *slog.Logger) System {
	if settings.NewID == nil {
		settings.NewID = uuid.NewString
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	return &service{
		repo:      repo,
		storage:   store,
		settings:  settings,
		validator: validation.NewValidator(),
		logger:    logger.With("system", "resources"),
	}
}

func (s *service) Explore(ctx context.Context, filter Filter) (*Listing, error) {
	all, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	items := s.withURLs(filter.Apply(all))
	return &Listing{
		Items:  items,
		Total:  len(items),
		Facets: FacetsOf(all),
	}, nil
}

func (s *service) Find(ctx context.Context, slug string) (*Resource, error) {
	r, err := s.repo.FindPublishedBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	decorated := s.withURL(*r)
	return &decorated, nil
}

func (s *service) List(ctx context.Context) ([]Resource, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.withURLs(items), nil
}

// slug derives a resource slug from its title plus a short random suffix.
func (s *service) slug(title string) string {
	base := slug.Make(title)
	if base == "" {
		base = fmt.Sprintf("resource-%d", s.settings.Now().UnixMilli())
	}
	return base + "-" + suffix(s.settings.NewID())
}

func suffix(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}

// Create validates the form and both files, uploads the PDF and then the
// cover, and inserts the row. Any failure after the first upload removes
// what was already stored.
func (s *service) Create(ctx context.Context, cmd CreateCommand) (*Resource, error) {
	if err := s.validator.Check(cmd, createMessage); err != nil {
		return nil, err
	}
	if cmd.PDF != nil {
		if err := s.settings.PDFPolicy.Check(cmd.PDF); err != nil {
			return nil, err
		}
	}
	if cmd.Cover != nil {
		if err := s.settings.CoverPolicy.Check(cmd.Cover); err != nil {
			return nil, err
		}
	}

	r := Resource{
		Title:       cmd.Title,
		Slug:        s.slug(cmd.Title),
		Type:        cmd.Type,
		Description: cmd.Description,
		Tags:        cmd.Tags,
		URL:         cmd.URL,
		Category:    cmd.Category,
		Stage:       cmd.Stage,
		IsPublished: cmd.IsPublished,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}

	tx := &saga{objects: s.storage, logger: s.logger}

	if cmd.PDF != nil {
		key := fmt.Sprintf("pdfs/%s.pdf", s.settings.NewID())
		if err := tx.put(ctx, s.settings.FileBucket, key, cmd.PDF.Data, uploads.TypePDF); err != nil {
			return nil, fmt.Errorf("upload pdf: %w", err)
		}
		r.FilePath = &key

		if pages, err := uploads.PageCount(cmd.PDF.Data); err != nil {
			s.logger.Warn("pdf page count unavailable", "key", key, "error", err)
		} else {
			r.PageCount = &pages
		}
	}

	if cmd.Cover != nil {
		key := fmt.Sprintf("covers/%s.%s", s.settings.NewID(), uploads.Extension(cmd.Cover.ContentType))
		if err := tx.put(ctx, s.settings.CoverBucket, key, cmd.Cover.Data, cmd.Cover.ContentType); err != nil {
			tx.compensate(ctx)
			return nil, fmt.Errorf("upload cover: %w", err)
		}
		r.CoverPath = &key

		if w, h, err := uploads.ImageSize(cmd.Cover.Data); err != nil {
			s.logger.Warn("cover dimensions unavailable", "key", key, "error", err)
		} else {
			s.logger.Debug("cover stored", "key", key, "width", w, "height", h)
		}
	}

	created, err := s.repo.Insert(ctx, r)
	if err != nil {
		tx.compensate(ctx)
		return nil, err
	}

	s.logger.Info("resource created",
		"slug", created.Slug,
		"type", created.Type,
		"has_pdf", created.FilePath != nil,
		"has_cover", created.CoverPath != nil,
	)

	decorated := s.withURL(*created)
	return &decorated, nil
}

func createMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Missing title, type, or description"
	case "oneof":
		return "type must be one of Guide, Template, Article, Video"
	}
	return ""
}

func (s *service) withURL(r Resource) Resource {
	if r.CoverPath != nil {
		u := s.storage.PublicURL(s.settings.CoverBucket, *r.CoverPath)
		r.CoverURL = &u
	}
	if r.FilePath != nil {
		u := s.storage.PublicURL(s.settings.FileBucket, *r.FilePath)
		r.FileURL = &u
	}
	return r
}

func (s *service) withURLs(items []Resource) []Resource {
	out := make([]Resource, len(items))
	for i, r := range items {
		out[i] = s.withURL(r)
	}
	return out
}
