package learning

import (
	"context"
	"log/slog"
)

// System lists the published learning catalog.
type System interface {
	Courses(ctx context.Context) ([]Course, error)
	Webinars(ctx context.Context) ([]Webinar, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

func New(repo Repository, logger *slog.Logger) System {
	return &service{repo: repo, logger: logger.With("system", "learning")}
}

func (s *service) Courses(ctx context.Context) ([]Course, error) {
	return s.repo.ListCourses(ctx)
}

func (s *service) Webinars(ctx context.Context) ([]Webinar, error) {
	return s.repo.ListWebinars(ctx)
}
