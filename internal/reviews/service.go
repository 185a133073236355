package reviews

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/testersconnect/site/pkg/validation"
)

const (
	msgIDRequired = "resource_id is required"
	msgInvalidID  = "Invalid resource_id"
	msgRequired   = "resource_id, name, rating, comment are required"
	msgRating     = "rating must be 1-5"
)

type service struct {
	repo      Repository
	validator *validation.Validator
	logger    *slog.Logger
}

func New(repo Repository, logger *slog.Logger) System {
	return &service{
		repo:      repo,
		validator: validation.NewValidator(),
		logger:    logger.With("system", "reviews"),
	}
}

// parseResourceID checks the shape before any query is issued.
func parseResourceID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, validation.New(msgIDRequired)
	}
	if !validation.UUIDShape.MatchString(raw) {
		return uuid.Nil, validation.New(msgInvalidID)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, validation.New(msgInvalidID)
	}
	return id, nil
}

func (s *service) List(ctx context.Context, resourceID string) ([]Review, error) {
	id, err := parseResourceID(strings.TrimSpace(resourceID))
	if err != nil {
		return nil, err
	}
	return s.repo.ListPublished(ctx, id)
}

func (s *service) Create(ctx context.Context, cmd CreateCommand) (*Review, error) {
	cmd.ResourceID = strings.TrimSpace(cmd.ResourceID)
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Comment = strings.TrimSpace(cmd.Comment)

	if cmd.ResourceID == "" || cmd.Name == "" || cmd.Comment == "" ||
		cmd.Rating == nil || math.IsNaN(*cmd.Rating) || math.IsInf(*cmd.Rating, 0) {
		return nil, validation.New(msgRequired)
	}
	if err := s.validator.Check(cmd, createMessage); err != nil {
		return nil, err
	}

	rating := *cmd.Rating
	if rating != math.Trunc(rating) {
		return nil, validation.New("rating must be a whole number")
	}

	id, err := uuid.Parse(cmd.ResourceID)
	if err != nil {
		return nil, validation.New(msgInvalidID)
	}

	r, err := s.repo.Insert(ctx, id, cmd.Name, int(rating), cmd.Comment)
	if err != nil {
		return nil, err
	}

	s.logger.Info("review created", "resource_id", r.ResourceID, "rating", r.Rating)
	return r, nil
}

func createMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "resource_id":
		return msgInvalidID
	case "rating":
		return msgRating
	case "name":
		return "name is too long"
	case "comment":
		return "comment is too long"
	}
	return ""
}
