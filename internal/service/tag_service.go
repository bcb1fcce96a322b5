package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"billetera-ia/internal/dto"
	"billetera-ia/internal/events"
	"billetera-ia/internal/models"
	"billetera-ia/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTagExists       = errors.New("tag already exists")
	ErrTagNotFound     = errors.New("tag not found")
	ErrTagNameRequired = errors.New("tag name is required")
)

type TagStore interface {
	Create(ctx context.Context, tag *models.Tag) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Tag, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Tag, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type TagService struct {
	tagRepo   TagStore
	publisher events.Publisher
	logger    *zap.Logger
}

func NewTagService(tagRepo TagStore, publisher events.Publisher, logger *zap.Logger) *TagService {
	return &TagService{
		tagRepo:   tagRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Create stores a new tag for the user. Uniqueness of the name is left to the
// store; a duplicate yields ErrTagExists. A name that is blank after trimming
// yields ErrTagNameRequired.
func (s *TagService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	name := strings.TrimSpace(sanitizeUTF8(req.NameTag))
	if name == "" {
		return nil, ErrTagNameRequired
	}

	tag := &models.Tag{
		ID:        uuid.New(),
		Name:      name,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTagExists
		}
		return nil, err
	}

	if err := s.publisher.Publish(events.TagCreated, toTagResponse(tag)); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("event", events.TagCreated), zap.Error(err))
	}

	resp := toTagResponse(tag)
	return &resp, nil
}

func (s *TagService) List(ctx context.Context, userID uuid.UUID) ([]dto.TagResponse, error) {
	tags, err := s.tagRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.TagResponse, 0, len(tags))
	for _, t := range tags {
		resp = append(resp, toTagResponse(t))
	}
	return resp, nil
}

func (s *TagService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.tagRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	if err := s.publisher.Publish(events.TagDeleted, map[string]string{"id": id.String()}); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("event", events.TagDeleted), zap.Error(err))
	}
	return nil
}

func toTagResponse(t *models.Tag) dto.TagResponse {
	return dto.TagResponse{
		ID:        t.ID.String(),
		NameTag:   t.Name,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}
