package service

import (
	"context"
	"errors"
	"time"

	"billetera-ia/internal/dto"
	"billetera-ia/internal/events"
	"billetera-ia/internal/models"
	"billetera-ia/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MovementsPerPage is the fixed page size of the movement listing.
const MovementsPerPage = 10

var ErrMovementNotFound = errors.New("movement not found")

type MovementStore interface {
	Create(ctx context.Context, m *models.Movement) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Movement, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// TagLookup resolves a tag owned by a user.
type TagLookup interface {
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Tag, error)
}

type MovementService struct {
	movementRepo MovementStore
	tagRepo      TagLookup
	publisher    events.Publisher
	logger       *zap.Logger
}

func NewMovementService(movementRepo MovementStore, tagRepo TagLookup, publisher events.Publisher, logger *zap.Logger) *MovementService {
	return &MovementService{
		movementRepo: movementRepo,
		tagRepo:      tagRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// Create stores a movement. A tag_id must reference one of the user's own
// tags, otherwise ErrTagNotFound is returned.
func (s *MovementService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if req.Amount == nil {
		return nil, errors.New("amount is required")
	}

	now := time.Now()
	m := &models.Movement{
		ID:        uuid.New(),
		Amount:    decimal.NewFromFloat(*req.Amount).Round(2),
		Type:      models.MovementType(req.Type),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !m.Type.Valid() {
		m.Type = models.MovementExpense
	}

	if req.Description != nil {
		d := sanitizeUTF8(*req.Description)
		m.Description = &d
	}

	if req.TagID != nil && *req.TagID != "" {
		tagID, err := uuid.Parse(*req.TagID)
		if err != nil {
			return nil, ErrTagNotFound
		}
		if _, err := s.tagRepo.GetByID(ctx, userID, tagID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrTagNotFound
			}
			return nil, err
		}
		m.TagID = &tagID
	}

	if err := s.movementRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	resp := toMovementResponse(m)
	if err := s.publisher.Publish(events.MovementCreated, resp); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("event", events.MovementCreated), zap.Error(err))
	}
	return &resp, nil
}

// List returns one page of the user's movements, newest first. Pages start
// at 1; anything lower is treated as the first page.
func (s *MovementService) List(ctx context.Context, userID uuid.UUID, page int) (*dto.MovementPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.movementRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.ListByUser(ctx, userID, MovementsPerPage, (page-1)*MovementsPerPage)
	if err != nil {
		return nil, err
	}

	data := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		data = append(data, toMovementResponse(m))
	}

	lastPage := int((total + MovementsPerPage - 1) / MovementsPerPage)
	if lastPage < 1 {
		lastPage = 1
	}

	return &dto.MovementPage{
		Data:        data,
		CurrentPage: page,
		PerPage:     MovementsPerPage,
		Total:       total,
		LastPage:    lastPage,
	}, nil
}

func (s *MovementService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.movementRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMovementNotFound
		}
		return err
	}

	if err := s.publisher.Publish(events.MovementDeleted, map[string]string{"id": id.String()}); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("event", events.MovementDeleted), zap.Error(err))
	}
	return nil
}

func toMovementResponse(m *models.Movement) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:          m.ID.String(),
		Amount:      m.Amount.StringFixed(2),
		Description: m.Description,
		Type:        string(m.Type),
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	if m.TagID != nil {
		id := m.TagID.String()
		resp.TagID = &id
	}
	return resp
}
