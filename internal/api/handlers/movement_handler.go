package handlers

import (
	"context"
	"errors"

	"billetera-ia/internal/dto"
	"billetera-ia/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovementService interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateMovementRequest) (*dto.MovementResponse, error)
	List(ctx context.Context, userID uuid.UUID, page int) (*dto.MovementPage, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type MovementHandler struct {
	movementService MovementService
	logger          *zap.Logger
}

func NewMovementHandler(movementService MovementService, logger *zap.Logger) *MovementHandler {
	return &MovementHandler{
		movementService: movementService,
		logger:          logger,
	}
}

// ListMovements godoc
// @Summary List movements
// @Description Paginated list of the user's movements, newest first, 10 per page
// @Tags movements
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.MovementPage
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/movements [get]
func (h *MovementHandler) ListMovements(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	page, err := h.movementService.List(c.UserContext(), userID, c.QueryInt("page", 1))
	if err != nil {
		h.logger.Error("Failed to list movements", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "An error occurred while fetching movements.",
			"message": err.Error(),
		})
	}

	if len(page.Data) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No movements found",
		})
	}

	return c.JSON(page)
}

// CreateMovement godoc
// @Summary Create movement
// @Description Store an income or expense, optionally tagged with one of the user's tags
// @Tags movements
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateMovementRequest true "Movement"
// @Success 201 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /api/v1/movements [post]
func (h *MovementHandler) CreateMovement(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.CreateMovementRequest
	if msgs := bindAndValidate(c, &req); msgs != nil {
		return validationFailed(c, msgs)
	}

	movement, err := h.movementService.Create(c.UserContext(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Tag not found",
			})
		}
		h.logger.Error("Failed to create movement", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "An error occurred while creating the movement.",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Movement created successfully",
		"movement": movement,
	})
}

// DeleteMovement godoc
// @Summary Delete movement
// @Tags movements
// @Security Bearer
// @Param id path string true "Movement ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/movements/{id} [delete]
func (h *MovementHandler) DeleteMovement(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Movement not found",
		})
	}

	if err := h.movementService.Delete(c.UserContext(), userID, id); err != nil {
		if errors.Is(err, service.ErrMovementNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Movement not found",
			})
		}
		h.logger.Error("Failed to delete movement", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "An error occurred while deleting the movement.",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
