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

type TagService interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTagRequest) (*dto.TagResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]dto.TagResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type TagHandler struct {
	tagService TagService
	logger     *zap.Logger
}

func NewTagHandler(tagService TagService, logger *zap.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// ListTags godoc
// @Summary List tags
// @Description The user's tags in creation order
// @Tags tags
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.TagResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/tags [get]
func (h *TagHandler) ListTags(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	tags, err := h.tagService.List(c.UserContext(), userID)
	if err != nil {
		h.logger.Error("Failed to list tags", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ocurrió un error al listar las etiquetas.",
		})
	}

	return c.JSON(tags)
}

// CreateTag godoc
// @Summary Create tag
// @Tags tags
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateTagRequest true "Tag"
// @Success 201 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /api/v1/tags [post]
func (h *TagHandler) CreateTag(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.CreateTagRequest
	if msgs := bindAndValidate(c, &req); msgs != nil {
		return validationFailed(c, msgs)
	}

	tag, err := h.tagService.Create(c.UserContext(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrTagNameRequired) {
			return validationFailed(c, map[string][]string{
				"name_tag": {"The name_tag field is required."},
			})
		}
		if errors.Is(err, service.ErrTagExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "La etiqueta ya existe para este usuario.",
			})
		}
		h.logger.Error("Failed to create tag", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Ocurrió un error al crear la etiqueta.",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Etiqueta creada exitosamente.",
		"tag":     tag,
	})
}

// DeleteTag godoc
// @Summary Delete tag
// @Description Movements tagged with it are kept and lose the tag
// @Tags tags
// @Security Bearer
// @Param id path string true "Tag ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Tag not found",
		})
	}

	if err := h.tagService.Delete(c.UserContext(), userID, id); err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Tag not found",
			})
		}
		h.logger.Error("Failed to delete tag", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ocurrió un error al eliminar la etiqueta.",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
