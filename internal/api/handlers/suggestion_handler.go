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

type SuggestionService interface {
	SuggestMovement(ctx context.Context, userID uuid.UUID, transcription string) (*dto.MovementSuggestion, error)
	SuggestTag(ctx context.Context, userID uuid.UUID, description string, amount float64) (string, error)
}

type SuggestionHandler struct {
	suggestionService SuggestionService
	logger            *zap.Logger
}

func NewSuggestionHandler(suggestionService SuggestionService, logger *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionService: suggestionService,
		logger:            logger,
	}
}

// SuggestMovement godoc
// @Summary Suggest a movement from a voice transcription
// @Description Returns proposed amount, type, tag and description. Nothing is stored.
// @Tags suggestions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.MovementSuggestionRequest true "Transcription"
// @Success 200 {object} dto.MovementSuggestionResponse
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /api/v1/movements/suggest [post]
func (h *SuggestionHandler) SuggestMovement(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.MovementSuggestionRequest
	if msgs := bindAndValidate(c, &req); msgs != nil {
		return validationFailed(c, msgs)
	}

	suggestion, err := h.suggestionService.SuggestMovement(c.UserContext(), userID, req.Transcription)
	if err != nil {
		return h.suggestionFailed(c, "No se pudo generar la sugerencia de movimiento.", err)
	}

	return c.JSON(dto.MovementSuggestionResponse{MovementSuggestion: suggestion})
}

// SuggestTag godoc
// @Summary Suggest a tag for a movement
// @Description Returns an existing tag name or a new short one. Nothing is stored.
// @Tags suggestions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.TagSuggestionRequest true "Description and amount"
// @Success 200 {object} dto.TagSuggestionResponse
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /api/v1/tags/suggest [post]
func (h *SuggestionHandler) SuggestTag(c *fiber.Ctx) error {
	userID, ok := getUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.TagSuggestionRequest
	if msgs := bindAndValidate(c, &req); msgs != nil {
		return validationFailed(c, msgs)
	}

	tag, err := h.suggestionService.SuggestTag(c.UserContext(), userID, req.Descripcion, *req.Monto)
	if err != nil {
		return h.suggestionFailed(c, "Error al sugerir etiqueta.", err)
	}

	return c.JSON(dto.TagSuggestionResponse{Sugerencia: tag})
}

func (h *SuggestionHandler) suggestionFailed(c *fiber.Ctx, msg string, err error) error {
	body := fiber.Map{
		"error":   msg,
		"message": err.Error(),
	}

	var sErr *service.SuggestionError
	if errors.As(err, &sErr) && sErr.Raw != "" {
		body["raw"] = sErr.Raw
	}

	h.logger.Error("Suggestion failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
