package service

import (
	"context"
	"fmt"
	"strings"

	"billetera-ia/internal/dto"
	"billetera-ia/internal/events"
	"billetera-ia/internal/llm"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Failure stages of a suggestion request.
const (
	StageProvider = "provider"
	StageExtract  = "extract"
	StageDecode   = "decode"
)

// SuggestionError reports where a suggestion failed. Raw holds the model
// output when one was received.
type SuggestionError struct {
	Stage string
	Raw   string
	Err   error
}

func (e *SuggestionError) Error() string {
	return fmt.Sprintf("suggestion %s: %v", e.Stage, e.Err)
}

func (e *SuggestionError) Unwrap() error {
	return e.Err
}

// Completer is satisfied by *llm.FallbackClient.
type Completer interface {
	Complete(ctx context.Context, prompt string) (*llm.Completion, error)
}

// TagNameLister reads a user's tag names in creation order.
type TagNameLister interface {
	ListNamesByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type SuggestionService struct {
	tags      TagNameLister
	llm       Completer
	publisher events.Publisher
	logger    *zap.Logger
}

func NewSuggestionService(tags TagNameLister, completer Completer, publisher events.Publisher, logger *zap.Logger) *SuggestionService {
	return &SuggestionService{
		tags:      tags,
		llm:       completer,
		publisher: publisher,
		logger:    logger,
	}
}

// SuggestMovement proposes movement fields for a voice transcription. The
// suggestion is not stored.
func (s *SuggestionService) SuggestMovement(ctx context.Context, userID uuid.UUID, transcription string) (*dto.MovementSuggestion, error) {
	tags, err := s.tags.ListNamesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	completion, err := s.llm.Complete(ctx, BuildMovementPrompt(tags, transcription))
	if err != nil {
		return nil, &SuggestionError{Stage: StageProvider, Err: err}
	}

	object, ok := llm.ExtractJSONObject(completion.Content)
	if !ok {
		s.logger.Warn("No JSON object in model output",
			zap.String("model", completion.Model),
			zap.String("raw", completion.Content),
		)
		return nil, &SuggestionError{Stage: StageExtract, Raw: completion.Content, Err: llm.ErrNoJSONObject}
	}

	suggestion, err := NormalizeMovementSuggestion(object)
	if err != nil {
		s.logger.Warn("Model output did not decode",
			zap.String("model", completion.Model),
			zap.String("raw", completion.Content),
			zap.Error(err),
		)
		return nil, &SuggestionError{Stage: StageDecode, Raw: completion.Content, Err: err}
	}

	s.publish(userID, "movement", completion.Model)
	return suggestion, nil
}

// SuggestTag proposes a tag name for a description and amount. The model
// answer is returned trimmed, without further parsing.
func (s *SuggestionService) SuggestTag(ctx context.Context, userID uuid.UUID, description string, amount float64) (string, error) {
	tags, err := s.tags.ListNamesByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("list tags: %w", err)
	}

	completion, err := s.llm.Complete(ctx, BuildTagPrompt(tags, description, amount))
	if err != nil {
		return "", &SuggestionError{Stage: StageProvider, Err: err}
	}

	s.publish(userID, "tag", completion.Model)
	return strings.TrimSpace(completion.Content), nil
}

func (s *SuggestionService) publish(userID uuid.UUID, kind, model string) {
	payload := map[string]string{
		"user_id": userID.String(),
		"kind":    kind,
		"model":   model,
	}
	if err := s.publisher.Publish(events.SuggestionGenerated, payload); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("event", events.SuggestionGenerated),
			zap.Error(err),
		)
	}
}
