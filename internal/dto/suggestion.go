package dto

import "encoding/json"

type MovementSuggestionRequest struct {
	Transcription string `json:"transcription" validate:"required"`
}

type TagSuggestionRequest struct {
	Descripcion string   `json:"descripcion" validate:"required"`
	Monto       *float64 `json:"monto" validate:"required"`
}

// MovementSuggestion is never persisted. Type and SuggestedTag are always set.
type MovementSuggestion struct {
	Amount       json.Number `json:"amount"`
	Type         string      `json:"type"`
	SuggestedTag string      `json:"suggested_tag"`
	Description  string      `json:"description"`
}

type MovementSuggestionResponse struct {
	MovementSuggestion *MovementSuggestion `json:"movement_suggestion"`
}

type TagSuggestionResponse struct {
	Sugerencia string `json:"sugerencia"`
}
