package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"billetera-ia/internal/dto"
	"billetera-ia/internal/models"
)

// DefaultSuggestedTag fills suggested_tag when the model leaves it out.
const DefaultSuggestedTag = "Sin etiqueta"

var (
	ErrMissingAmount    = errors.New("suggestion has no amount")
	ErrAmountNotNumeric = errors.New("suggestion amount is not a JSON number")
)

type rawMovementSuggestion struct {
	Amount       json.RawMessage `json:"amount"`
	Type         *string         `json:"type"`
	SuggestedTag *string         `json:"suggested_tag"`
	Description  string          `json:"description"`
}

// NormalizeMovementSuggestion decodes an extracted JSON object into a
// suggestion. amount must be a JSON number and is passed through as written
// by the model; a missing, null or quoted amount is an error. A missing
// type becomes expense and a missing or blank suggested_tag becomes
// DefaultSuggestedTag.
func NormalizeMovementSuggestion(raw string) (*dto.MovementSuggestion, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var in rawMovementSuggestion
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("decode suggestion: %w", err)
	}

	amount, err := amountNumber(in.Amount)
	if err != nil {
		return nil, err
	}

	out := &dto.MovementSuggestion{
		Amount:       amount,
		Type:         normalizeType(in.Type),
		SuggestedTag: DefaultSuggestedTag,
		Description:  in.Description,
	}
	if in.SuggestedTag != nil && strings.TrimSpace(*in.SuggestedTag) != "" {
		out.SuggestedTag = *in.SuggestedTag
	}

	return out, nil
}

func amountNumber(raw json.RawMessage) (json.Number, error) {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 || string(v) == "null" {
		return "", ErrMissingAmount
	}
	// a valid JSON value starting with '-' or a digit is a number
	if v[0] != '-' && (v[0] < '0' || v[0] > '9') {
		return "", fmt.Errorf("%w: %s", ErrAmountNotNumeric, v)
	}
	return json.Number(v), nil
}

func normalizeType(t *string) string {
	if t == nil {
		return string(models.MovementExpense)
	}
	mt := models.MovementType(strings.ToLower(strings.TrimSpace(*t)))
	if !mt.Valid() {
		return string(models.MovementExpense)
	}
	return string(mt)
}
