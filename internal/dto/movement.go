package dto

type CreateMovementRequest struct {
	Type        string   `json:"type" validate:"required,oneof=income expense"`
	Amount      *float64 `json:"amount" validate:"required,gte=0,lte=999999999999.99"`
	Description *string  `json:"description" validate:"omitempty,max=255"`
	TagID       *string  `json:"tag_id" validate:"omitempty,uuid"`
}

type MovementResponse struct {
	ID          string  `json:"id"`
	Amount      string  `json:"amount"`
	Description *string `json:"description"`
	Type        string  `json:"type"`
	TagID       *string `json:"tag_id"`
	CreatedAt   string  `json:"created_at"`
}

type MovementPage struct {
	Data        []MovementResponse `json:"data"`
	CurrentPage int                `json:"current_page"`
	PerPage     int                `json:"per_page"`
	Total       int64              `json:"total"`
	LastPage    int                `json:"last_page"`
}
