package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementIncome  MovementType = "income"
	MovementExpense MovementType = "expense"
)

func (t MovementType) Valid() bool {
	return t == MovementIncome || t == MovementExpense
}

// Movement is a single income or expense entry. TagID is cleared, not
// cascaded, when its tag is deleted.
type Movement struct {
	ID          uuid.UUID       `db:"id"`
	Amount      decimal.Decimal `db:"amount"`
	Description *string         `db:"description"`
	Type        MovementType    `db:"type"`
	UserID      uuid.UUID       `db:"user_id"`
	TagID       *uuid.UUID      `db:"tag_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
