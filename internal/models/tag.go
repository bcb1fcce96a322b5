package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a user-scoped category label, unique per (UserID, Name).
type Tag struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name_tag"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
