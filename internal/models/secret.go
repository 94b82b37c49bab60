package models

import (
	"time"

	"github.com/google/uuid"
)

// Secret is a user's single private message. The user_id column carries a
// unique constraint, so at most one row exists per owner.
type Secret struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
