package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the PostgreSQL fallback record for a Redis-backed session.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
