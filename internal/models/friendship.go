package models

import (
	"time"

	"github.com/google/uuid"
)

type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
)

// Friendship is a directed edge from the requester (UserID) to the
// recipient (FriendID). At most one edge exists per unordered pair,
// enforced by a canonical-pair unique index in the database.
type Friendship struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	FriendID  uuid.UUID        `json:"friend_id"`
	Status    FriendshipStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type FriendWithUser struct {
	Friendship
	FriendEmail       string `json:"friend_email"`
	FriendDisplayName string `json:"friend_display_name"`
}

type FriendRequest struct {
	Friendship
	RequesterEmail       string `json:"requester_email"`
	RequesterDisplayName string `json:"requester_display_name"`
}
