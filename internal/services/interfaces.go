package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/secretpages/internal/models"
)

// UserServiceInterface defines the contract for user operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthServiceInterface defines the contract for authentication operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	GenerateSessionToken() (token string, hash string, err error)
	CreateSession(ctx context.Context, userID uuid.UUID) (token string, err error)
	ValidateSession(ctx context.Context, token string) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteAllUserSessions(ctx context.Context, userID uuid.UUID) error
}

// FriendServiceInterface defines the contract for friendship operations.
type FriendServiceInterface interface {
	SendRequest(ctx context.Context, requesterID uuid.UUID, email string) (*models.Friendship, error)
	AcceptRequest(ctx context.Context, userID, friendshipID uuid.UUID) (*models.Friendship, error)
	Decline(ctx context.Context, userID, friendshipID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error)
	ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequest, error)
	ListSentRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error)
	IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
}

// FriendChecker is a lightweight interface for friendship checks used by
// the secret access guard.
type FriendChecker interface {
	IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
}

// SecretServiceInterface defines the contract for secret operations.
type SecretServiceInterface interface {
	Upsert(ctx context.Context, ownerID uuid.UUID, message string) (*models.Secret, error)
	CanView(ctx context.Context, viewerID, ownerID uuid.UUID) (bool, error)
	GetSecret(ctx context.Context, viewerID, ownerID uuid.UUID) (*models.Secret, error)
	GetOwn(ctx context.Context, ownerID uuid.UUID) (*models.Secret, error)
}

// AccountServiceInterface defines the contract for account lifecycle
// operations.
type AccountServiceInterface interface {
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}
