package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/secretpages/internal/models"
)

type mockUserService struct {
	CreateFunc     func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockAuthService struct {
	HashPasswordFunc          func(password string) (string, error)
	VerifyPasswordFunc        func(hash, password string) bool
	GenerateSessionTokenFunc  func() (string, string, error)
	CreateSessionFunc         func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSessionFunc       func(ctx context.Context, token string) (*models.User, error)
	DeleteSessionFunc         func(ctx context.Context, token string) error
	DeleteAllUserSessionsFunc func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(hash, password)
	}
	return hash == "hashed_"+password
}

func (m *mockAuthService) GenerateSessionToken() (string, string, error) {
	if m.GenerateSessionTokenFunc != nil {
		return m.GenerateSessionTokenFunc()
	}
	return "token", "hash", nil
}

func (m *mockAuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, userID)
	}
	return "test_session_token", nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockAuthService) DeleteSession(ctx context.Context, token string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthService) DeleteAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteAllUserSessionsFunc != nil {
		return m.DeleteAllUserSessionsFunc(ctx, userID)
	}
	return nil
}

type mockFriendService struct {
	SendRequestFunc         func(ctx context.Context, requesterID uuid.UUID, email string) (*models.Friendship, error)
	AcceptRequestFunc       func(ctx context.Context, userID, friendshipID uuid.UUID) (*models.Friendship, error)
	DeclineFunc             func(ctx context.Context, userID, friendshipID uuid.UUID) error
	ListFriendsFunc         func(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error)
	ListPendingRequestsFunc func(ctx context.Context, userID uuid.UUID) ([]models.FriendRequest, error)
	ListSentRequestsFunc    func(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error)
	IsFriendFunc            func(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
}

func (m *mockFriendService) SendRequest(ctx context.Context, requesterID uuid.UUID, email string) (*models.Friendship, error) {
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, requesterID, email)
	}
	return &models.Friendship{}, nil
}

func (m *mockFriendService) AcceptRequest(ctx context.Context, userID, friendshipID uuid.UUID) (*models.Friendship, error) {
	if m.AcceptRequestFunc != nil {
		return m.AcceptRequestFunc(ctx, userID, friendshipID)
	}
	return &models.Friendship{}, nil
}

func (m *mockFriendService) Decline(ctx context.Context, userID, friendshipID uuid.UUID) error {
	if m.DeclineFunc != nil {
		return m.DeclineFunc(ctx, userID, friendshipID)
	}
	return nil
}

func (m *mockFriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error) {
	if m.ListFriendsFunc != nil {
		return m.ListFriendsFunc(ctx, userID)
	}
	return []models.FriendWithUser{}, nil
}

func (m *mockFriendService) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequest, error) {
	if m.ListPendingRequestsFunc != nil {
		return m.ListPendingRequestsFunc(ctx, userID)
	}
	return []models.FriendRequest{}, nil
}

func (m *mockFriendService) ListSentRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error) {
	if m.ListSentRequestsFunc != nil {
		return m.ListSentRequestsFunc(ctx, userID)
	}
	return []models.FriendWithUser{}, nil
}

func (m *mockFriendService) IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error) {
	if m.IsFriendFunc != nil {
		return m.IsFriendFunc(ctx, userID, otherUserID)
	}
	return false, nil
}

type mockSecretService struct {
	UpsertFunc    func(ctx context.Context, ownerID uuid.UUID, message string) (*models.Secret, error)
	CanViewFunc   func(ctx context.Context, viewerID, ownerID uuid.UUID) (bool, error)
	GetSecretFunc func(ctx context.Context, viewerID, ownerID uuid.UUID) (*models.Secret, error)
	GetOwnFunc    func(ctx context.Context, ownerID uuid.UUID) (*models.Secret, error)
}

func (m *mockSecretService) Upsert(ctx context.Context, ownerID uuid.UUID, message string) (*models.Secret, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, ownerID, message)
	}
	return &models.Secret{}, nil
}

func (m *mockSecretService) CanView(ctx context.Context, viewerID, ownerID uuid.UUID) (bool, error) {
	if m.CanViewFunc != nil {
		return m.CanViewFunc(ctx, viewerID, ownerID)
	}
	return false, nil
}

func (m *mockSecretService) GetSecret(ctx context.Context, viewerID, ownerID uuid.UUID) (*models.Secret, error) {
	if m.GetSecretFunc != nil {
		return m.GetSecretFunc(ctx, viewerID, ownerID)
	}
	return nil, nil
}

func (m *mockSecretService) GetOwn(ctx context.Context, ownerID uuid.UUID) (*models.Secret, error) {
	if m.GetOwnFunc != nil {
		return m.GetOwnFunc(ctx, ownerID)
	}
	return nil, nil
}

type mockAccountService struct {
	DeleteAccountFunc func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockAccountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteAccountFunc != nil {
		return m.DeleteAccountFunc(ctx, userID)
	}
	return nil
}
