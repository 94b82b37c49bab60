package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HammerMeetNail/secretpages/internal/models"
)

const friendsCacheTTL = 5 * time.Minute

var (
	ErrFriendshipNotFound     = errors.New("friendship not found")
	ErrAlreadyFriends         = errors.New("you are already friends with this user")
	ErrRequestAlreadyPending  = errors.New("friend request already pending")
	ErrCannotFriendSelf       = errors.New("cannot send friend request to yourself")
	ErrFriendshipNotPending   = errors.New("friendship is not pending")
	ErrNotFriendshipRecipient = errors.New("only the recipient can accept a friend request")
	ErrNotFriends             = errors.New("you are not friends with this user")
)

// FriendService owns the friend-request lifecycle: a pending edge created
// by the requester, accepted only by the recipient, deleted by either
// party. One edge exists per unordered pair.
type FriendService struct {
	db    DBConn
	cache RedisConn
}

func NewFriendService(db DBConn, cache RedisConn) *FriendService {
	return &FriendService{db: db, cache: cache}
}

// SendRequest resolves the recipient by email and creates a pending edge.
// The existence check is advisory; a concurrent duplicate loses on the
// canonical-pair unique index and is reported as already pending.
func (s *FriendService) SendRequest(ctx context.Context, requesterID uuid.UUID, email string) (*models.Friendship, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var recipientID uuid.UUID
	err := s.db.QueryRow(ctx, "SELECT id FROM users WHERE LOWER(email) = $1", email).Scan(&recipientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolving recipient email: %w", err)
	}

	if recipientID == requesterID {
		return nil, ErrCannotFriendSelf
	}

	// Check if an edge already exists in either direction
	var status models.FriendshipStatus
	err = s.db.QueryRow(ctx,
		`SELECT status FROM friendships
		 WHERE (user_id = $1 AND friend_id = $2)
		    OR (user_id = $2 AND friend_id = $1)`,
		requesterID, recipientID,
	).Scan(&status)
	if err == nil {
		if status == models.FriendshipStatusAccepted {
			return nil, ErrAlreadyFriends
		}
		return nil, ErrRequestAlreadyPending
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("checking friendship existence: %w", err)
	}

	friendship := &models.Friendship{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO friendships (user_id, friend_id, status)
		 VALUES ($1, $2, 'pending')
		 RETURNING id, user_id, friend_id, status, created_at, updated_at`,
		requesterID, recipientID,
	).Scan(&friendship.ID, &friendship.UserID, &friendship.FriendID, &friendship.Status, &friendship.CreatedAt, &friendship.UpdatedAt)
	if isUniqueViolation(err) {
		// Lost the check-then-insert race against a concurrent request
		// for the same pair.
		return nil, ErrRequestAlreadyPending
	}
	if err != nil {
		return nil, fmt.Errorf("creating friendship: %w", err)
	}

	s.invalidateFriendCache(ctx, requesterID, recipientID)
	return friendship, nil
}

// AcceptRequest transitions a pending edge to accepted. Only the
// recipient may accept.
func (s *FriendService) AcceptRequest(ctx context.Context, userID, friendshipID uuid.UUID) (*models.Friendship, error) {
	friendship, err := s.getByID(ctx, friendshipID)
	if err != nil {
		return nil, err
	}

	if friendship.FriendID != userID {
		return nil, ErrNotFriendshipRecipient
	}

	if friendship.Status != models.FriendshipStatusPending {
		return nil, ErrFriendshipNotPending
	}

	_, err = s.db.Exec(ctx,
		"UPDATE friendships SET status = 'accepted', updated_at = now() WHERE id = $1",
		friendshipID,
	)
	if err != nil {
		return nil, fmt.Errorf("accepting friendship: %w", err)
	}

	friendship.Status = models.FriendshipStatusAccepted
	s.invalidateFriendCache(ctx, friendship.UserID, friendship.FriendID)
	return friendship, nil
}

// Decline deletes the edge when userID is either endpoint, regardless of
// status. The same operation covers a recipient declining, a requester
// canceling, and either party unfriending.
func (s *FriendService) Decline(ctx context.Context, userID, friendshipID uuid.UUID) error {
	friendship, err := s.getByID(ctx, friendshipID)
	if err != nil {
		return err
	}

	// Outsiders get not-found rather than a hint that the edge exists.
	if friendship.UserID != userID && friendship.FriendID != userID {
		return ErrFriendshipNotFound
	}

	_, err = s.db.Exec(ctx, "DELETE FROM friendships WHERE id = $1", friendshipID)
	if err != nil {
		return fmt.Errorf("deleting friendship: %w", err)
	}

	s.invalidateFriendCache(ctx, friendship.UserID, friendship.FriendID)
	return nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error) {
	cacheKey := friendsCacheKey(userID)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var friends []models.FriendWithUser
		if err := json.Unmarshal([]byte(cached), &friends); err == nil {
			return friends, nil
		}
	}

	rows, err := s.db.Query(ctx,
		`SELECT f.id, f.user_id, f.friend_id, f.status, f.created_at, f.updated_at,
		        CASE WHEN f.user_id = $1 THEN u2.email ELSE u1.email END,
		        CASE WHEN f.user_id = $1 THEN u2.display_name ELSE u1.display_name END
		 FROM friendships f
		 JOIN users u1 ON f.user_id = u1.id
		 JOIN users u2 ON f.friend_id = u2.id
		 WHERE (f.user_id = $1 OR f.friend_id = $1) AND f.status = 'accepted'
		 ORDER BY CASE WHEN f.user_id = $1 THEN u2.email ELSE u1.email END`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	defer rows.Close()

	var friends []models.FriendWithUser
	for rows.Next() {
		var f models.FriendWithUser
		if err := rows.Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.UpdatedAt, &f.FriendEmail, &f.FriendDisplayName); err != nil {
			return nil, fmt.Errorf("scanning friend: %w", err)
		}
		friends = append(friends, f)
	}

	if friends == nil {
		friends = []models.FriendWithUser{}
	}

	if data, err := json.Marshal(friends); err == nil {
		_ = s.cache.Set(ctx, cacheKey, string(data), friendsCacheTTL)
	}

	return friends, nil
}

func (s *FriendService) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequest, error) {
	rows, err := s.db.Query(ctx,
		`SELECT f.id, f.user_id, f.friend_id, f.status, f.created_at, f.updated_at,
		        u.email, u.display_name
		 FROM friendships f
		 JOIN users u ON f.user_id = u.id
		 WHERE f.friend_id = $1 AND f.status = 'pending'
		 ORDER BY f.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending requests: %w", err)
	}
	defer rows.Close()

	var requests []models.FriendRequest
	for rows.Next() {
		var r models.FriendRequest
		if err := rows.Scan(&r.ID, &r.UserID, &r.FriendID, &r.Status, &r.CreatedAt, &r.UpdatedAt, &r.RequesterEmail, &r.RequesterDisplayName); err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}
		requests = append(requests, r)
	}

	if requests == nil {
		requests = []models.FriendRequest{}
	}

	return requests, nil
}

func (s *FriendService) ListSentRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error) {
	rows, err := s.db.Query(ctx,
		`SELECT f.id, f.user_id, f.friend_id, f.status, f.created_at, f.updated_at,
		        u.email, u.display_name
		 FROM friendships f
		 JOIN users u ON f.friend_id = u.id
		 WHERE f.user_id = $1 AND f.status = 'pending'
		 ORDER BY f.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sent requests: %w", err)
	}
	defer rows.Close()

	var requests []models.FriendWithUser
	for rows.Next() {
		var f models.FriendWithUser
		if err := rows.Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.UpdatedAt, &f.FriendEmail, &f.FriendDisplayName); err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}
		requests = append(requests, f)
	}

	if requests == nil {
		requests = []models.FriendWithUser{}
	}

	return requests, nil
}

// IsFriend reports whether an accepted edge connects the unordered pair.
// Always answered from the database; the cache only serves list views.
func (s *FriendService) IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error) {
	var isFriend bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friendships
			WHERE ((user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1))
			  AND status = 'accepted'
		)`,
		userID, otherUserID,
	).Scan(&isFriend)
	if err != nil {
		return false, fmt.Errorf("checking friendship: %w", err)
	}
	return isFriend, nil
}

func (s *FriendService) getByID(ctx context.Context, friendshipID uuid.UUID) (*models.Friendship, error) {
	friendship := &models.Friendship{}
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, friend_id, status, created_at, updated_at
		 FROM friendships WHERE id = $1`,
		friendshipID,
	).Scan(&friendship.ID, &friendship.UserID, &friendship.FriendID, &friendship.Status, &friendship.CreatedAt, &friendship.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFriendshipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting friendship: %w", err)
	}
	return friendship, nil
}

func (s *FriendService) invalidateFriendCache(ctx context.Context, userIDs ...uuid.UUID) {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, friendsCacheKey(id))
	}
	// Cache entries expire on their own; a failed invalidation is not
	// worth failing the mutation over.
	_ = s.cache.Del(ctx, keys...)
}

func friendsCacheKey(userID uuid.UUID) string {
	return "friends:" + userID.String()
}
