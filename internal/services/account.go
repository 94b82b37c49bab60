package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/secretpages/internal/logging"
)

// AccountService handles account deletion: the user row goes first and the
// storage cascade removes the dependent secret and friendship edges.
// Session and cache cleanup afterwards is best effort; stale entries
// expire on their own and are never worth rolling the deletion back for.
type AccountService struct {
	db    DBConn
	cache RedisConn
}

func NewAccountService(db DBConn, cache RedisConn) *AccountService {
	return &AccountService{db: db, cache: cache}
}

func (s *AccountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	// Collect what the cascade is about to destroy: session token hashes
	// for Redis cleanup and friend ids whose cached lists go stale.
	tokenHashes, err := s.sessionTokenHashes(ctx, userID)
	if err != nil {
		logging.Warn("Could not collect sessions before account deletion", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
	}
	friendIDs, err := s.friendIDs(ctx, userID)
	if err != nil {
		logging.Warn("Could not collect friendships before account deletion", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
	}

	result, err := s.db.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	keys := []string{friendsCacheKey(userID)}
	for _, hash := range tokenHashes {
		keys = append(keys, sessionKeyPrefix+hash)
	}
	for _, id := range friendIDs {
		keys = append(keys, friendsCacheKey(id))
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		logging.Warn("Session/cache cleanup failed after account deletion", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
	}

	return nil
}

func (s *AccountService) sessionTokenHashes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := s.db.Query(ctx, "SELECT token_hash FROM sessions WHERE user_id = $1", userID)
	if err != nil {
		return nil, fmt.Errorf("querying user sessions: %w", err)
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, fmt.Errorf("scanning token hash: %w", err)
		}
		hashes = append(hashes, hash)
	}
	return hashes, rows.Err()
}

func (s *AccountService) friendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx,
		`SELECT CASE WHEN user_id = $1 THEN friend_id ELSE user_id END
		 FROM friendships
		 WHERE user_id = $1 OR friend_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying friendships: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning friend id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
