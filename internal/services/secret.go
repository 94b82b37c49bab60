package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/HammerMeetNail/secretpages/internal/models"
)

var ErrEmptySecret = errors.New("secret message is required")

// SecretService stores each user's single secret and guards who may read
// it: the owner, or anyone the owner holds an accepted friendship with.
type SecretService struct {
	db        DBConn
	friends   FriendChecker
	sanitizer *bluemonday.Policy
}

func NewSecretService(db DBConn, friends FriendChecker) *SecretService {
	return &SecretService{
		db:        db,
		friends:   friends,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Upsert saves the owner's secret, replacing any existing one. Markup is
// stripped before storage since secrets are rendered to other users, but
// the surviving text is stored verbatim: the sanitizer entity-escapes
// punctuation like & and <, so its output is unescaped before storage.
// The unique owner constraint makes concurrent saves collapse into the ON
// CONFLICT update instead of duplicating rows.
func (s *SecretService) Upsert(ctx context.Context, ownerID uuid.UUID, message string) (*models.Secret, error) {
	message = strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(message)))
	if message == "" {
		return nil, ErrEmptySecret
	}

	secret := &models.Secret{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO secrets (user_id, message)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id)
		 DO UPDATE SET message = EXCLUDED.message, updated_at = now()
		 RETURNING id, user_id, message, created_at, updated_at`,
		ownerID, message,
	).Scan(&secret.ID, &secret.UserID, &secret.Message, &secret.CreatedAt, &secret.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("saving secret: %w", err)
	}

	return secret, nil
}

// CanView reports whether viewerID may read ownerID's secret.
func (s *SecretService) CanView(ctx context.Context, viewerID, ownerID uuid.UUID) (bool, error) {
	if viewerID == ownerID {
		return true, nil
	}
	return s.friends.IsFriend(ctx, viewerID, ownerID)
}

// GetSecret returns the owner's secret after evaluating the access guard.
// A nil secret with a nil error means the owner has not set one; absence
// is a valid state, not an error.
func (s *SecretService) GetSecret(ctx context.Context, viewerID, ownerID uuid.UUID) (*models.Secret, error) {
	allowed, err := s.CanView(ctx, viewerID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("evaluating secret access: %w", err)
	}
	if !allowed {
		return nil, ErrNotFriends
	}

	secret := &models.Secret{}
	err = s.db.QueryRow(ctx,
		`SELECT id, user_id, message, created_at, updated_at
		 FROM secrets WHERE user_id = $1`,
		ownerID,
	).Scan(&secret.ID, &secret.UserID, &secret.Message, &secret.CreatedAt, &secret.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting secret: %w", err)
	}

	return secret, nil
}

// GetOwn returns the caller's own secret, or nil when none is set.
func (s *SecretService) GetOwn(ctx context.Context, ownerID uuid.UUID) (*models.Secret, error) {
	return s.GetSecret(ctx, ownerID, ownerID)
}
