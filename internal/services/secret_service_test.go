package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type fakeFriendChecker struct {
	isFriend bool
	err      error
	called   bool
}

func (f *fakeFriendChecker) IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error) {
	f.called = true
	return f.isFriend, f.err
}

func TestSecretService_Upsert_Empty(t *testing.T) {
	svc := NewSecretService(&fakeDB{}, &fakeFriendChecker{})
	_, err := svc.Upsert(context.Background(), uuid.New(), "   ")
	if !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestSecretService_Upsert_MarkupOnlyIsEmpty(t *testing.T) {
	svc := NewSecretService(&fakeDB{}, &fakeFriendChecker{})
	_, err := svc.Upsert(context.Background(), uuid.New(), "<script>alert(1)</script>")
	if !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret for markup-only input, got %v", err)
	}
}

func TestSecretService_Upsert_StripsMarkupAndTrims(t *testing.T) {
	ownerID := uuid.New()
	var stored string
	now := time.Now()
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			stored = args[1].(string)
			return rowFromValues(uuid.New(), ownerID, stored, now, now)
		},
	}

	svc := NewSecretService(db, &fakeFriendChecker{})
	secret, err := svc.Upsert(context.Background(), ownerID, "  <b>my secret</b>  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != "my secret" {
		t.Fatalf("expected sanitized message %q, got %q", "my secret", stored)
	}
	if secret.Message != "my secret" {
		t.Fatalf("unexpected returned message: %q", secret.Message)
	}
}

func TestSecretService_Upsert_PlainTextRoundTrips(t *testing.T) {
	ownerID := uuid.New()
	var stored string
	now := time.Now()
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			stored = args[1].(string)
			return rowFromValues(uuid.New(), ownerID, stored, now, now)
		},
	}

	// Punctuation the sanitizer entity-escapes must survive unchanged.
	message := `Tell "A & B" that 1 < 2`
	svc := NewSecretService(db, &fakeFriendChecker{})
	secret, err := svc.Upsert(context.Background(), ownerID, message)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != message {
		t.Fatalf("plain text mutated on save: stored %q, want %q", stored, message)
	}
	if secret.Message != message {
		t.Fatalf("unexpected returned message: %q", secret.Message)
	}
}

func TestSecretService_CanView_Self(t *testing.T) {
	checker := &fakeFriendChecker{}
	svc := NewSecretService(&fakeDB{}, checker)

	userID := uuid.New()
	allowed, err := svc.CanView(context.Background(), userID, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatal("expected owner to view their own secret")
	}
	if checker.called {
		t.Fatal("friendship check should be skipped for the owner")
	}
}

func TestSecretService_GetSecret_NotFriends(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			t.Fatal("QueryRow should not be called when access is denied")
			return nil
		},
	}

	svc := NewSecretService(db, &fakeFriendChecker{isFriend: false})
	_, err := svc.GetSecret(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrNotFriends) {
		t.Fatalf("expected ErrNotFriends, got %v", err)
	}
}

func TestSecretService_GetSecret_FriendAllowed(t *testing.T) {
	ownerID := uuid.New()
	now := time.Now()
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(uuid.New(), ownerID, "the secret", now, now)
		},
	}

	svc := NewSecretService(db, &fakeFriendChecker{isFriend: true})
	secret, err := svc.GetSecret(context.Background(), uuid.New(), ownerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret == nil || secret.Message != "the secret" {
		t.Fatalf("unexpected secret: %+v", secret)
	}
}

func TestSecretService_GetSecret_NoneSet(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowWithError(pgx.ErrNoRows)
		},
	}

	// Absence of a secret is not an error for an allowed viewer.
	svc := NewSecretService(db, &fakeFriendChecker{isFriend: true})
	secret, err := svc.GetSecret(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != nil {
		t.Fatalf("expected nil secret, got %+v", secret)
	}
}

func TestSecretService_GetSecret_GuardError(t *testing.T) {
	guardErr := errors.New("db down")
	svc := NewSecretService(&fakeDB{}, &fakeFriendChecker{err: guardErr})
	_, err := svc.GetSecret(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, guardErr) {
		t.Fatalf("expected wrapped guard error, got %v", err)
	}
}

func TestSecretService_GetOwn(t *testing.T) {
	ownerID := uuid.New()
	now := time.Now()
	checker := &fakeFriendChecker{}
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(uuid.New(), ownerID, "mine", now, now)
		},
	}

	svc := NewSecretService(db, checker)
	secret, err := svc.GetOwn(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret.Message != "mine" {
		t.Fatalf("unexpected message: %q", secret.Message)
	}
	if checker.called {
		t.Fatal("friendship check should be skipped for the owner")
	}
}
