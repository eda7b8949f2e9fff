package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/recipe-box/internal/domain"
	"github.com/msomdec/recipe-box/internal/repository/sqlite"
	"github.com/msomdec/recipe-box/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), testJWTSecret, 4, 7, time.Hour)
	return auth, db
}

func TestAuthService_Signup_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Signup(ctx, "new@example.com", "password123")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if user.ID == "" {
		t.Fatal("expected user ID to be set")
	}
	if user.Email != "new@example.com" {
		t.Fatalf("expected email new@example.com, got %s", user.Email)
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password must not be stored in plaintext")
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Signup(ctx, "dup@example.com", "password123"); err != nil {
		t.Fatalf("first Signup: %v", err)
	}

	_, err := auth.Signup(ctx, "dup@example.com", "password456")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Signup_ShortPasswordWritesNothing(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Signup(ctx, "short@example.com", "2shrt")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Messages) == 0 {
		t.Fatal("expected at least one validation message")
	}

	// Rejection happens before any storage write.
	if _, err := db.Users().GetByEmail(ctx, "short@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected no user row after rejected signup, got %v", err)
	}
}

func TestAuthService_Signup_InvalidEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Signup(context.Background(), "not-an-email", "password123")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAuthService_SignupThenLogin_SameUser(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	created, err := auth.Signup(ctx, "roundtrip@example.com", "password123")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	loggedIn, token, err := auth.Login(ctx, "roundtrip@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.ID != created.ID {
		t.Fatalf("expected same user id %s, got %s", created.ID, loggedIn.ID)
	}

	claims, err := auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Subject != created.ID {
		t.Fatalf("expected token subject %s, got %s", created.ID, claims.Subject)
	}
}

func TestAuthService_Login_UnknownEmailAndWrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Signup(ctx, "known@example.com", "correct-password"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	// Both failure modes collapse into the same error.
	_, _, unknownErr := auth.Login(ctx, "unknown@example.com", "whatever-password")
	if !errors.Is(unknownErr, domain.ErrUnauthorized) {
		t.Fatalf("unknown email: expected ErrUnauthorized, got %v", unknownErr)
	}

	_, _, wrongErr := auth.Login(ctx, "known@example.com", "wrong-password")
	if !errors.Is(wrongErr, domain.ErrUnauthorized) {
		t.Fatalf("wrong password: expected ErrUnauthorized, got %v", wrongErr)
	}
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	_, db := newTestAuthService(t)
	ctx := context.Background()

	// Issue with a TTL already in the past; the signature itself is valid.
	expired := service.NewAuthService(db.Users(), testJWTSecret, 4, 7, -time.Minute)
	user, err := expired.Signup(ctx, "expired@example.com", "password123")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	token, err := expired.IssueToken(user.ID)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := expired.VerifyToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestAuthService_VerifyToken_Malformed(t *testing.T) {
	auth, _ := newTestAuthService(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := auth.VerifyToken(token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("token %q: expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestAuthService_VerifyToken_WrongSecret(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Signup(ctx, "secret@example.com", "password123")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	token, err := auth.IssueToken(user.ID)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	other := service.NewAuthService(db.Users(), "a-completely-different-secret", 4, 7, time.Hour)
	if _, err := other.VerifyToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign signature, got %v", err)
	}
}
