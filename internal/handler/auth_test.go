package handler_test

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/recipe-box/internal/handler"
	"github.com/msomdec/recipe-box/internal/mealdb"
	"github.com/msomdec/recipe-box/internal/repository/sqlite"
	"github.com/msomdec/recipe-box/internal/service"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
)

const testJWTSecret = "test-secret-for-handler-tests"

func newTestServices(t *testing.T) (*service.AuthService, *service.BookmarkService, *sqlite.DB) {
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

	auth := service.NewAuthService(db.Users(), testJWTSecret, 4, 7, time.Hour)
	bookmarks := service.NewBookmarkService(db.Bookmarks())
	return auth, bookmarks, db
}

func newTestMux(t *testing.T) (*http.ServeMux, *service.AuthService, *sqlite.DB) {
	t.Helper()
	auth, bookmarks, db := newTestServices(t)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, bookmarks, mealdb.New("http://127.0.0.1:1"), false, time.Hour, "")
	return mux, auth, db
}

func TestSignup_Success(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.Handler(mux).
		Post("/auth/signup").
		JSON(`{"email":"test@test.com","password":"password123"}`).
		Expect(t).
		Status(http.StatusOK).
		CookiePresent("authToken").
		Assert(jsonpath.Equal("$.message", "User registered successfully!")).
		Assert(jsonpath.Equal("$.user.email", "test@test.com")).
		Assert(jsonpath.Present("$.user.id")).
		End()
}

func TestSignup_DuplicateEmail(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.Handler(mux).
		Post("/auth/signup").
		JSON(`{"email":"dupe@test.com","password":"password123"}`).
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.Handler(mux).
		Post("/auth/signup").
		JSON(`{"email":"dupe@test.com","password":"password123"}`).
		Expect(t).
		Status(http.StatusConflict).
		Assert(jsonpath.Contains("$.errors", "Email already exists")).
		End()
}

func TestSignup_InvalidPayload(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.Handler(mux).
		Post("/auth/signup").
		JSON(`{"email":"bad","password":"short"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Len("$.errors", 2)).
		End()
}

func TestSignup_PasswordNeverEchoed(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.Handler(mux).
		Post("/auth/signup").
		JSON(`{"email":"quiet@test.com","password":"password123"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.NotPresent("$.user.password")).
		Assert(jsonpath.NotPresent("$.user.passwordHash")).
		End()
}

func TestLogin_Success(t *testing.T) {
	mux, auth, _ := newTestMux(t)

	created, err := auth.Signup(context.Background(), "test@test.com", "password123")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	apitest.Handler(mux).
		Post("/auth/login").
		JSON(`{"email":"test@test.com","password":"password123"}`).
		Expect(t).
		Status(http.StatusOK).
		CookiePresent("authToken").
		Assert(jsonpath.Equal("$.message", "Login successful")).
		Assert(jsonpath.Equal("$.user.id", created.ID)).
		End()
}

func TestLogin_GenericFailureMessage(t *testing.T) {
	mux, auth, _ := newTestMux(t)

	if _, err := auth.Signup(context.Background(), "known@test.com", "correct-password"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	// Unknown email and wrong password produce byte-identical responses.
	for _, body := range []string{
		`{"email":"nope@test.com","password":"whatever-password"}`,
		`{"email":"known@test.com","password":"wrong-password"}`,
	} {
		apitest.Handler(mux).
			Post("/auth/login").
			JSON(body).
			Expect(t).
			Status(http.StatusUnauthorized).
			Assert(jsonpath.Contains("$.errors", "Invalid credentials")).
			End()
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.Handler(mux).
		Post("/auth/logout").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.message", "Logout successful")).
		End()
}

func TestMe_Success(t *testing.T) {
	mux, auth, _ := newTestMux(t)

	user, err := auth.Signup(context.Background(), "me@test.com", "password123")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	token, err := auth.IssueToken(user.ID)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	apitest.Handler(mux).
		Get("/auth/me").
		Cookies(apitest.NewCookie("authToken").Value(token)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.id", user.ID)).
		Assert(jsonpath.Equal("$.email", "me@test.com")).
		End()
}

func TestMe_Unauthenticated(t *testing.T) {
	mux, _, _ := newTestMux(t)

	apitest.Handler(mux).
		Get("/auth/me").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestMe_UserDeletedAfterIssuance(t *testing.T) {
	mux, auth, db := newTestMux(t)
	ctx := context.Background()

	user, err := auth.Signup(ctx, "gone@test.com", "password123")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	token, err := auth.IssueToken(user.ID)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := db.SqlDB.ExecContext(ctx, "DELETE FROM users WHERE id = ?", user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	apitest.Handler(mux).
		Get("/auth/me").
		Cookies(apitest.NewCookie("authToken").Value(token)).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.error", "User not found")).
		End()
}
