package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/msomdec/recipe-box/internal/domain"
	"github.com/msomdec/recipe-box/internal/service"
)

const sessionCookieName = "authToken"

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
	cookieMaxAge int
}

// NewAuthHandler creates a new AuthHandler. The session cookie lifetime
// follows the token TTL.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		cookieSecure: cookieSecure,
		cookieMaxAge: int(tokenTTL.Seconds()),
	}
}

// HandleSignup processes a JSON signup request.
// POST /auth/signup
// Request:  {"email":"...","password":"..."}
// Response: {"message":"...","user":{"id":"...","email":"..."}} + Set-Cookie
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, []string{"Invalid request body"})
		return
	}

	user, err := h.auth.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeErrors(w, http.StatusBadRequest, verr.Messages)
			return
		}
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeErrors(w, http.StatusConflict, []string{"Email already exists"})
			return
		}
		slog.Error("signup user", "error", err)
		writeErrors(w, http.StatusInternalServerError, []string{"Internal server error"})
		return
	}

	token, err := h.auth.IssueToken(user.ID)
	if err != nil {
		slog.Error("issue token after signup", "error", err)
		writeErrors(w, http.StatusInternalServerError, []string{"Internal server error"})
		return
	}
	h.setSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User registered successfully!",
		"user":    toUserDTO(user),
	})
}

// HandleLogin processes a JSON login request.
// POST /auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"message":"...","user":{"id":"...","email":"..."}} + Set-Cookie
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, []string{"Invalid request body"})
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeErrors(w, http.StatusBadRequest, verr.Messages)
			return
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			// Same response for an unknown email and a wrong password.
			writeErrors(w, http.StatusUnauthorized, []string{"Invalid credentials"})
			return
		}
		slog.Error("login user", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.setSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    toUserDTO(user),
	})
}

// HandleLogout clears the session cookie. Tokens are stateless, so there
// is no server-side session to invalidate.
// POST /auth/logout
// Response: {"message":"Logout successful"}
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// HandleMe returns the currently authenticated user.
// GET /auth/me
// Response: {"id":"...","email":"..."}
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The account vanished between token issuance and use.
			writeError(w, http.StatusBadRequest, "User not found")
			return
		}
		slog.Error("get current user", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   h.cookieMaxAge,
	})
}
