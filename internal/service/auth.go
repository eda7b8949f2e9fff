package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/recipe-box/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles user registration, login, and session token operations.
type AuthService struct {
	users       domain.UserRepository
	jwtSecret   []byte
	bcryptCost  int
	minPassword int
	tokenTTL    time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost, minPasswordLength int, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:       users,
		jwtSecret:   []byte(jwtSecret),
		bcryptCost:  bcryptCost,
		minPassword: minPasswordLength,
		tokenTTL:    tokenTTL,
	}
}

// validateCredentials collects every rule the submitted credentials break.
func (s *AuthService) validateCredentials(email, password string) []string {
	var msgs []string
	if _, err := mail.ParseAddress(email); err != nil {
		msgs = append(msgs, "Invalid email address")
	}
	if len(password) < s.minPassword {
		msgs = append(msgs, fmt.Sprintf("Password must be at least %d characters long", s.minPassword))
	}
	return msgs
}

// Signup creates a new user account after validating inputs. Validation
// runs before hashing, so a rejected password never touches storage.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*domain.User, error) {
	if msgs := s.validateCredentials(email, password); len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the user with a signed session
// token. An unknown email and a wrong password both fail with
// domain.ErrUnauthorized so callers cannot tell them apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if msgs := s.validateCredentials(email, password); len(msgs) > 0 {
		return nil, "", &domain.ValidationError{Messages: msgs}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	// CompareHashAndPassword returns an error for malformed hashes as well,
	// which collapses into the same generic failure.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// IssueToken signs a session token for the given user id, valid for the
// configured TTL from now.
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken parses and validates a session token string. It fails on a
// bad signature, malformed structure, or passed expiry, with no leeway.
func (s *AuthService) VerifyToken(tokenString string) (*domain.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, domain.ErrUnauthorized
	}

	session := &domain.SessionClaims{Subject: sub}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		session.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Time
	}

	return session, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
