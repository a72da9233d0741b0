package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/prashantgrg01/funcards-backend/internal/domain"
	"github.com/prashantgrg01/funcards-backend/internal/repository"
	"github.com/prashantgrg01/funcards-backend/pkg/config"
	"github.com/prashantgrg01/funcards-backend/pkg/crypto"
	jwtpkg "github.com/prashantgrg01/funcards-backend/pkg/jwt"
)

var (
	// ErrMissingFields signals an incomplete signup or login payload.
	ErrMissingFields = errors.New("one or more fields are empty")
	// ErrEmailExists signals a signup against an already registered email.
	ErrEmailExists = errors.New("email already exists")
	// ErrIncorrectPassword signals a failed password comparison for a
	// known account. Distinct from ErrInvalidToken so handlers can keep
	// the wrong-secret case a 400 rather than a 403.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrInvalidToken signals a malformed, truncated, or mis-keyed token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrSessionRevoked signals a well-signed token that is no longer in
	// its owner's token set.
	ErrSessionRevoked = errors.New("session revoked")
)

// Service handles account lifecycle and session workflows.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
	cfg    config.APIConfig
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{users: users, logger: logger, cfg: cfg}
}

// SignupInput carries the signup form fields.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Signup registers a new user and opens its first session. The user id
// is assigned before the token is minted so the token references the
// final identifier, and the record is persisted in a single write with
// the token already in its set.
func (s Service) Signup(ctx context.Context, input SignupInput) (*domain.User, string, error) {
	if strings.TrimSpace(input.FirstName) == "" ||
		strings.TrimSpace(input.LastName) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		input.Password == "" {
		return nil, "", ErrMissingFields
	}

	if _, err := s.users.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, "", ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		Tokens:       domain.TokenSet{},
		CreatedAt:    now,
	}

	token, err := jwtpkg.GenerateToken(user.ID, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, "", err
	}
	user.Tokens = user.Tokens.Append(token, now)

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, "", ErrEmailExists
		}
		return nil, "", err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login authenticates by email and password and opens a new session.
// Each login appends its own token-set entry, so sessions from several
// clients stay independently valid until a logout clears them all.
func (s Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", ErrMissingFields
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", ErrIncorrectPassword
	}

	now := time.Now().UTC()
	token, err := jwtpkg.GenerateToken(user.ID, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, "", err
	}
	user.Tokens = user.Tokens.Append(token, now)
	if err := s.users.ReplaceUserTokens(ctx, user.ID, user.Tokens); err != nil {
		return nil, "", err
	}
	s.logger.Info("user logged in", "user_id", user.ID, "sessions", len(user.Tokens))
	return user, token, nil
}

// Logout clears every session for the user. Logging out with no active
// sessions is still a success.
func (s Service) Logout(ctx context.Context, user *domain.User) error {
	user.Tokens = user.Tokens.Clear()
	if err := s.users.ReplaceUserTokens(ctx, user.ID, user.Tokens); err != nil {
		return err
	}
	s.logger.Info("user logged out", "user_id", user.ID)
	return nil
}

// Authorize resolves a bearer token to its user. The signature is
// verified with expiry ignored; revocation takes effect through the
// token-set membership check, so a logged-out token is rejected even
// though it still verifies.
func (s Service) Authorize(ctx context.Context, token string) (*domain.User, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, ErrInvalidToken
	}
	claims, err := jwtpkg.ParseAllowExpired(trimmed, s.cfg.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.Tokens.Contains(trimmed) {
		return nil, ErrSessionRevoked
	}
	return user, nil
}
