package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	domain "github.com/example/kanban-backend/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when the email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when the password is too short.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when the password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
	// ErrNameRequired is returned when the display name is missing.
	ErrNameRequired = errors.New("name is required")
)

// AuthService handles account and token business logic.
type AuthService struct {
	repo   *UserRepository
	tokens *TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, tokens *TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates a new user account.
func (s *AuthService) Register(_ context.Context, name, email, password string) (*domain.User, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	// HashPassword enforces the password policy and reports violations as
	// ErrWeakPassword or ErrPasswordTooLong.
	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index on email is the authority; a concurrent register
	// with the same address surfaces as ErrUserExists from the insert.
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and issues a token pair.
func (s *AuthService) Login(_ context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.tokens.IssuePair(user.ID, user.Email)
}

// RefreshTokens validates a refresh token and issues a fresh pair.
func (s *AuthService) RefreshTokens(_ context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	user, err := s.repo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return s.tokens.IssuePair(user.ID, user.Email)
}

// ValidateToken validates an access token and returns the principal claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	return s.tokens.VerifyAccess(token)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(_ context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(userID)
}

// GetUserByEmail retrieves a user by email.
func (s *AuthService) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(email)
}

// DeleteUser removes an account and its owned data.
func (s *AuthService) DeleteUser(_ context.Context, userID string) error {
	return s.repo.Delete(userID)
}
