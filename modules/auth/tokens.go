package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	domain "github.com/example/kanban-backend/domain/user"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

// Token kinds carried in the token_type claim. A refresh token is never
// accepted as a bearer credential, and an access token never refreshes.
const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
)

// TokenConfig holds the signing settings for issued credentials.
type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenConfigFromEnv reads signing settings from JWT_SECRET_KEY, JWT_ISSUER,
// JWT_ACCESS_TTL and JWT_REFRESH_TTL (Go duration strings). Unset values fall
// back to development defaults; the secret must be overridden outside local
// development.
func TokenConfigFromEnv() TokenConfig {
	cfg := TokenConfig{
		Secret:     "kanban-dev-secret-change-in-production",
		Issuer:     "kanban-api",
		AccessTTL:  time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		cfg.Secret = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		cfg.Issuer = v
	}
	if d, err := time.ParseDuration(os.Getenv("JWT_ACCESS_TTL")); err == nil && d > 0 {
		cfg.AccessTTL = d
	}
	if d, err := time.ParseDuration(os.Getenv("JWT_REFRESH_TTL")); err == nil && d > 0 {
		cfg.RefreshTTL = d
	}
	return cfg
}

// tokenClaims is the wire shape of issued tokens. The exported surface of
// this package deals in domain.Claims only.
type tokenClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the HS256 token pairs used as API
// credentials.
type TokenIssuer struct {
	cfg TokenConfig
}

// NewTokenIssuer creates a TokenIssuer with the given configuration.
func NewTokenIssuer(cfg TokenConfig) *TokenIssuer {
	return &TokenIssuer{cfg: cfg}
}

// IssuePair signs a fresh access/refresh pair for the given principal.
func (t *TokenIssuer) IssuePair(userID, email string) (*domain.TokenPair, error) {
	access, err := t.sign(userID, email, tokenKindAccess, t.cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := t.sign(userID, email, tokenKindRefresh, t.cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(t.cfg.AccessTTL.Seconds()),
		TokenType:    "Bearer",
	}, nil
}

func (t *TokenIssuer) sign(userID, email, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID:    userID,
		Email:     email,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.cfg.Secret))
}

// VerifyAccess checks an access token and returns the principal it names.
func (t *TokenIssuer) VerifyAccess(token string) (*domain.Claims, error) {
	return t.verify(token, tokenKindAccess)
}

// VerifyRefresh checks a refresh token and returns the principal it names.
func (t *TokenIssuer) VerifyRefresh(token string) (*domain.Claims, error) {
	return t.verify(token, tokenKindRefresh)
}

func (t *TokenIssuer) verify(token, kind string) (*domain.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(t.cfg.Secret), nil
	}, jwt.WithIssuer(t.cfg.Issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.TokenType != kind {
		return nil, ErrInvalidToken
	}
	return &domain.Claims{UserID: claims.UserID, Email: claims.Email}, nil
}
