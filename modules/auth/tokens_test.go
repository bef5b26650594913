package auth

import (
	"errors"
	"testing"
	"time"
)

func testTokenConfig() TokenConfig {
	return TokenConfig{
		Secret:     "test-secret-key",
		Issuer:     "test-issuer",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func TestTokenIssuer_IssueAndVerifyPair(t *testing.T) {
	issuer := NewTokenIssuer(testTokenConfig())

	pair, err := issuer.IssuePair("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("IssuePair() returned empty tokens")
	}
	if pair.TokenType != "Bearer" {
		t.Errorf("pair.TokenType = %q, want %q", pair.TokenType, "Bearer")
	}
	if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("pair.ExpiresIn = %d, want %d", pair.ExpiresIn, int64((15*time.Minute).Seconds()))
	}

	claims, err := issuer.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccess() error = %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, "user-123")
	}
	if claims.Email != "test@example.com" {
		t.Errorf("claims.Email = %v, want %v", claims.Email, "test@example.com")
	}

	if _, err := issuer.VerifyRefresh(pair.RefreshToken); err != nil {
		t.Errorf("VerifyRefresh() error = %v", err)
	}
}

func TestTokenIssuer_KindMismatch(t *testing.T) {
	issuer := NewTokenIssuer(testTokenConfig())

	pair, err := issuer.IssuePair("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	if _, err := issuer.VerifyRefresh(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyRefresh() of access token error = %v, want ErrInvalidToken", err)
	}
	if _, err := issuer.VerifyAccess(pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyAccess() of refresh token error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenIssuer_ExpiredToken(t *testing.T) {
	cfg := testTokenConfig()
	cfg.AccessTTL = -1 * time.Minute
	issuer := NewTokenIssuer(cfg)

	pair, err := issuer.IssuePair("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	if _, err := issuer.VerifyAccess(pair.AccessToken); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("VerifyAccess() error = %v, want ErrExpiredToken", err)
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testTokenConfig())

	pair, err := issuer.IssuePair("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	other := testTokenConfig()
	other.Secret = "a-different-secret"
	if _, err := NewTokenIssuer(other).VerifyAccess(pair.AccessToken); err == nil {
		t.Error("VerifyAccess() accepted a token signed with another secret")
	}
}

func TestTokenIssuer_WrongIssuer(t *testing.T) {
	issuer := NewTokenIssuer(testTokenConfig())

	pair, err := issuer.IssuePair("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	other := testTokenConfig()
	other.Issuer = "another-service"
	if _, err := NewTokenIssuer(other).VerifyAccess(pair.AccessToken); err == nil {
		t.Error("VerifyAccess() accepted a token from another issuer")
	}
}

func TestTokenIssuer_MalformedToken(t *testing.T) {
	issuer := NewTokenIssuer(testTokenConfig())

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "not a JWT", token: "not-a-token"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.VerifyAccess(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("VerifyAccess(%q) error = %v, want ErrInvalidToken", tt.token, err)
			}
		})
	}
}

func TestTokenConfigFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "env-secret")
	t.Setenv("JWT_ISSUER", "env-issuer")
	t.Setenv("JWT_ACCESS_TTL", "30m")
	t.Setenv("JWT_REFRESH_TTL", "48h")

	cfg := TokenConfigFromEnv()
	if cfg.Secret != "env-secret" {
		t.Errorf("cfg.Secret = %q, want %q", cfg.Secret, "env-secret")
	}
	if cfg.Issuer != "env-issuer" {
		t.Errorf("cfg.Issuer = %q, want %q", cfg.Issuer, "env-issuer")
	}
	if cfg.AccessTTL != 30*time.Minute {
		t.Errorf("cfg.AccessTTL = %v, want %v", cfg.AccessTTL, 30*time.Minute)
	}
	if cfg.RefreshTTL != 48*time.Hour {
		t.Errorf("cfg.RefreshTTL = %v, want %v", cfg.RefreshTTL, 48*time.Hour)
	}
}

func TestTokenConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_ACCESS_TTL", "not-a-duration")
	t.Setenv("JWT_REFRESH_TTL", "")

	cfg := TokenConfigFromEnv()
	if cfg.Issuer != "kanban-api" {
		t.Errorf("cfg.Issuer = %q, want default %q", cfg.Issuer, "kanban-api")
	}
	if cfg.AccessTTL != time.Hour {
		t.Errorf("cfg.AccessTTL = %v, want default %v", cfg.AccessTTL, time.Hour)
	}
	if cfg.RefreshTTL != 7*24*time.Hour {
		t.Errorf("cfg.RefreshTTL = %v, want default %v", cfg.RefreshTTL, 7*24*time.Hour)
	}
}
