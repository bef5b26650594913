package auth

import (
	"context"
	"errors"
	"testing"

	domainboard "github.com/example/kanban-backend/domain/board"
	domainmember "github.com/example/kanban-backend/domain/member"
	domainnotification "github.com/example/kanban-backend/domain/notification"
	domaintask "github.com/example/kanban-backend/domain/task"
	domain "github.com/example/kanban-backend/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A single connection keeps the in-memory database alive across queries.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&domain.User{},
		&domainboard.Board{},
		&domainboard.Column{},
		&domainnotification.Notification{},
		&domaintask.Task{},
		&domainmember.BoardMember{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func setupTestService(t *testing.T) *AuthService {
	t.Helper()
	db := setupTestDB(t)
	return NewAuthService(NewUserRepository(db), NewTokenIssuer(testTokenConfig()))
}

func TestAuthService_Register(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, "Ada Lovelace", "ada@example.com", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" {
		t.Error("Register() returned user without ID")
	}
	if user.Name != "Ada Lovelace" {
		t.Errorf("user.Name = %q, want %q", user.Name, "Ada Lovelace")
	}
	if user.PasswordHash == "password123" {
		t.Error("Register() stored the plaintext password")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "missing name",
			userName: "",
			email:    "user@example.com",
			password: "password123",
			wantErr:  ErrNameRequired,
		},
		{
			name:     "invalid email",
			userName: "User",
			email:    "not-an-email",
			password: "password123",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "short password",
			userName: "User",
			email:    "user@example.com",
			password: "short",
			wantErr:  ErrWeakPassword,
		},
		{
			name:     "overlong password",
			userName: "User",
			email:    "user@example.com",
			password: string(make([]byte, 73)),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.userName, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "First", "dup@example.com", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, err := service.Register(ctx, "Second", "dup@example.com", "password456")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Register() error = %v, want ErrUserExists", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "User", "login@example.com", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tokens, err := service.Login(ctx, "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("Login() returned empty tokens")
	}
	if tokens.TokenType != "Bearer" {
		t.Errorf("tokens.TokenType = %q, want %q", tokens.TokenType, "Bearer")
	}

	// The access token round-trips through validation.
	claims, err := service.ValidateToken(ctx, tokens.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Email != "login@example.com" {
		t.Errorf("claims.Email = %q, want %q", claims.Email, "login@example.com")
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "User", "login2@example.com", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := service.Login(ctx, "login2@example.com", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() with wrong password error = %v, want ErrInvalidCredentials", err)
	}
	// An unknown email yields the same error so the response does not
	// reveal which accounts exist.
	if _, err := service.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() with unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_RefreshTokens(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "User", "refresh@example.com", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	tokens, err := service.Login(ctx, "refresh@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	renewed, err := service.RefreshTokens(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshTokens() error = %v", err)
	}
	if renewed.AccessToken == "" || renewed.RefreshToken == "" {
		t.Error("RefreshTokens() returned empty tokens")
	}

	// An access token must not be usable for refresh.
	if _, err := service.RefreshTokens(ctx, tokens.AccessToken); err == nil {
		t.Error("RefreshTokens() accepted an access token")
	}
}

func TestAuthService_DeleteUser(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, "Doomed", "doomed@example.com", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := service.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if _, err := service.GetUser(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUser() after delete error = %v, want ErrUserNotFound", err)
	}
	if err := service.DeleteUser(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("DeleteUser() of missing user error = %v, want ErrUserNotFound", err)
	}
}
