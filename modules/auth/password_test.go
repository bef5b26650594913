package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "simple password",
			password: "password123",
		},
		{
			name:     "password with symbols",
			password: "P@ssw0rd!#$%",
		},
		{
			name:     "unicode password",
			password: "sifre-şifre-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			if err != nil {
				t.Fatalf("HashPassword() error = %v", err)
			}
			if hash == "" || hash == tt.password {
				t.Errorf("HashPassword() = %q, want a non-empty hash distinct from the password", hash)
			}
			if !CheckPassword(hash, tt.password) {
				t.Error("CheckPassword() returned false for correct password")
			}
			if CheckPassword(hash, tt.password+"x") {
				t.Error("CheckPassword() returned true for wrong password")
			}
		})
	}
}

func TestHashPassword_Policy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "too short", password: "short", wantErr: ErrWeakPassword},
		{name: "empty", password: "", wantErr: ErrWeakPassword},
		{name: "at minimum", password: "12345678", wantErr: nil},
		{name: "at bcrypt limit", password: strings.Repeat("a", 72), wantErr: nil},
		{name: "past bcrypt limit", password: strings.Repeat("a", 73), wantErr: ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HashPassword(tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("HashPassword() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHashPassword_UniqueHashes(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	// Salted hashing must produce distinct hashes for the same input.
	if hash1 == hash2 {
		t.Error("HashPassword() produced identical hashes for the same password")
	}
	if !CheckPassword(hash1, password) || !CheckPassword(hash2, password) {
		t.Error("CheckPassword() failed for a freshly produced hash")
	}
}
