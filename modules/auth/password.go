package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Password policy bounds, in bytes. The upper bound is bcrypt's own: input
// beyond 72 bytes is silently truncated by the algorithm, so it is rejected
// up front instead.
const (
	minPasswordBytes = 8
	maxPasswordBytes = 72
	bcryptCost       = 12
)

// HashPassword enforces the password policy and returns the bcrypt hash to
// store. Policy violations surface as ErrWeakPassword or ErrPasswordTooLong.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordBytes {
		return "", ErrWeakPassword
	}
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
