// Package auth implements credential hashing and the captcha challenge
// used by the signup and login endpoints.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"unicode"

	"golang.org/x/crypto/pbkdf2"

	apperr "github.com/repgenie/repgenie/internal/errors"
)

const (
	saltBytes       = 16
	pbkdf2Iters     = 210000
	pbkdf2KeyLength = 32
)

// GenerateSalt returns a fresh random salt, hex encoded for storage.
func GenerateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives a hex-encoded hash from the password and salt.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iters, pbkdf2KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword reports whether the password matches the stored hash.
// The comparison is constant time.
func VerifyPassword(password, salt, storedHash string) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// ValidatePasswordPolicy rejects passwords that are too easy to guess.
// A valid password has at least 8 characters including a digit, an
// uppercase and a lowercase letter.
func ValidatePasswordPolicy(password string) error {
	if len(password) < 8 {
		return apperr.WeakPassword("password must be at least 8 characters")
	}
	var hasDigit, hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	if !hasDigit {
		return apperr.WeakPassword("password must contain a digit")
	}
	if !hasUpper {
		return apperr.WeakPassword("password must contain an uppercase letter")
	}
	if !hasLower {
		return apperr.WeakPassword("password must contain a lowercase letter")
	}
	return nil
}
