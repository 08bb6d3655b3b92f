// Package credential provides one-way hashing and verification for the two
// kinds of secrets the API stores: user passwords and refresh tokens.
//
// Passwords use bcrypt. Refresh tokens are JWTs, which exceed bcrypt's
// 72-byte input limit, so they are stored as SHA-256 digests instead; refresh
// tokens carry enough entropy that a fast hash is sufficient to make a stolen
// database dump useless.
package credential

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptySecret is returned when an empty secret reaches the hasher.
// Callers must reject empty passwords before this point; hitting this error
// indicates a programming error, not bad user input.
var ErrEmptySecret = errors.New("credential: secret must not be empty")

// HashPassword returns the bcrypt digest of a plaintext password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptySecret
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// bcrypt digest.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// TokenDigest returns the SHA-256 hex digest of a token string for at-rest
// storage. The token itself is never persisted.
func TokenDigest(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// VerifyTokenDigest reports whether the presented token matches the stored
// digest, in constant time.
func VerifyTokenDigest(token, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(TokenDigest(token)), []byte(digest)) == 1
}
