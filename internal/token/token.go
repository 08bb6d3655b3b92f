// Package token creates and verifies the signed, time-bounded credentials the
// API issues: short-lived access tokens and long-lived refresh tokens. The two
// kinds are signed with distinct secrets and carry a type discriminator so one
// can never be presented in place of the other.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "fintrack-api"

// Token kind discriminators embedded in claims.
const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

// Verification errors. Both map to an unauthorized response at the boundary
// but are logged differently.
var (
	// ErrTokenExpired marks a well-formed, correctly signed token whose
	// expiration has elapsed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid marks a malformed token, a bad signature, or a token of
	// the wrong kind.
	ErrTokenInvalid = errors.New("token invalid")
)

// Config holds the process-wide signing configuration. It is read once at
// startup and treated as immutable for the process lifetime.
type Config struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

// Claims represents the claims carried by both token kinds.
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Manager signs and verifies access and refresh tokens.
type Manager struct {
	cfg Config
}

// NewManager creates a Manager from the given signing configuration.
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

// GenerateAccessToken signs a short-lived access token for a user.
func (m *Manager) GenerateAccessToken(userID string) (string, error) {
	return m.generate(userID, kindAccess, m.cfg.AccessSecret, m.cfg.AccessTTL)
}

// GenerateRefreshToken signs a long-lived refresh token for a user. Each token
// carries a random jti claim, so two refresh tokens issued for the same user
// in the same second are still distinct values with distinct digests.
func (m *Manager) GenerateRefreshToken(userID string) (string, error) {
	return m.generate(userID, kindRefresh, m.cfg.RefreshSecret, m.cfg.RefreshTTL)
}

func (m *Manager) generate(userID, kind, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken verifies an access token and returns the user ID it was
// issued for. Verification is stateless; no store lookup is involved.
func (m *Manager) ParseAccessToken(tokenString string) (string, error) {
	return m.parse(tokenString, kindAccess, m.cfg.AccessSecret)
}

// ParseRefreshToken verifies a refresh token's signature and expiration and
// returns the user ID. Callers must additionally check the stored digest;
// refresh tokens are revocable, unlike access tokens.
func (m *Manager) ParseRefreshToken(tokenString string) (string, error) {
	return m.parse(tokenString, kindRefresh, m.cfg.RefreshSecret)
}

func (m *Manager) parse(tokenString, kind, secret string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid || claims.TokenType != kind || claims.UserID == "" {
		return "", ErrTokenInvalid
	}

	return claims.UserID, nil
}
