package token

import (
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		AccessSecret:  "access-secret-for-tests",
		AccessTTL:     15 * time.Minute,
		RefreshSecret: "refresh-secret-for-tests",
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func TestAccessTokenRoundtrip(t *testing.T) {
	m := NewManager(testConfig())

	tok, err := m.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := m.ParseAccessToken(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("expected user-1, got %s", userID)
	}
}

func TestRefreshTokenRoundtrip(t *testing.T) {
	m := NewManager(testConfig())

	tok, err := m.GenerateRefreshToken("user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := m.ParseRefreshToken(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-2" {
		t.Errorf("expected user-2, got %s", userID)
	}
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	m := NewManager(testConfig())

	access, err := m.GenerateAccessToken("user-3")
	if err != nil {
		t.Fatal(err)
	}
	refresh, err := m.GenerateRefreshToken("user-3")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.ParseRefreshToken(access); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for access token on refresh path, got %v", err)
	}
	if _, err := m.ParseAccessToken(refresh); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for refresh token on access path, got %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTTL = -time.Minute
	m := NewManager(cfg)

	tok, err := m.GenerateAccessToken("user-4")
	if err != nil {
		t.Fatal(err)
	}

	_, err = m.ParseAccessToken(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestMalformedToken(t *testing.T) {
	m := NewManager(testConfig())

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.ParseAccessToken(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("token %q: expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}

func TestWrongSecretRejected(t *testing.T) {
	m := NewManager(testConfig())

	other := testConfig()
	other.AccessSecret = "some-other-secret"
	tok, err := NewManager(other).GenerateAccessToken("user-5")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.ParseAccessToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestRefreshTokensAreUnique(t *testing.T) {
	m := NewManager(testConfig())

	a, err := m.GenerateRefreshToken("user-6")
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.GenerateRefreshToken("user-6")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("expected two refresh tokens for the same user to differ")
	}
}
