package credential

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		digest, err := HashPassword("password123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if digest == "" || digest == "password123" {
			t.Fatal("expected non-empty digest distinct from the input")
		}
		if !strings.HasPrefix(digest, "$2") {
			t.Errorf("expected bcrypt digest, got %q", digest)
		}
	})

	t.Run("empty_rejected", func(t *testing.T) {
		_, err := HashPassword("")
		if !errors.Is(err, ErrEmptySecret) {
			t.Fatalf("expected ErrEmptySecret, got %v", err)
		}
	})

	t.Run("salted", func(t *testing.T) {
		a, err := HashPassword("password123")
		if err != nil {
			t.Fatal(err)
		}
		b, err := HashPassword("password123")
		if err != nil {
			t.Fatal(err)
		}
		if a == b {
			t.Error("expected distinct digests for the same password")
		}
	})
}

func TestVerifyPassword(t *testing.T) {
	digest, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatal(err)
	}

	if !VerifyPassword("correct-horse", digest) {
		t.Error("expected matching password to verify")
	}
	if VerifyPassword("wrong-horse", digest) {
		t.Error("expected mismatched password to fail")
	}
	if VerifyPassword("correct-horse", "") {
		t.Error("expected empty digest to fail")
	}
}

func TestTokenDigest(t *testing.T) {
	token := "header.payload.signature"

	digest := TokenDigest(token)
	if len(digest) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(digest))
	}
	if digest != TokenDigest(token) {
		t.Error("expected digest to be deterministic")
	}

	if !VerifyTokenDigest(token, digest) {
		t.Error("expected matching token to verify")
	}
	if VerifyTokenDigest("other.token.value", digest) {
		t.Error("expected mismatched token to fail")
	}
}
