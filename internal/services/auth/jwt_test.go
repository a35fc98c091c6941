package auth

import (
	"strconv"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, secret string, userID int64, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return signed
}

func TestParseAccessTokenAcceptsValidToken(t *testing.T) {
	m := NewJWTManager("secret")
	raw := signTestToken(t, "secret", 42, time.Now().UTC().Add(time.Hour))

	claims, err := m.ParseAccessToken(raw)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("unexpected user id: %d", claims.UserID)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("secret")
	raw := signTestToken(t, "other-secret", 42, time.Now().UTC().Add(time.Hour))

	if _, err := m.ParseAccessToken(raw); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	m := NewJWTManager("secret")
	raw := signTestToken(t, "secret", 42, time.Now().UTC().Add(-time.Minute))

	if _, err := m.ParseAccessToken(raw); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestParseAccessTokenRejectsEmpty(t *testing.T) {
	m := NewJWTManager("secret")
	if _, err := m.ParseAccessToken(""); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
