package goPress

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func mintToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestTokenInfoDecodesClaims(t *testing.T) {
	issued := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	expires := issued.Add(15 * time.Minute)

	token := mintToken(t, jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    "news-api",
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	})

	info, err := TokenInfo(token)
	if err != nil {
		t.Fatalf("TokenInfo failed: %v", err)
	}
	if info.Subject != "u1" || info.Issuer != "news-api" {
		t.Fatalf("claims = %+v", info)
	}
	if !info.IssuedAt.Equal(issued) || !info.ExpiresAt.Equal(expires) {
		t.Fatalf("timestamps = %+v", info)
	}
}

func TestTokenInfoToleratesMissingTimestamps(t *testing.T) {
	token := mintToken(t, jwt.RegisteredClaims{Subject: "u1"})

	info, err := TokenInfo(token)
	if err != nil {
		t.Fatalf("TokenInfo failed: %v", err)
	}
	if !info.IssuedAt.IsZero() || !info.ExpiresAt.IsZero() {
		t.Fatalf("expected zero timestamps, got %+v", info)
	}
}

func TestTokenInfoRejectsGarbage(t *testing.T) {
	if _, err := TokenInfo("not-a-jwt"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}
