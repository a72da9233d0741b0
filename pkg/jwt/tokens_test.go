package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestGenerateAndParseRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-123", testSecret, 0)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	claims, err := Parse(token, testSecret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.IssuedAt == nil {
		t.Fatalf("expected issued-at claim")
	}
	if claims.ExpiresAt != nil {
		t.Fatalf("expected no expiry claim for zero ttl")
	}
}

func TestGenerateAttachesExpiryWhenConfigured(t *testing.T) {
	token, err := GenerateToken("user-123", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	claims, err := Parse(token, testSecret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("expected expiry claim")
	}
	if time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Fatalf("expected expiry in the future")
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	token, err := GenerateToken("user-123", testSecret, 0)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := Parse(token, "other-secret"); err == nil {
		t.Fatalf("expected mis-keyed token to fail")
	}
	if _, err := ParseAllowExpired(token, "other-secret"); err == nil {
		t.Fatalf("expected mis-keyed token to fail even with expiry ignored")
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	token, err := GenerateToken("user-123", testSecret, 0)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + ".x" + parts[1] + "." + parts[2]
	if _, err := ParseAllowExpired(tampered, testSecret); err == nil {
		t.Fatalf("expected tampered token to fail")
	}
	truncated := parts[0] + "." + parts[1]
	if _, err := ParseAllowExpired(truncated, testSecret); err == nil {
		t.Fatalf("expected truncated token to fail")
	}
}

func TestParseAllowExpiredAcceptsExpiredToken(t *testing.T) {
	expired := signedClaims(t, Claims{
		UserID: "user-123",
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	if _, err := Parse(expired, testSecret); !errors.Is(err, jwtlib.ErrTokenExpired) {
		t.Fatalf("expected strict parse to report expiry, got %v", err)
	}

	claims, err := ParseAllowExpired(expired, testSecret)
	if err != nil {
		t.Fatalf("expected expired token to parse with expiry ignored: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
}

func TestParseRejectsUnexpectedSigningMethod(t *testing.T) {
	unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{UserID: "user-123"})
	token, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := ParseAllowExpired(token, testSecret); err == nil {
		t.Fatalf("expected alg=none token to fail")
	}
}

func signedClaims(t *testing.T, claims Claims) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign claims: %v", err)
	}
	return signed
}
