package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

const testSecret = "test-secret"

func testUser() *domain.User {
	return &domain.User{ID: "u1", Role: domain.RoleMember, Active: true}
}

func TestTokenIssueVerifyRoundtrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	verifier := NewTokenVerifier(testSecret, newStubDenylist())

	token, expiresAt, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("expiry must be in the future")
	}

	identity, err := verifier.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if identity.UserID != "u1" {
		t.Fatalf("UserID = %q, want u1", identity.UserID)
	}
	if identity.Role != domain.RoleMember {
		t.Fatalf("Role = %q, want member", identity.Role)
	}
	if identity.TokenID == "" {
		t.Fatal("TokenID must be populated")
	}
	if !identity.ExpiresAt.Equal(expiresAt.Truncate(time.Second)) {
		t.Fatalf("ExpiresAt = %v, want %v", identity.ExpiresAt, expiresAt)
	}
}

func TestTokenIssuerDefaultsTTL(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 0)
	if issuer.TTL() != defaultTokenTTL {
		t.Fatalf("TTL() = %v, want %v", issuer.TTL(), defaultTokenTTL)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("other-secret", time.Hour)
	verifier := NewTokenVerifier(testSecret, newStubDenylist())

	token, _, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := verifier.Verify(context.Background(), token); err != domain.ErrInvalidToken {
		t.Fatalf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	verifier := NewTokenVerifier(testSecret, newStubDenylist())

	// Signed with the right secret but already past expiry, beyond leeway.
	claims := accessClaims{
		Role: domain.RoleMember,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ID:        "jti-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), token); err != domain.ErrInvalidToken {
		t.Fatalf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsWrongAlgorithm(t *testing.T) {
	verifier := NewTokenVerifier(testSecret, newStubDenylist())

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ID:        "jti-1",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), token); err != domain.ErrInvalidToken {
		t.Fatalf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsTamperedClaims(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	verifier := NewTokenVerifier(testSecret, newStubDenylist())

	token, _, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Swap the subject inside the payload segment while keeping the original
	// signature; expiry is still in the future, so only the signature check
	// can catch this.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token segments = %d, want 3", len(parts))
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	forged := strings.Replace(string(payload), `"sub":"u1"`, `"sub":"u2"`, 1)
	if forged == string(payload) {
		t.Fatal("payload does not contain the expected subject claim")
	}
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	if _, err := verifier.Verify(context.Background(), strings.Join(parts, ".")); err != domain.ErrInvalidToken {
		t.Fatalf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsRevokedToken(t *testing.T) {
	denylist := newStubDenylist()
	issuer := NewTokenIssuer(testSecret, time.Hour)
	verifier := NewTokenVerifier(testSecret, denylist)

	token, _, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	identity, err := verifier.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if err := denylist.Revoke(context.Background(), identity.TokenID, time.Hour); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if _, err := verifier.Verify(context.Background(), token); err != domain.ErrInvalidToken {
		t.Fatalf("Verify() after revoke error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyFailsClosedOnDenylistError(t *testing.T) {
	denylist := newStubDenylist()
	denylist.failErr = errors.New("redis down")
	issuer := NewTokenIssuer(testSecret, time.Hour)
	verifier := NewTokenVerifier(testSecret, denylist)

	token, _, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := verifier.Verify(context.Background(), token); err != domain.ErrInvalidToken {
		t.Fatalf("Verify() error = %v, want ErrInvalidToken", err)
	}
}
