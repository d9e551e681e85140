package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

type stubVerifier struct {
	identity *domain.Identity
	err      error
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (*domain.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

func memberIdentity() *domain.Identity {
	return &domain.Identity{
		UserID:    "u1",
		Role:      domain.RoleMember,
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func runAuth(t *testing.T, verifier TokenVerifier, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me/profiles", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(verifier)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c
}

func TestAuthAcceptsValidToken(t *testing.T) {
	want := memberIdentity()
	rec, c := runAuth(t, &stubVerifier{identity: want}, "Bearer good-token")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got, ok := Identity(c)
	if !ok {
		t.Fatal("identity must be stored in the request context")
	}
	if got.UserID != want.UserID || got.Role != want.Role {
		t.Fatalf("identity = %+v, want %+v", got, want)
	}
}

func TestAuthAcceptsLowercaseBearer(t *testing.T) {
	rec, _ := runAuth(t, &stubVerifier{identity: memberIdentity()}, "bearer good-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	rec, _ := runAuth(t, &stubVerifier{identity: memberIdentity()}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	for _, header := range []string{"good-token", "Basic dXNlcjpwYXNz"} {
		rec, _ := runAuth(t, &stubVerifier{identity: memberIdentity()}, header)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	rec, c := runAuth(t, &stubVerifier{err: domain.ErrInvalidToken}, "Bearer bad-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if _, ok := Identity(c); ok {
		t.Fatal("no identity must be stored on a failed verification")
	}
}
