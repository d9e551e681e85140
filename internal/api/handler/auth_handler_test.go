package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, identity *domain.Identity) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, identity *domain.Identity) error {
	return s.logoutFn(ctx, identity)
}

func (s *stubAuthService) ChangePassword(context.Context, *domain.Identity, string, string) error {
	return nil
}

func (s *stubAuthService) CurrentUser(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func newAuthContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterReturnsCreated(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			return &domain.User{ID: "u1", Name: in.Name, Email: in.Email, Role: domain.RoleMember}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"s3cret-pass"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var got domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.ID != "u1" || got.Email != "ada@example.com" {
		t.Fatalf("response = %+v", got)
	}
}

func TestRegisterRejectsMalformedJSON(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthContext(t, http.MethodPost, "/auth/register", `{"name":`)
	err := h.Register(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("Register() error = %v, want 400", err)
	}
}

func TestRegisterValidatesPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	cases := map[string]string{
		"short password": `{"name":"Ada","email":"ada@example.com","password":"short"}`,
		"bad email":      `{"name":"Ada","email":"not-an-email","password":"s3cret-pass"}`,
		"missing name":   `{"email":"ada@example.com","password":"s3cret-pass"}`,
	}
	for name, body := range cases {
		c, _ := newAuthContext(t, http.MethodPost, "/auth/register", body)
		err := h.Register(c)

		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: Register() error = %v, want 422", name, err)
		}
	}
}

func TestLoginReturnsToken(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, email, _ string) (*ports.LoginResult, error) {
			return &ports.LoginResult{
				AccessToken: "signed-token",
				TokenType:   "bearer",
				ExpiresIn:   3600,
				User:        &domain.User{ID: "u1", Email: email},
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/login",
		`{"email":"ada@example.com","password":"s3cret-pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.AccessToken != "signed-token" || got.TokenType != "bearer" || got.ExpiresIn != 3600 {
		t.Fatalf("response = %+v", got)
	}
}

func TestLoginPassesDomainErrorsThrough(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newAuthContext(t, http.MethodPost, "/auth/login",
		`{"email":"ada@example.com","password":"wrong-pass"}`)
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogoutRequiresIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthContext(t, http.MethodPost, "/auth/logout", "")
	err := h.Logout(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("Logout() error = %v, want 401", err)
	}
}

func TestLogoutRevokesPresentedToken(t *testing.T) {
	var revoked string
	svc := &stubAuthService{
		logoutFn: func(_ context.Context, identity *domain.Identity) error {
			revoked = identity.TokenID
			return nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/logout", "")
	c.Set("identity", &domain.Identity{
		UserID:    "u1",
		Role:      domain.RoleMember,
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if revoked != "jti-1" {
		t.Fatalf("revoked token = %q, want jti-1", revoked)
	}
}
