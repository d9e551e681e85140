package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

type authFixture struct {
	svc      *AuthService
	users    *stubUserRepo
	profiles *stubProfileRepo
	denylist *stubDenylist
}

func newAuthFixture() *authFixture {
	users := newStubUserRepo()
	profiles := newStubProfileRepo()
	denylist := newStubDenylist()
	hasher := NewPasswordHasher(bcrypt.MinCost)
	issuer := NewTokenIssuer(testSecret, time.Hour)
	svc := NewAuthService(users, profiles, hasher, issuer, denylist, zerolog.Nop())
	return &authFixture{svc: svc, users: users, profiles: profiles, denylist: denylist}
}

func (f *authFixture) register(t *testing.T, name, email, password string) *domain.User {
	t.Helper()
	user, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return user
}

func TestRegisterCreatesMemberWithDefaultProfile(t *testing.T) {
	f := newAuthFixture()

	user := f.register(t, "Ada Lovelace", " ADA@Example.com", "s3cret-pass")

	if user.Email != "ada@example.com" {
		t.Fatalf("Email = %q, want lowercased and trimmed", user.Email)
	}
	if user.Role != domain.RoleMember {
		t.Fatalf("Role = %q, want member", user.Role)
	}
	if !user.Active {
		t.Fatal("new accounts must be active")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatal("password must be stored hashed")
	}

	profiles, err := f.profiles.ListByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("default profiles = %d, want 1", len(profiles))
	}
	if profiles[0].Name != "Ada" {
		t.Fatalf("default profile name = %q, want first name", profiles[0].Name)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "Ada", "ada@example.com", "s3cret-pass")

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Impostor",
		Email:    "ADA@example.com",
		Password: "other-pass",
	})
	if err != domain.ErrEmailTaken {
		t.Fatalf("Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterSurvivesProfileCreationFailure(t *testing.T) {
	f := newAuthFixture()
	f.profiles.createErr = errors.New("profiles collection down")

	user := f.register(t, "Ada", "ada@example.com", "s3cret-pass")
	if user.ID == "" {
		t.Fatal("account must be created even when the default profile is not")
	}
}

func TestLoginSucceeds(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "Ada", "ada@example.com", "s3cret-pass")

	result, err := f.svc.Login(context.Background(), "ada@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("AccessToken must be populated")
	}
	if result.TokenType != "bearer" {
		t.Fatalf("TokenType = %q, want bearer", result.TokenType)
	}
	if result.ExpiresIn <= 0 {
		t.Fatalf("ExpiresIn = %d, want positive", result.ExpiresIn)
	}
	if result.User == nil || result.User.Email != "ada@example.com" {
		t.Fatal("result must carry the authenticated user")
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "Ada", "ada@example.com", "s3cret-pass")

	if _, err := f.svc.Login(context.Background(), "  ADA@EXAMPLE.COM ", "s3cret-pass"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "Ada", "ada@example.com", "s3cret-pass")

	// Wrong password and unknown email must be indistinguishable.
	if _, err := f.svc.Login(context.Background(), "ada@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := f.svc.Login(context.Background(), "nobody@example.com", "s3cret-pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := f.svc.Login(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("empty credentials: error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "Ada", "ada@example.com", "s3cret-pass")

	user.Active = false
	if err := f.users.Update(context.Background(), user); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if _, err := f.svc.Login(context.Background(), "ada@example.com", "s3cret-pass"); err != domain.ErrUserInactive {
		t.Fatalf("Login() error = %v, want ErrUserInactive", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAuthFixture()

	identity := &domain.Identity{
		UserID:    "u1",
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	if err := f.svc.Logout(context.Background(), identity); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	ttl, ok := f.denylist.revoked["jti-1"]
	if !ok {
		t.Fatal("token must be denylisted on logout")
	}
	if ttl <= 0 || ttl > 30*time.Minute {
		t.Fatalf("denylist ttl = %v, want within the token's remaining lifetime", ttl)
	}
}

func TestLogoutIgnoresExpiredToken(t *testing.T) {
	f := newAuthFixture()

	identity := &domain.Identity{
		UserID:    "u1",
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := f.svc.Logout(context.Background(), identity); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, ok := f.denylist.revoked["jti-1"]; ok {
		t.Fatal("an already-expired token must not be denylisted")
	}
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "Ada", "ada@example.com", "s3cret-pass")

	identity := &domain.Identity{
		UserID:    user.ID,
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	if err := f.svc.ChangePassword(context.Background(), identity, "wrong", "new-password"); err != domain.ErrInvalidCredentials {
		t.Fatalf("wrong current password: error = %v, want ErrInvalidCredentials", err)
	}

	if err := f.svc.ChangePassword(context.Background(), identity, "s3cret-pass", "new-password"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := f.svc.Login(context.Background(), "ada@example.com", "new-password"); err != nil {
		t.Fatalf("login with new password: error = %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "ada@example.com", "s3cret-pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("login with old password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, ok := f.denylist.revoked["jti-1"]; !ok {
		t.Fatal("presented token must be revoked after a password change")
	}
}

func TestCurrentUserRechecksActive(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "Ada", "ada@example.com", "s3cret-pass")

	got, err := f.svc.CurrentUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("ID = %q, want %q", got.ID, user.ID)
	}

	user.Active = false
	if err := f.users.Update(context.Background(), user); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if _, err := f.svc.CurrentUser(context.Background(), user.ID); err != domain.ErrUserInactive {
		t.Fatalf("CurrentUser() error = %v, want ErrUserInactive", err)
	}
}

func TestDefaultProfileName(t *testing.T) {
	if got := defaultProfileName("Ada Lovelace"); got != "Ada" {
		t.Fatalf("defaultProfileName = %q, want Ada", got)
	}
	if got := defaultProfileName("   "); got != "Main" {
		t.Fatalf("defaultProfileName = %q, want Main", got)
	}
}
