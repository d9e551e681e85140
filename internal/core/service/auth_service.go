package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamvault/streaming-api/internal/api/metrics"
	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// dummyHash is compared against when the email is unknown, so a login attempt
// costs one bcrypt verification whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements registration, login, and token lifecycle.
type AuthService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	hasher   *PasswordHasher
	issuer   *TokenIssuer
	denylist TokenDenylist
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	hasher *PasswordHasher,
	issuer *TokenIssuer,
	denylist TokenDenylist,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		profiles: profiles,
		hasher:   hasher,
		issuer:   issuer,
		denylist: denylist,
		log:      log,
	}
}

// Register creates a member account plus a default viewing profile named
// after the user's first name.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		Role:         domain.RoleMember,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:    created.ID,
		Name:      defaultProfileName(created.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.profiles.Create(ctx, profile); err != nil {
		// The account is already usable; the member can create a profile later.
		s.log.Warn().Err(err).Str("user_id", created.ID).Msg("default profile creation failed")
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies credentials and mints an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Burn a verification anyway so the unknown-email path costs the same.
		s.hasher.Verify(password, dummyHash)
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if !user.CanAuthenticate() {
		metrics.LoginsTotal.WithLabelValues("inactive").Inc()
		return nil, domain.ErrUserInactive
	}

	token, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")

	return &ports.LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
		User:        user,
	}, nil
}

// Logout denylists the presented token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, identity *domain.Identity) error {
	ttl := time.Until(identity.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, identity.TokenID, ttl); err != nil {
		return err
	}
	metrics.TokensRevokedTotal.WithLabelValues("logout").Inc()
	s.log.Info().Str("user_id", identity.UserID).Msg("token revoked on logout")
	return nil
}

// ChangePassword verifies the current password, stores the new hash, and
// revokes the presented token.
func (s *AuthService) ChangePassword(ctx context.Context, identity *domain.Identity, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if ttl := time.Until(identity.ExpiresAt); ttl > 0 {
		if err := s.denylist.Revoke(ctx, identity.TokenID, ttl); err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("token revocation after password change failed")
		} else {
			metrics.TokensRevokedTotal.WithLabelValues("password_change").Inc()
		}
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

// CurrentUser loads the authenticated account and re-checks that it is still
// active; a token can outlive a deactivation.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanAuthenticate() {
		return nil, domain.ErrUserInactive
	}
	return user, nil
}

// defaultProfileName derives the initial profile name from the account name.
func defaultProfileName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "Main"
	}
	return fields[0]
}
