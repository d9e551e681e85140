package ports

import (
	"context"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult is what a successful credential check yields.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // seconds until expiry
	User        *domain.User
}

// AuthService implements registration, login, and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout revokes the presented token until its natural expiry.
	Logout(ctx context.Context, identity *domain.Identity) error
	// ChangePassword verifies the current password, stores the new hash, and
	// revokes the presented token.
	ChangePassword(ctx context.Context, identity *domain.Identity, currentPassword, newPassword string) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
