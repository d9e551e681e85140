package ports

import (
	"context"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

// ListUsersFilter carries query parameters for the admin user listing.
type ListUsersFilter struct {
	Search         string // optional: partial match on name or email
	Active         *bool  // optional: filter by active flag
	IncludeDeleted bool   // include soft-deleted accounts
	Page           int    // 1-based
	Limit          int    // capped by the service
}

// UpdateUserInput holds the admin-editable account fields. Nil means keep.
type UpdateUserInput struct {
	Name   *string
	Email  *string
	Active *bool
	Role   *string
}

// UserRepository defines persistence operations for accounts. The password
// hash never leaves the repository boundary except inside *domain.User values
// consumed by the auth service.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}

// UserService implements admin account management.
type UserService interface {
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Deactivate(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*domain.User, error)
	SetPassword(ctx context.Context, id, newPassword string) error
}
