package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// maxPageSize caps the page size of every listing endpoint.
const maxPageSize = 100

// normalizePage clamps 1-based pagination values.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// UserService implements admin account management.
type UserService struct {
	users  ports.UserRepository
	hasher *PasswordHasher
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, hasher *PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, log: log}
}

func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return s.users.List(ctx, filter)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate soft-deletes the account. Dependent records keep their
// references; the account simply can no longer authenticate.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user.Active = false
	user.DeletedAt = &now
	user.UpdatedAt = now

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deactivated")
	return nil
}

func (s *UserService) Restore(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Active = true
	user.DeletedAt = nil
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Msg("user restored")
	return user, nil
}

func (s *UserService) SetPassword(ctx context.Context, id, newPassword string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()

	return s.users.Update(ctx, user)
}
