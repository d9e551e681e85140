package ports

import (
	"context"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	Name           string
	Avatar         string
	MaturityRating string
}

// ProfileRepository defines persistence operations for viewing profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Profile, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, p *domain.Profile) error
	Delete(ctx context.Context, id string) error
}

// ProfileService implements self-service profile management. Every operation
// is scoped to the calling user.
type ProfileService interface {
	ListMine(ctx context.Context, userID string) ([]*domain.Profile, error)
	CreateMine(ctx context.Context, userID string, in ProfileInput) (*domain.Profile, error)
	UpdateMine(ctx context.Context, userID, profileID string, in ProfileInput) (*domain.Profile, error)
	DeleteMine(ctx context.Context, userID, profileID string) error
}
