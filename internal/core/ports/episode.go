package ports

import (
	"context"
	"time"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

// EpisodeInput carries the editable episode fields.
type EpisodeInput struct {
	SeasonNumber    int
	EpisodeNumber   int
	Title           string
	DurationMinutes int
	ReleaseDate     *time.Time
	VideoURL        string
}

// EpisodeRepository defines persistence operations for episodes.
type EpisodeRepository interface {
	Create(ctx context.Context, e *domain.Episode) (*domain.Episode, error)
	FindByID(ctx context.Context, id string) (*domain.Episode, error)
	ListByContent(ctx context.Context, contentID string, season int) ([]*domain.Episode, error)
	// ExistsNumber reports whether another episode of the content already uses
	// the (season, episode) pair. excludeID skips the episode being updated.
	ExistsNumber(ctx context.Context, contentID string, season, episode int, excludeID string) (bool, error)
	Update(ctx context.Context, e *domain.Episode) error
	Delete(ctx context.Context, id string) error
	DeleteByContent(ctx context.Context, contentID string) error
}

// EpisodeService implements episode reads and admin CRUD.
type EpisodeService interface {
	ListByContent(ctx context.Context, contentID string, season int) ([]*domain.Episode, error)
	Get(ctx context.Context, id string) (*domain.Episode, error)
	Create(ctx context.Context, contentID string, in EpisodeInput) (*domain.Episode, error)
	Update(ctx context.Context, id string, in EpisodeInput) (*domain.Episode, error)
	Delete(ctx context.Context, id string) error
}
