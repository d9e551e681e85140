package ports

import (
	"context"
	"time"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

// StartPlaybackInput carries the data needed to open a viewing session.
type StartPlaybackInput struct {
	ProfileID       string
	ContentID       string
	EpisodeID       string // optional
	Device          string // optional
	DurationSeconds int    // optional, known media length
}

// PlaybackProgressEvent is a progress beacon emitted periodically by players.
// Events for the same playback must be applied in order. UserID is the
// authenticated caller; beacons for playbacks the user does not own are
// dropped.
type PlaybackProgressEvent struct {
	UserID          string
	PlaybackID      string
	ProgressSeconds int
	Timestamp       time.Time
	Source          string // e.g. "web", "tv", "mobile"
}

// ListPlaybacksFilter carries query parameters for playback listings.
type ListPlaybacksFilter struct {
	ProfileID string // optional: scope to one profile
	Completed *bool  // optional: filter by completion
	Page      int    // 1-based
	Limit     int    // capped by the service
}

// PlaybackRepository defines persistence operations for playbacks.
type PlaybackRepository interface {
	Create(ctx context.Context, p *domain.Playback) (*domain.Playback, error)
	FindByID(ctx context.Context, id string) (*domain.Playback, error)
	// FindOpen returns the not-yet-completed playback for the exact
	// (profile, device, content, episode) tuple, or domain.ErrPlaybackNotFound.
	FindOpen(ctx context.Context, profileID, device, contentID, episodeID string) (*domain.Playback, error)
	ListByProfiles(ctx context.Context, profileIDs []string, filter ListPlaybacksFilter) ([]*domain.Playback, int64, error)
	Update(ctx context.Context, p *domain.Playback) error
	Delete(ctx context.Context, id string) error
}

// PlaybackService implements playback tracking. Mine-suffixed operations are
// scoped to profiles owned by the calling user.
type PlaybackService interface {
	StartMine(ctx context.Context, userID string, in StartPlaybackInput) (*domain.Playback, error)
	ListMine(ctx context.Context, userID string, filter ListPlaybacksFilter) ([]*domain.Playback, int64, error)
	GetMine(ctx context.Context, userID, playbackID string) (*domain.Playback, error)
	ProgressMine(ctx context.Context, userID, playbackID string, progressSeconds int) (*domain.Playback, error)
	CompleteMine(ctx context.Context, userID, playbackID string) (*domain.Playback, error)
	DeleteMine(ctx context.Context, userID, playbackID string) error
	// ApplyProgressEvent applies an asynchronous progress beacon. Unknown
	// playbacks and stale beacons are dropped with an error for the caller to
	// count, not retry.
	ApplyProgressEvent(ctx context.Context, event PlaybackProgressEvent) error
}
