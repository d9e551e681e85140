package ports

import (
	"context"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

// WatchlistRepository defines persistence operations for watchlist entries.
type WatchlistRepository interface {
	Create(ctx context.Context, w *domain.WatchlistItem) (*domain.WatchlistItem, error)
	FindByID(ctx context.Context, id string) (*domain.WatchlistItem, error)
	ListByProfiles(ctx context.Context, profileIDs []string) ([]*domain.WatchlistItem, error)
	Delete(ctx context.Context, id string) error
}

// WatchlistService implements watchlist management scoped to profiles owned
// by the calling user.
type WatchlistService interface {
	ListMine(ctx context.Context, userID, profileID string) ([]*domain.WatchlistItem, error)
	AddMine(ctx context.Context, userID, profileID, contentID string) (*domain.WatchlistItem, error)
	RemoveMine(ctx context.Context, userID, watchlistID string) error
}
