package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// WatchlistService implements watchlist management scoped to the calling
// user's profiles.
type WatchlistService struct {
	watchlist ports.WatchlistRepository
	profiles  ports.ProfileRepository
	contents  ports.ContentRepository
	log       zerolog.Logger
}

func NewWatchlistService(
	watchlist ports.WatchlistRepository,
	profiles ports.ProfileRepository,
	contents ports.ContentRepository,
	log zerolog.Logger,
) *WatchlistService {
	return &WatchlistService{watchlist: watchlist, profiles: profiles, contents: contents, log: log}
}

// ListMine returns the watchlist entries of one owned profile, or of all the
// user's profiles when profileID is empty.
func (s *WatchlistService) ListMine(ctx context.Context, userID, profileID string) ([]*domain.WatchlistItem, error) {
	if profileID != "" {
		if err := s.ensureOwnedProfile(ctx, userID, profileID); err != nil {
			return nil, err
		}
		return s.watchlist.ListByProfiles(ctx, []string{profileID})
	}

	profiles, err := s.profiles.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	return s.watchlist.ListByProfiles(ctx, ids)
}

// AddMine bookmarks a content for an owned profile. Each profile holds a
// content at most once; the unique index surfaces duplicates as
// domain.ErrAlreadyInWatchlist.
func (s *WatchlistService) AddMine(ctx context.Context, userID, profileID, contentID string) (*domain.WatchlistItem, error) {
	if err := s.ensureOwnedProfile(ctx, userID, profileID); err != nil {
		return nil, err
	}
	if _, err := s.contents.FindByID(ctx, contentID); err != nil {
		return nil, err
	}

	item := &domain.WatchlistItem{
		ProfileID: profileID,
		ContentID: contentID,
		AddedAt:   time.Now().UTC(),
	}
	created, err := s.watchlist.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("profile_id", profileID).Str("content_id", contentID).Msg("watchlist item added")
	return created, nil
}

func (s *WatchlistService) RemoveMine(ctx context.Context, userID, watchlistID string) error {
	item, err := s.watchlist.FindByID(ctx, watchlistID)
	if err != nil {
		return err
	}
	if err := s.ensureOwnedProfile(ctx, userID, item.ProfileID); err != nil {
		return domain.ErrWatchlistItemNotFound
	}
	return s.watchlist.Delete(ctx, watchlistID)
}

func (s *WatchlistService) ensureOwnedProfile(ctx context.Context, userID, profileID string) error {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		return err
	}
	if profile.UserID != userID {
		return domain.ErrProfileNotFound
	}
	return nil
}
