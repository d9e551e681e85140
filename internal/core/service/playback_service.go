package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamvault/streaming-api/internal/api/metrics"
	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// ProgressDedup abstracts the idempotency store (Redis) for progress beacons.
type ProgressDedup interface {
	IsDuplicate(ctx context.Context, playbackID string, progressSeconds int, ts time.Time) (bool, error)
	Mark(ctx context.Context, playbackID string, progressSeconds int, ts time.Time) error
}

// PlaybackService implements playback tracking.
type PlaybackService struct {
	playbacks ports.PlaybackRepository
	profiles  ports.ProfileRepository
	contents  ports.ContentRepository
	episodes  ports.EpisodeRepository
	dedup     ProgressDedup
	log       zerolog.Logger
}

func NewPlaybackService(
	playbacks ports.PlaybackRepository,
	profiles ports.ProfileRepository,
	contents ports.ContentRepository,
	episodes ports.EpisodeRepository,
	dedup ProgressDedup,
	log zerolog.Logger,
) *PlaybackService {
	return &PlaybackService{
		playbacks: playbacks,
		profiles:  profiles,
		contents:  contents,
		episodes:  episodes,
		dedup:     dedup,
		log:       log,
	}
}

// StartMine opens a viewing session. If an open playback already exists for
// the same (profile, device, content, episode) tuple it is resumed instead of
// duplicated.
func (s *PlaybackService) StartMine(ctx context.Context, userID string, in ports.StartPlaybackInput) (*domain.Playback, error) {
	if _, err := s.ownedProfile(ctx, userID, in.ProfileID); err != nil {
		return nil, err
	}
	content, err := s.contents.FindByID(ctx, in.ContentID)
	if err != nil {
		return nil, err
	}

	duration := in.DurationSeconds
	if in.EpisodeID != "" {
		episode, err := s.episodes.FindByID(ctx, in.EpisodeID)
		if err != nil {
			return nil, err
		}
		if episode.ContentID != in.ContentID {
			return nil, domain.ErrEpisodeContentMismatch
		}
		if duration == 0 && episode.DurationMinutes > 0 {
			duration = episode.DurationMinutes * 60
		}
	} else if duration == 0 {
		duration = content.DurationSeconds
	}

	now := time.Now().UTC()
	if open, err := s.playbacks.FindOpen(ctx, in.ProfileID, in.Device, in.ContentID, in.EpisodeID); err == nil {
		open.LastSeenAt = &now
		open.UpdatedAt = now
		if err := s.playbacks.Update(ctx, open); err != nil {
			return nil, err
		}
		s.log.Debug().Str("playback_id", open.ID).Msg("playback resumed")
		return open, nil
	} else if err != domain.ErrPlaybackNotFound {
		return nil, err
	}

	playback := &domain.Playback{
		ProfileID:       in.ProfileID,
		ContentID:       in.ContentID,
		EpisodeID:       in.EpisodeID,
		StartedAt:       now,
		Device:          in.Device,
		DurationSeconds: duration,
		LastSeenAt:      &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	created, err := s.playbacks.Create(ctx, playback)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("playback_id", created.ID).Str("profile_id", in.ProfileID).Msg("playback started")
	return created, nil
}

func (s *PlaybackService) ListMine(ctx context.Context, userID string, filter ports.ListPlaybacksFilter) ([]*domain.Playback, int64, error) {
	profileIDs, err := s.myProfileIDs(ctx, userID, filter.ProfileID)
	if err != nil {
		return nil, 0, err
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return s.playbacks.ListByProfiles(ctx, profileIDs, filter)
}

func (s *PlaybackService) GetMine(ctx context.Context, userID, playbackID string) (*domain.Playback, error) {
	return s.ownedPlayback(ctx, userID, playbackID)
}

func (s *PlaybackService) ProgressMine(ctx context.Context, userID, playbackID string, progressSeconds int) (*domain.Playback, error) {
	playback, err := s.ownedPlayback(ctx, userID, playbackID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	playback.ApplyProgress(progressSeconds, now)
	playback.UpdatedAt = now

	if err := s.playbacks.Update(ctx, playback); err != nil {
		return nil, err
	}
	return playback, nil
}

func (s *PlaybackService) CompleteMine(ctx context.Context, userID, playbackID string) (*domain.Playback, error) {
	playback, err := s.ownedPlayback(ctx, userID, playbackID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	playback.MarkCompleted(now)
	playback.UpdatedAt = now

	if err := s.playbacks.Update(ctx, playback); err != nil {
		return nil, err
	}
	return playback, nil
}

func (s *PlaybackService) DeleteMine(ctx context.Context, userID, playbackID string) error {
	if _, err := s.ownedPlayback(ctx, userID, playbackID); err != nil {
		return err
	}
	return s.playbacks.Delete(ctx, playbackID)
}

// ApplyProgressEvent applies an asynchronous progress beacon: deduplicates,
// drops stale or post-completion beacons, and otherwise follows the same
// progress rules as the synchronous path.
func (s *PlaybackService) ApplyProgressEvent(ctx context.Context, event ports.PlaybackProgressEvent) error {
	isDup, err := s.dedup.IsDuplicate(ctx, event.PlaybackID, event.ProgressSeconds, event.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("playback_id", event.PlaybackID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.PlaybackEventsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("playback_id", event.PlaybackID).Msg("duplicate beacon skipped")
		return nil
	}
	metrics.PlaybackEventsDedupTotal.WithLabelValues("miss").Inc()

	playback, err := s.playbacks.FindByID(ctx, event.PlaybackID)
	if err != nil {
		return err
	}
	// Same ownership rule as the synchronous path: a beacon may only touch a
	// playback whose profile belongs to the sender.
	if _, err := s.ownedProfile(ctx, event.UserID, playback.ProfileID); err != nil {
		return domain.ErrPlaybackNotFound
	}
	if playback.Completed {
		return nil
	}
	// Workers are sharded per playback, but a replayed batch can still carry
	// beacons older than the last applied one.
	if playback.LastSeenAt != nil && event.Timestamp.Before(*playback.LastSeenAt) {
		return nil
	}

	playback.ApplyProgress(event.ProgressSeconds, event.Timestamp.UTC())
	playback.UpdatedAt = time.Now().UTC()

	if err := s.playbacks.Update(ctx, playback); err != nil {
		return err
	}
	if err := s.dedup.Mark(ctx, event.PlaybackID, event.ProgressSeconds, event.Timestamp); err != nil {
		s.log.Warn().Err(err).Str("playback_id", event.PlaybackID).Msg("dedup mark failed")
	}
	return nil
}

// myProfileIDs resolves which profiles a listing may span. A requested
// profile must belong to the user.
func (s *PlaybackService) myProfileIDs(ctx context.Context, userID, requestedProfileID string) ([]string, error) {
	if requestedProfileID != "" {
		if _, err := s.ownedProfile(ctx, userID, requestedProfileID); err != nil {
			return nil, err
		}
		return []string{requestedProfileID}, nil
	}

	profiles, err := s.profiles.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (s *PlaybackService) ownedProfile(ctx context.Context, userID, profileID string) (*domain.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != userID {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (s *PlaybackService) ownedPlayback(ctx context.Context, userID, playbackID string) (*domain.Playback, error) {
	playback, err := s.playbacks.FindByID(ctx, playbackID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedProfile(ctx, userID, playback.ProfileID); err != nil {
		return nil, domain.ErrPlaybackNotFound
	}
	return playback, nil
}
