package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// EpisodeService implements episode reads and admin CRUD.
type EpisodeService struct {
	episodes ports.EpisodeRepository
	contents ports.ContentRepository
	log      zerolog.Logger
}

func NewEpisodeService(episodes ports.EpisodeRepository, contents ports.ContentRepository, log zerolog.Logger) *EpisodeService {
	return &EpisodeService{episodes: episodes, contents: contents, log: log}
}

// ListByContent returns the episodes of a content entry, optionally filtered
// by season (season <= 0 means all seasons).
func (s *EpisodeService) ListByContent(ctx context.Context, contentID string, season int) ([]*domain.Episode, error) {
	if _, err := s.contents.FindByID(ctx, contentID); err != nil {
		return nil, err
	}
	return s.episodes.ListByContent(ctx, contentID, season)
}

func (s *EpisodeService) Get(ctx context.Context, id string) (*domain.Episode, error) {
	return s.episodes.FindByID(ctx, id)
}

func (s *EpisodeService) Create(ctx context.Context, contentID string, in ports.EpisodeInput) (*domain.Episode, error) {
	if _, err := s.contents.FindByID(ctx, contentID); err != nil {
		return nil, err
	}
	taken, err := s.episodes.ExistsNumber(ctx, contentID, in.SeasonNumber, in.EpisodeNumber, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEpisodeNumberTaken
	}

	now := time.Now().UTC()
	episode := &domain.Episode{
		ContentID:       contentID,
		SeasonNumber:    in.SeasonNumber,
		EpisodeNumber:   in.EpisodeNumber,
		Title:           in.Title,
		DurationMinutes: in.DurationMinutes,
		ReleaseDate:     in.ReleaseDate,
		VideoURL:        in.VideoURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	created, err := s.episodes.Create(ctx, episode)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("episode_id", created.ID).Str("content_id", contentID).Msg("episode created")
	return created, nil
}

func (s *EpisodeService) Update(ctx context.Context, id string, in ports.EpisodeInput) (*domain.Episode, error) {
	episode, err := s.episodes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.episodes.ExistsNumber(ctx, episode.ContentID, in.SeasonNumber, in.EpisodeNumber, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEpisodeNumberTaken
	}

	episode.SeasonNumber = in.SeasonNumber
	episode.EpisodeNumber = in.EpisodeNumber
	episode.Title = in.Title
	episode.DurationMinutes = in.DurationMinutes
	episode.ReleaseDate = in.ReleaseDate
	episode.VideoURL = in.VideoURL
	episode.UpdatedAt = time.Now().UTC()

	if err := s.episodes.Update(ctx, episode); err != nil {
		return nil, err
	}
	return episode, nil
}

func (s *EpisodeService) Delete(ctx context.Context, id string) error {
	if _, err := s.episodes.FindByID(ctx, id); err != nil {
		return err
	}
	return s.episodes.Delete(ctx, id)
}
