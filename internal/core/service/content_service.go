package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// ContentService implements catalog reads and admin CRUD.
type ContentService struct {
	contents ports.ContentRepository
	episodes ports.EpisodeRepository
	log      zerolog.Logger
}

func NewContentService(contents ports.ContentRepository, episodes ports.EpisodeRepository, log zerolog.Logger) *ContentService {
	return &ContentService{contents: contents, episodes: episodes, log: log}
}

func (s *ContentService) List(ctx context.Context, filter ports.ListContentsFilter) ([]*domain.Content, int64, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return s.contents.List(ctx, filter)
}

// PublicList serves the unauthenticated teaser catalog: same filters, but
// video URLs are stripped.
func (s *ContentService) PublicList(ctx context.Context, filter ports.ListContentsFilter) ([]*domain.Content, int64, error) {
	items, total, err := s.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	teasers := make([]*domain.Content, 0, len(items))
	for _, c := range items {
		teaser := *c
		teaser.VideoURL = ""
		teasers = append(teasers, &teaser)
	}
	return teasers, total, nil
}

func (s *ContentService) Get(ctx context.Context, id string) (*domain.Content, error) {
	return s.contents.FindByID(ctx, id)
}

func (s *ContentService) Create(ctx context.Context, in ports.ContentInput) (*domain.Content, error) {
	if !domain.ValidContentType(in.Type) {
		return nil, domain.ErrInvalidContentType
	}

	now := time.Now().UTC()
	content := &domain.Content{
		Title:           in.Title,
		Type:            in.Type,
		Description:     in.Description,
		ReleaseYear:     in.ReleaseYear,
		DurationSeconds: in.DurationSeconds,
		AgeRating:       in.AgeRating,
		Genres:          in.Genres,
		VideoURL:        in.VideoURL,
		Thumbnail:       in.Thumbnail,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	created, err := s.contents.Create(ctx, content)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("content_id", created.ID).Str("title", created.Title).Msg("content created")
	return created, nil
}

func (s *ContentService) Update(ctx context.Context, id string, in ports.ContentInput) (*domain.Content, error) {
	if !domain.ValidContentType(in.Type) {
		return nil, domain.ErrInvalidContentType
	}
	content, err := s.contents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content.Title = in.Title
	content.Type = in.Type
	content.Description = in.Description
	content.ReleaseYear = in.ReleaseYear
	content.DurationSeconds = in.DurationSeconds
	content.AgeRating = in.AgeRating
	content.Genres = in.Genres
	content.VideoURL = in.VideoURL
	content.Thumbnail = in.Thumbnail
	content.UpdatedAt = time.Now().UTC()

	if err := s.contents.Update(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// Delete removes a catalog entry and cascades to its episodes.
func (s *ContentService) Delete(ctx context.Context, id string) error {
	if _, err := s.contents.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.episodes.DeleteByContent(ctx, id); err != nil {
		return err
	}
	if err := s.contents.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("content_id", id).Msg("content deleted")
	return nil
}
