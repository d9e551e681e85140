package ports

import (
	"context"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

// ListContentsFilter carries query parameters for catalog listings.
type ListContentsFilter struct {
	Search      string // optional: partial match on title
	Type        string // optional: MOVIE, SERIES, VIDEOS
	Genre       string // optional: partial match on genres
	ReleaseYear int    // optional: exact match
	Page        int    // 1-based
	Limit       int    // capped by the service
}

// ContentInput carries the editable catalog fields.
type ContentInput struct {
	Title           string
	Type            domain.ContentType
	Description     string
	ReleaseYear     int
	DurationSeconds int
	AgeRating       string
	Genres          string
	VideoURL        string
	Thumbnail       string
}

// ContentRepository defines persistence operations for catalog entries.
type ContentRepository interface {
	Create(ctx context.Context, c *domain.Content) (*domain.Content, error)
	FindByID(ctx context.Context, id string) (*domain.Content, error)
	List(ctx context.Context, filter ListContentsFilter) ([]*domain.Content, int64, error)
	Update(ctx context.Context, c *domain.Content) error
	Delete(ctx context.Context, id string) error
}

// ContentService implements catalog reads and admin CRUD. PublicList strips
// video URLs for unauthenticated teaser browsing.
type ContentService interface {
	List(ctx context.Context, filter ListContentsFilter) ([]*domain.Content, int64, error)
	PublicList(ctx context.Context, filter ListContentsFilter) ([]*domain.Content, int64, error)
	Get(ctx context.Context, id string) (*domain.Content, error)
	Create(ctx context.Context, in ContentInput) (*domain.Content, error)
	Update(ctx context.Context, id string, in ContentInput) (*domain.Content, error)
	Delete(ctx context.Context, id string) error
}
