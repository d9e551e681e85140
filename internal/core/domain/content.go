package domain

import (
	"errors"
	"time"
)

// ContentType represents the kind of a catalog entry.
type ContentType string

const (
	ContentMovie  ContentType = "MOVIE"
	ContentSeries ContentType = "SERIES"
	ContentVideos ContentType = "VIDEOS"
)

var ErrContentNotFound = errors.New("content not found")
var ErrInvalidContentType = errors.New("invalid content type")

// ValidContentType reports whether t is a known content type.
func ValidContentType(t ContentType) bool {
	switch t {
	case ContentMovie, ContentSeries, ContentVideos:
		return true
	}
	return false
}

// Content is a catalog entry: a movie, a series (with episodes), or a video
// collection. VideoURL is only exposed to authenticated members.
type Content struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Type            ContentType `json:"type"`
	Description     string      `json:"description,omitempty"`
	ReleaseYear     int         `json:"release_year,omitempty"`
	DurationSeconds int         `json:"duration_seconds,omitempty"`
	AgeRating       string      `json:"age_rating,omitempty"`
	Genres          string      `json:"genres,omitempty"`
	VideoURL        string      `json:"video_url,omitempty"`
	Thumbnail       string      `json:"thumbnail,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
