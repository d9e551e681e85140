package domain

import (
	"errors"
	"time"
)

var ErrEpisodeNotFound = errors.New("episode not found")
var ErrEpisodeNumberTaken = errors.New("episode number already exists for this season")
var ErrEpisodeContentMismatch = errors.New("episode does not belong to content")

// Episode is a single installment of a SERIES content entry. The pair
// (season_number, episode_number) is unique within its content.
type Episode struct {
	ID              string     `json:"id"`
	ContentID       string     `json:"content_id"`
	SeasonNumber    int        `json:"season_number"`
	EpisodeNumber   int        `json:"episode_number"`
	Title           string     `json:"title"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	ReleaseDate     *time.Time `json:"release_date,omitempty"`
	VideoURL        string     `json:"video_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
