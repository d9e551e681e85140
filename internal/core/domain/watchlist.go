package domain

import (
	"errors"
	"time"
)

var ErrWatchlistItemNotFound = errors.New("watchlist item not found")
var ErrAlreadyInWatchlist = errors.New("content already in watchlist")

// WatchlistItem bookmarks a content entry for a profile. A profile may hold
// each content at most once.
type WatchlistItem struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	ContentID string    `json:"content_id"`
	AddedAt   time.Time `json:"added_at"`
}
