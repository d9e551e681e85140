package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")
var ErrProfileNameTaken = errors.New("profile name already in use")
var ErrProfileLimitReached = errors.New("profile limit reached")

// Profile is a viewing profile owned by a user. Playbacks and watchlist
// entries hang off profiles, not users.
type Profile struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Avatar         string    `json:"avatar,omitempty"`
	MaturityRating string    `json:"maturity_rating,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
