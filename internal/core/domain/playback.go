package domain

import (
	"errors"
	"time"
)

var ErrPlaybackNotFound = errors.New("playback not found")

// completionThreshold marks a playback completed once progress reaches this
// share of a known duration.
const completionThreshold = 0.95

// Playback is one viewing session of a content (optionally a specific
// episode) by a profile on a device.
type Playback struct {
	ID              string     `json:"id"`
	ProfileID       string     `json:"profile_id"`
	ContentID       string     `json:"content_id"`
	EpisodeID       string     `json:"episode_id,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	ProgressSeconds int        `json:"progress_seconds"`
	Completed       bool       `json:"completed"`
	Device          string     `json:"device,omitempty"`
	DurationSeconds int        `json:"duration_seconds,omitempty"`
	LastSeenAt      *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ApplyProgress clamps progress into [0, duration] and flips Completed when
// progress reaches the completion threshold of a known duration.
func (p *Playback) ApplyProgress(progressSeconds int, now time.Time) {
	if progressSeconds < 0 {
		progressSeconds = 0
	}
	if p.DurationSeconds > 0 && progressSeconds > p.DurationSeconds {
		progressSeconds = p.DurationSeconds
	}
	p.ProgressSeconds = progressSeconds
	p.LastSeenAt = &now

	if p.DurationSeconds > 0 && float64(progressSeconds) >= completionThreshold*float64(p.DurationSeconds) {
		p.MarkCompleted(now)
	}
}

// MarkCompleted finishes the playback.
func (p *Playback) MarkCompleted(now time.Time) {
	p.Completed = true
	if p.EndedAt == nil {
		p.EndedAt = &now
	}
}
