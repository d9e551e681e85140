package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// ProgressDedup provides idempotency checks for playback progress beacons.
// Key format: beacon:<playback_id>:<progress_seconds>:<unix_timestamp>
type ProgressDedup struct {
	client *redis.Client
}

// NewProgressDedup creates a ProgressDedup wrapping the given Redis client.
func NewProgressDedup(client *redis.Client) *ProgressDedup {
	return &ProgressDedup{client: client}
}

// IsDuplicate reports whether this exact beacon has already been processed.
func (d *ProgressDedup) IsDuplicate(ctx context.Context, playbackID string, progressSeconds int, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(playbackID, progressSeconds, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this beacon has been processed (expires after dedupTTL).
func (d *ProgressDedup) Mark(ctx context.Context, playbackID string, progressSeconds int, ts time.Time) error {
	return d.client.Set(ctx, d.key(playbackID, progressSeconds, ts), "1", dedupTTL).Err()
}

func (d *ProgressDedup) key(playbackID string, progressSeconds int, ts time.Time) string {
	return fmt.Sprintf("beacon:%s:%d:%d", playbackID, progressSeconds, ts.Unix())
}
