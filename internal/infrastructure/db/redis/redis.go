package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Config holds what is needed to reach the Redis instance backing the token
// denylist and the beacon dedup store.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds the readiness ping. Zero means defaultTimeout.
	Timeout time.Duration
}

// Connect builds a Redis client and confirms the server answers a ping before
// handing it back. Callers own the client and must Close it on shutdown.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
