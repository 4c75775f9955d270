package redis

import (
	"context"
	"time"

	"fxcache/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewClient builds the single shared Redis client. Connections are dialed lazily
// and re-dialed on loss; per-command retries back off up to 5s and give up after
// 10 attempts, surfacing the connection error to the caller.
func NewClient(cfg config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:            cfg.Addr(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     30 * time.Second,
		MaxRetries:      10,
		MinRetryBackoff: time.Second,
		MaxRetryBackoff: 5 * time.Second,
	})
}

// Ping round-trips the connection.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
