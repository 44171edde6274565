package cache

import (
	"context"
	"fmt"
	"time"

	"auditorium-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const (
	connectRetries = 3
	retryInterval  = time.Second
)

// NewRedis connects to redis and pings it, retrying a few times while the
// server comes up.
func NewRedis(ctx context.Context, cfg utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	var lastErr error
	for attempt := 0; attempt <= connectRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				client.Close()
				return nil, ctx.Err()
			case <-time.After(retryInterval):
			}
		}

		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
	}

	client.Close()
	return nil, fmt.Errorf("connect to redis after %d attempts: %w", connectRetries+1, lastErr)
}
