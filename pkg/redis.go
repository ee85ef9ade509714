package pkg

import (
	"context"
	"fmt"

	"github.com/Rtx09x/Meow-Mocks/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to REDIS_URL and verifies the connection.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}
