package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

const scanBatchSize = 100

type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	DeletePattern(ctx context.Context, pattern string) error
}

func SessionKey(sessionID string) string {
	return fmt.Sprintf("meow:session:%s", sessionID)
}

func ResultKey(sessionID string) string {
	return fmt.Sprintf("meow:result:%s", sessionID)
}

// KeyPattern matches every entry cached for a session.
func KeyPattern(sessionID string) string {
	return fmt.Sprintf("meow:*:%s", sessionID)
}

type redisCache struct {
	client *redis.Client
	logger *slog.Logger
}

// Set stores value as JSON. A zero ttl keeps the key until deleted.
func (r *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value for %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Error("Failed to write cache entry", "key", key, "error", err)
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

// Get decodes the value stored at key into dest, or returns ErrCacheMiss.
func (r *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		r.logger.Warn("Discarding undecodable cache entry", "key", key, "error", err)
		_ = r.client.Del(ctx, key).Err()
		return ErrCacheMiss
	}
	return nil
}

// DeletePattern removes every key matching pattern using SCAN, never KEYS.
func (r *redisCache) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	batch := make([]string, 0, scanBatchSize)
	deleted := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := r.client.Del(ctx, batch...).Err(); err != nil {
			return err
		}
		deleted += len(batch)
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatchSize {
			if err := flush(); err != nil {
				return fmt.Errorf("failed to delete keys matching %s: %w", pattern, err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys matching %s: %w", pattern, err)
	}
	if err := flush(); err != nil {
		return fmt.Errorf("failed to delete keys matching %s: %w", pattern, err)
	}

	r.logger.Debug("Deleted cache entries", "pattern", pattern, "count", deleted)
	return nil
}

func NewRedisCache(client *redis.Client, logger *slog.Logger) CacheService {
	return &redisCache{
		client: client,
		logger: logger,
	}
}
