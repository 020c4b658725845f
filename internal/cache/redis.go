package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"estimator/internal/model"
)

// RangesKey is the Redis key holding the cached ranges.
const RangesKey = "estimator:ranges"

// NewRedisClient creates a Redis client and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisCache shares the ranges between service instances, so one
// invalidation reaches all of them.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ RangeCache = (*RedisCache)(nil)

// NewRedisCache creates a Redis-backed range cache
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) (model.Ranges, bool, error) {
	data, err := c.client.Get(ctx, RangesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Ranges{}, false, nil
	}
	if err != nil {
		return model.Ranges{}, false, fmt.Errorf("failed to read cached ranges: %w", err)
	}

	var r model.Ranges
	if err := json.Unmarshal(data, &r); err != nil {
		return model.Ranges{}, false, fmt.Errorf("failed to decode cached ranges: %w", err)
	}
	return r, true, nil
}

func (c *RedisCache) Set(ctx context.Context, r model.Ranges) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode ranges: %w", err)
	}
	if err := c.client.Set(ctx, RangesKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache ranges: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, RangesKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate ranges: %w", err)
	}
	return nil
}
