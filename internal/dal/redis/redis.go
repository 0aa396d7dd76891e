package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client represents a Redis client used as a string key/value cache.
type Client struct {
	rdb *redis.Client
}

// MustNewClient creates a new Redis client and pings it.
func MustNewClient(addr string) *Client {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	slog.Info("Redis connected", "addr", addr)

	return &Client{rdb: rdb}
}

// Close closes the underlying connections.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetMany returns the values found for keys. Missing keys are absent from the map.
func (c *Client) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to mget: %w", err)
	}

	found := make(map[string]string, len(keys))
	for i, v := range values {
		if s, ok := v.(string); ok {
			found[keys[i]] = s
		}
	}

	return found, nil
}

// SetMany stores values with the given ttl in one pipeline.
func (c *Client) SetMany(ctx context.Context, values map[string]string, ttl time.Duration) error {
	if len(values) == 0 {
		return nil
	}

	_, err := c.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, k, v, ttl)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set values: %w", err)
	}

	return nil
}
