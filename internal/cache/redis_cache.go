package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces cached football API responses
const KeyPrefix = "football:api:"

// DefaultTTL applies when the configured TTL is zero
const DefaultTTL = 60 * time.Second

// scanBatch is the COUNT hint used while invalidating
const scanBatch = 100

// ResponseCache stores raw football API GET responses in Redis
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a new response cache
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{
		client: client,
		ttl:    ttl,
	}
}

// Key returns the Redis key of a request path
func Key(path string) string {
	return KeyPrefix + path
}

// Get returns the cached body of path, if any
func (c *ResponseCache) Get(ctx context.Context, path string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, Key(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, true, nil
}

// Set stores the body of path with the cache TTL
func (c *ResponseCache) Set(ctx context.Context, path string, body []byte) error {
	return c.client.Set(ctx, Key(path), body, c.ttl).Err()
}

// Invalidate drops every cached path starting with one of the prefixes
func (c *ResponseCache) Invalidate(ctx context.Context, prefixes ...string) error {
	for _, prefix := range prefixes {
		iter := c.client.Scan(ctx, 0, Key(prefix)+"*", scanBatch).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("scanning %s: %w", prefix, err)
		}
		if len(keys) == 0 {
			continue
		}

		pipe := c.client.Pipeline()
		for _, key := range keys {
			pipe.Del(ctx, key)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("deleting %s: %w", prefix, err)
		}
	}
	return nil
}
