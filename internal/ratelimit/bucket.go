package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRateLimited is returned when the bucket has no tokens left
var ErrRateLimited = errors.New("rate limited")

// TokenBucket implements a token bucket rate limiter using Redis.
// The bucket is created full and refills completely when its key expires,
// once per refill period.
type TokenBucket struct {
	client       *redis.Client
	key          string
	maxTokens    int           // Maximum tokens in bucket
	refillPeriod time.Duration // How often the bucket refills
}

// NewTokenBucket creates a bucket allowing maxTokens operations per minute
func NewTokenBucket(client *redis.Client, name string, maxTokens int) *TokenBucket {
	return &TokenBucket{
		client:       client,
		key:          "scout:ratelimit:" + name,
		maxTokens:    maxTokens,
		refillPeriod: time.Minute,
	}
}

// Allow consumes a token, returning ErrRateLimited when none is left
func (tb *TokenBucket) Allow(ctx context.Context) error {
	if tb.maxTokens <= 0 {
		return nil
	}

	// Create the bucket full if it doesn't exist; the TTL drives refills
	if err := tb.client.SetNX(ctx, tb.key, tb.maxTokens, tb.refillPeriod).Err(); err != nil {
		return fmt.Errorf("failed to initialize bucket: %w", err)
	}

	tokens, err := tb.client.Decr(ctx, tb.key).Result()
	if err != nil {
		return fmt.Errorf("failed to decrement tokens: %w", err)
	}

	// If tokens went negative, we're rate limited
	if tokens < 0 {
		// Restore the token we tried to take
		tb.client.Incr(ctx, tb.key)
		return ErrRateLimited
	}
	return nil
}

// Tokens returns the current token count (for monitoring)
func (tb *TokenBucket) Tokens(ctx context.Context) (int, error) {
	tokens, err := tb.client.Get(ctx, tb.key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return tb.maxTokens, nil
		}
		return 0, fmt.Errorf("failed to get tokens: %w", err)
	}
	return tokens, nil
}

// Reset refills the bucket immediately
func (tb *TokenBucket) Reset(ctx context.Context) error {
	return tb.client.Del(ctx, tb.key).Err()
}
