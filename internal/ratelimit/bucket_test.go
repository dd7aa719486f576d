package ratelimit_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/ratelimit"
)

func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping Redis test in short mode")
	}

	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6380"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", addr, err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestTokenBucket_Allow(t *testing.T) {
	client := redisClient(t)
	ctx := context.Background()

	bucket := ratelimit.NewTokenBucket(client, "test-sync", 2)
	bucket.Reset(ctx)
	t.Cleanup(func() { bucket.Reset(context.Background()) })

	for i := 0; i < 2; i++ {
		if err := bucket.Allow(ctx); err != nil {
			t.Fatalf("call %d: expected token, got %v", i+1, err)
		}
	}
	if err := bucket.Allow(ctx); !errors.Is(err, ratelimit.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	tokens, err := bucket.Tokens(ctx)
	if err != nil || tokens != 0 {
		t.Errorf("expected 0 tokens after restore, got %d (%v)", tokens, err)
	}

	bucket.Reset(ctx)
	if err := bucket.Allow(ctx); err != nil {
		t.Errorf("expected token after reset, got %v", err)
	}
}

func TestTokenBucket_ZeroLimitDisables(t *testing.T) {
	bucket := ratelimit.NewTokenBucket(nil, "disabled", 0)
	if err := bucket.Allow(context.Background()); err != nil {
		t.Errorf("expected unlimited bucket, got %v", err)
	}
}
