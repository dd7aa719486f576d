package dedup

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// ErrDuplicatePrediction is returned when the same user already predicted
// the match within the dedup window
var ErrDuplicatePrediction = errors.New("duplicate prediction")

// Deduplicator gates prediction submissions using Redis
type Deduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDeduplicator creates a new deduplicator
func NewDeduplicator(client *redis.Client, ttl time.Duration) *Deduplicator {
	return &Deduplicator{
		client: client,
		ttl:    ttl,
	}
}

// Claim reserves the (email, match) pair, returning ErrDuplicatePrediction
// when it is already reserved
func (d *Deduplicator) Claim(ctx context.Context, p models.PredictionInput) error {
	ok, err := d.client.SetNX(ctx, Key(p), "1", d.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to set dedup key: %w", err)
	}
	if !ok {
		return ErrDuplicatePrediction
	}
	return nil
}

// Release drops a reservation so a failed submission can be retried
func (d *Deduplicator) Release(ctx context.Context, p models.PredictionInput) error {
	return d.client.Del(ctx, Key(p)).Err()
}

// Key creates the dedup key of a prediction.
// Key format: scout:dedup:prediction:{match}:{email_hash}
func Key(p models.PredictionInput) string {
	email := strings.ToLower(strings.TrimSpace(p.UserEmail))
	hash := sha256.Sum256([]byte(email))
	return fmt.Sprintf("scout:dedup:prediction:%d:%x", p.Match, hash[:8])
}
