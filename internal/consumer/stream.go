package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/config"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

const (
	// Batch size for reading messages
	batchSize = 100

	// Block duration when waiting for new messages
	blockDuration = 1 * time.Second

	// Pause after a failed read
	retryDelay = 1 * time.Second
)

// Broadcaster receives decoded selection updates
type Broadcaster interface {
	Broadcast(update models.SelectionUpdate)
}

// StreamConsumer relays selection updates from a Redis stream to the hub.
// Every gateway instance reads with its own consumer group so all
// instances see every update.
type StreamConsumer struct {
	redis  *redis.Client
	out    Broadcaster
	cfg    config.StreamConfig
	logger *logrus.Entry
}

// NewStreamConsumer creates a new stream consumer
func NewStreamConsumer(redisClient *redis.Client, out Broadcaster, cfg config.StreamConfig, logger *logrus.Entry) *StreamConsumer {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &StreamConsumer{
		redis: redisClient,
		out:   out,
		cfg:   cfg,
		logger: logger.WithFields(logrus.Fields{
			"component": "stream_consumer",
			"stream":    cfg.SelectionStream,
		}),
	}
}

// Start consumes the selection stream until ctx is cancelled
func (sc *StreamConsumer) Start(ctx context.Context) error {
	if err := sc.createConsumerGroup(ctx); err != nil {
		return err
	}
	sc.logger.Info("✓ Stream consumer started")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		streams, err := sc.redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    sc.cfg.ConsumerGroup,
			Consumer: sc.cfg.ConsumerID,
			Streams:  []string{sc.cfg.SelectionStream, ">"},
			Count:    batchSize,
			Block:    blockDuration,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			sc.logger.WithError(err).Warn("⚠️  Stream read error")
			time.Sleep(retryDelay)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				sc.processMessage(ctx, stream.Stream, message)
			}
		}
	}
}

// createConsumerGroup creates the consumer group, starting at new entries.
// An existing group is fine.
func (sc *StreamConsumer) createConsumerGroup(ctx context.Context) error {
	err := sc.redis.XGroupCreateMkStream(ctx, sc.cfg.SelectionStream, sc.cfg.ConsumerGroup, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("creating consumer group %s: %w", sc.cfg.ConsumerGroup, err)
	}
	return nil
}

// processMessage decodes, relays and acknowledges a single entry.
// Malformed entries are acknowledged and dropped.
func (sc *StreamConsumer) processMessage(ctx context.Context, stream string, msg redis.XMessage) {
	update, err := Decode(msg.Values)
	if err != nil {
		sc.logger.WithFields(logrus.Fields{"id": msg.ID, "error": err}).Warn("⚠️  Dropping malformed update")
	} else {
		sc.out.Broadcast(update)
	}

	if err := sc.redis.XAck(ctx, stream, sc.cfg.ConsumerGroup, msg.ID).Err(); err != nil {
		sc.logger.WithFields(logrus.Fields{"id": msg.ID, "error": err}).Warn("⚠️  Failed to ack message")
	}
}

// Decode parses the fields of a stream entry into a selection update
func Decode(values map[string]interface{}) (models.SelectionUpdate, error) {
	data, ok := values["data"].(string)
	if !ok {
		return models.SelectionUpdate{}, errors.New("missing data field")
	}

	var update models.SelectionUpdate
	if err := json.Unmarshal([]byte(data), &update); err != nil {
		return models.SelectionUpdate{}, fmt.Errorf("parsing update: %w", err)
	}
	if update.SessionID == "" {
		return models.SelectionUpdate{}, errors.New("missing session id")
	}
	return update, nil
}
