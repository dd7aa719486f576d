package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// maxStreamLen caps the selection stream; older entries are trimmed
const maxStreamLen = 10000

// StreamPublisher publishes selection updates to a Redis stream
type StreamPublisher struct {
	client *redis.Client
	stream string
}

// NewStreamPublisher creates a new stream publisher
func NewStreamPublisher(client *redis.Client, stream string) *StreamPublisher {
	return &StreamPublisher{
		client: client,
		stream: stream,
	}
}

// SelectionChanged publishes a selection update (implements scout.Notifier)
func (p *StreamPublisher) SelectionChanged(ctx context.Context, update models.SelectionUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("marshaling selection update: %w", err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: Values(update, data),
	}).Err()
}

// Values builds the stream entry fields of an update
func Values(update models.SelectionUpdate, data []byte) map[string]interface{} {
	return map[string]interface{}{
		"data":       string(data),
		"session_id": update.SessionID,
		"kind":       update.Kind,
	}
}
