package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// QueueService is the producer side of a job queue.
type QueueService interface {
	PublishMessage(ctx context.Context, msgType string, payload interface{}) error
}

// QueueConfig sizes the worker pool and retry policy of a queue.
type QueueConfig struct {
	Workers    int
	QueueSize  int
	RetryLimit int
	// RetryDelay is the base backoff; the effective delay scales with
	// the attempt count.
	RetryDelay time.Duration
}

// Message is the wire envelope for a queued job.
type Message struct {
	ID        string
	Type      string
	Payload   interface{}
	Attempts  int
	Timestamp time.Time
}

// ParsePayload coerces a message payload into the job's own type. Payloads
// arrive as T when published in process and as map[string]interface{} or
// json.RawMessage after a round trip through Redis.
func ParsePayload[T any](payload interface{}) (*T, error) {
	if p, ok := payload.(*T); ok {
		return p, nil
	}
	if p, ok := payload.(T); ok {
		return &p, nil
	}

	var raw []byte
	switch p := payload.(type) {
	case json.RawMessage:
		raw = p
	case map[string]interface{}:
		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		raw = b
	default:
		return nil, fmt.Errorf("unsupported payload type %T", payload)
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &out, nil
}
