package queue

import "context"

// Job consumes one message type from the queue. A returned error triggers
// the retry/DLQ policy configured on the queue.
type Job interface {
	// Name identifies the job in logs.
	Name() string

	// Type is the message type this job handles.
	Type() string

	// Handle processes one message payload.
	Handle(ctx context.Context, payload interface{}) error
}
