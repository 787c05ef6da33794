package ports

import "context"

// Event is a lifecycle notification destined for downstream consumers.
// Implementations must be JSON-serializable.
type Event interface {
	EventType() string
}

// EventPublisher delivers events to a named destination on the message bus.
// A nil error only means the bus accepted the message.
type EventPublisher interface {
	Publish(ctx context.Context, event Event, destination string) error
}
