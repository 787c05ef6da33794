package ports

import (
	"context"
	"time"
)

// Notification is one message received from the ingestion transport.
type Notification struct {
	// ID is the transport message id, used for duplicate detection. May be empty.
	ID string
	// Body is the raw envelope.
	Body []byte
	// Handle identifies the delivery for Acknowledge and Release.
	Handle uint64
}

// NotificationSource is an at-least-once inbound message transport.
type NotificationSource interface {
	// ReceiveBatch waits up to wait for at least one message and returns at most maxMessages.
	// An empty result with a nil error means the wait elapsed.
	ReceiveBatch(ctx context.Context, maxMessages int, wait time.Duration) ([]Notification, error)

	// Acknowledge removes a processed message from the transport.
	Acknowledge(ctx context.Context, handle uint64) error

	// Release hands a failed message back to the transport for redelivery or dead-lettering.
	Release(ctx context.Context, handle uint64) error
}
