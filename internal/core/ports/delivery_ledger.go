package ports

import "context"

// DeliveryLedger remembers ids of messages that were already turned into orders,
// for a bounded retention period.
type DeliveryLedger interface {
	Seen(ctx context.Context, messageID string) (bool, error)
	Remember(ctx context.Context, messageID string) error
}
