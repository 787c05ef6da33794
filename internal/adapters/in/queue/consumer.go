// Package queue turns "order created" notifications from the ingestion
// transport into production orders.
//
// The consumer cycles through three states:
//
//	Polling ──batch──> ProcessingBatch ──done──> Polling
//	   │
//	   └──receive error──> Backoff ──delay──> Polling
//
// Each message is handled on its own. A failed message is released back to the
// transport and the batch moves on; only successfully handled messages are
// acknowledged.
package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"
)

const (
	DefaultMaxMessages  = 10
	DefaultWaitTime     = 20 * time.Second
	DefaultBackoffDelay = 5 * time.Second
)

// Config tunes the polling loop. Zero fields take the defaults above.
type Config struct {
	MaxMessages  int
	WaitTime     time.Duration
	BackoffDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxMessages <= 0 {
		c.MaxMessages = DefaultMaxMessages
	}
	if c.WaitTime <= 0 {
		c.WaitTime = DefaultWaitTime
	}
	if c.BackoffDelay <= 0 {
		c.BackoffDelay = DefaultBackoffDelay
	}
	return c
}

type orderCreator interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type OrderCreatedConsumer struct {
	source  ports.NotificationSource
	ledger  ports.DeliveryLedger
	creator orderCreator
	cfg     Config
	logger  *slog.Logger
}

func NewOrderCreatedConsumer(
	source ports.NotificationSource,
	ledger ports.DeliveryLedger,
	creator orderCreator,
	cfg Config,
	logger *slog.Logger,
) *OrderCreatedConsumer {
	return &OrderCreatedConsumer{
		source:  source,
		ledger:  ledger,
		creator: creator,
		cfg:     cfg.withDefaults(),
		logger:  logger.With("component", "order_created_consumer"),
	}
}

// Run polls until ctx is cancelled and then returns nil. Transport errors never
// end the loop.
func (c *OrderCreatedConsumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "order consumer started",
		"max_messages", c.cfg.MaxMessages,
		"wait", c.cfg.WaitTime,
	)
	defer c.logger.Info("order consumer stopped")

	for ctx.Err() == nil {
		batch, err := c.source.ReceiveBatch(ctx, c.cfg.MaxMessages, c.cfg.WaitTime)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.ErrorContext(ctx, "receiving notifications failed, backing off",
				"error", err,
				"backoff", c.cfg.BackoffDelay,
			)
			if !sleep(ctx, c.cfg.BackoffDelay) {
				return nil
			}
			continue
		}

		c.processBatch(ctx, batch)
	}

	return nil
}

func (c *OrderCreatedConsumer) processBatch(ctx context.Context, batch []ports.Notification) {
	for _, n := range batch {
		// the rest of the batch stays unacknowledged and is redelivered
		if ctx.Err() != nil {
			return
		}

		if err := c.process(ctx, n); err != nil {
			c.logger.ErrorContext(ctx, "notification failed, releasing it",
				"message_id", n.ID,
				"error", err,
			)
			if releaseErr := c.source.Release(ctx, n.Handle); releaseErr != nil {
				c.logger.WarnContext(ctx, "releasing notification failed",
					"message_id", n.ID,
					"error", releaseErr,
				)
			}
		}
	}
}

func (c *OrderCreatedConsumer) process(ctx context.Context, n ports.Notification) error {
	env, err := decodeEnvelope(n.Body)
	if err != nil {
		return err
	}

	messageID := env.MessageID
	if messageID == "" {
		messageID = n.ID
	}
	log := c.logger.With("message_id", messageID)

	seen, err := c.ledger.Seen(ctx, messageID)
	if err != nil {
		// creation is idempotent on orderRef, so a ledger outage is not fatal
		log.WarnContext(ctx, "delivery ledger lookup failed", "error", err)
	}
	if seen {
		log.InfoContext(ctx, "notification already processed, acknowledging")
		c.acknowledge(ctx, log, n)
		return nil
	}

	payload, err := decodeOrderCreated(*env.Message)
	if err != nil {
		return err
	}
	log = log.With("order_ref", payload.OrderID.String())

	cmd, err := payload.toCommand()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	created, err := c.creator.Handle(ctx, cmd)
	if err != nil {
		return fmt.Errorf("create production order: %w", err)
	}

	if err = c.ledger.Remember(ctx, messageID); err != nil {
		log.WarnContext(ctx, "recording processed notification failed", "error", err)
	}

	log.InfoContext(ctx, "production order created",
		"production_id", created.ID().String(),
		"order_number", created.OrderNumber(),
	)
	c.acknowledge(ctx, log, n)
	return nil
}

// acknowledge failures are only logged; the redelivered copy is absorbed by
// the ledger or by the orderRef lookup.
func (c *OrderCreatedConsumer) acknowledge(ctx context.Context, log *slog.Logger, n ports.Notification) {
	if err := c.source.Acknowledge(ctx, n.Handle); err != nil {
		log.WarnContext(ctx, "acknowledging notification failed", "error", err)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
