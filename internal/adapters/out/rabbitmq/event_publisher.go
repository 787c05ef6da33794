package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"production/internal/core/ports"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventPublisher implements ports.EventPublisher on a topic exchange. The event
// type is the routing key, so consumers can bind to the stages they care about.
//
// A publish that finds the channel closed is retried once on a reopened channel.
type EventPublisher struct {
	channels channelProvider
	logger   *slog.Logger
}

func NewEventPublisher(channels channelProvider, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		channels: channels,
		logger:   logger.With("component", "event_publisher"),
	}
}

func (p *EventPublisher) Publish(ctx context.Context, event ports.Event, destination string) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.EventType(), err)
	}

	eventType := event.EventType()
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Type:         eventType,
		Headers: amqp.Table{
			"EventType": eventType,
			"Type":      eventType,
		},
		Body: body,
	}

	err = p.publish(ctx, destination, eventType, msg)
	if errors.Is(err, amqp.ErrClosed) {
		p.logger.WarnContext(ctx, "channel closed while publishing, retrying", "event_type", eventType)
		err = p.publish(ctx, destination, eventType, msg)
	}
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", eventType, destination, err)
	}

	p.logger.DebugContext(ctx, "event published",
		"event_type", eventType,
		"destination", destination,
		"message_id", msg.MessageId,
	)
	return nil
}

func (p *EventPublisher) publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error {
	ch, err := p.channels.Channel()
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, exchange, key, false, false, msg)
}
