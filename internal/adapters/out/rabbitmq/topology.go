// Package rabbitmq carries production orders over AMQP 0-9-1: it polls the
// ingestion queue for order-created notifications and publishes lifecycle
// events to a topic exchange.
package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DeclareTopology makes sure the ingestion queue and the events exchange exist.
// Both are durable so messages survive a broker restart.
func DeclareTopology(ch *amqp.Channel, queue, exchange string) error {
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return nil
}
