package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"production/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultPollInterval = 250 * time.Millisecond

var ErrUnknownDelivery = errors.New("delivery is not pending on this source")

type channelProvider interface {
	Channel() (Channel, error)
}

// pendingDelivery remembers where a delivery came from; tags are only valid
// on the channel that issued them.
type pendingDelivery struct {
	ch          Channel
	redelivered bool
}

// QueueSource implements ports.NotificationSource by polling a queue with basic.get.
// Released deliveries are requeued once; a delivery that fails again is
// rejected without requeue so the queue's dead-letter policy takes over.
type QueueSource struct {
	channels     channelProvider
	queue        string
	pollInterval time.Duration

	mu      sync.Mutex
	current Channel
	pending map[uint64]pendingDelivery
}

func NewQueueSource(channels channelProvider, queue string) *QueueSource {
	return &QueueSource{
		channels:     channels,
		queue:        queue,
		pollInterval: defaultPollInterval,
		pending:      make(map[uint64]pendingDelivery),
	}
}

// WithPollInterval changes how often an empty queue is polled during a wait.
func (s *QueueSource) WithPollInterval(interval time.Duration) *QueueSource {
	if interval > 0 {
		s.pollInterval = interval
	}
	return s
}

// ReceiveBatch fails without returning messages when the channel breaks
// mid-batch; what was already fetched goes back to the queue.
func (s *QueueSource) ReceiveBatch(ctx context.Context, maxMessages int, wait time.Duration) ([]ports.Notification, error) {
	if maxMessages < 1 {
		maxMessages = 1
	}

	ch, err := s.channel()
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(wait)
	batch := make([]ports.Notification, 0, maxMessages)

	for {
		for len(batch) < maxMessages {
			delivery, ok, err := ch.Get(s.queue, false)
			if err != nil {
				s.abandon(ch, batch)
				return nil, fmt.Errorf("get from %s: %w", s.queue, err)
			}
			if !ok {
				break
			}
			batch = append(batch, s.track(ch, delivery))
		}

		if len(batch) > 0 || !time.Now().Before(deadline) {
			return batch, nil
		}

		timer := time.NewTimer(min(s.pollInterval, time.Until(deadline)))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (s *QueueSource) Acknowledge(_ context.Context, handle uint64) error {
	p, err := s.take(handle)
	if err != nil {
		return err
	}
	return p.ch.Ack(handle, false)
}

func (s *QueueSource) Release(_ context.Context, handle uint64) error {
	p, err := s.take(handle)
	if err != nil {
		return err
	}
	return p.ch.Nack(handle, false, !p.redelivered)
}

// channel asks the provider for the live channel. Deliveries of a replaced
// channel are forgotten: the broker requeued them when it closed.
func (s *QueueSource) channel() (Channel, error) {
	ch, err := s.channels.Channel()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ch != s.current {
		s.current = ch
		s.pending = make(map[uint64]pendingDelivery)
	}
	return ch, nil
}

func (s *QueueSource) track(ch Channel, delivery amqp.Delivery) ports.Notification {
	s.mu.Lock()
	s.pending[delivery.DeliveryTag] = pendingDelivery{ch: ch, redelivered: delivery.Redelivered}
	s.mu.Unlock()

	return ports.Notification{
		ID:     delivery.MessageId,
		Body:   delivery.Body,
		Handle: delivery.DeliveryTag,
	}
}

// abandon requeues a partial batch. Nack errors are ignored: on a closed
// channel the broker requeues the deliveries itself.
func (s *QueueSource) abandon(ch Channel, batch []ports.Notification) {
	for _, n := range batch {
		if _, err := s.take(n.Handle); err != nil {
			continue
		}
		_ = ch.Nack(n.Handle, false, true)
	}
}

func (s *QueueSource) take(handle uint64) (pendingDelivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[handle]
	if !ok {
		return pendingDelivery{}, fmt.Errorf("%w: %d", ErrUnknownDelivery, handle)
	}
	delete(s.pending, handle)
	return p, nil
}
