package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrConnectionClosed = errors.New("rabbitmq connection is closed")

// Channel is the part of *amqp.Channel used by the source and the publisher.
type Channel interface {
	Get(queue string, autoAck bool) (amqp.Delivery, bool, error)
	Ack(tag uint64, multiple bool) error
	Nack(tag uint64, multiple bool, requeue bool) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
}

// ChannelOpener opens a new, ready to use channel.
type ChannelOpener func() (Channel, error)

// Session owns one channel for a single user (the consumer or the publisher)
// and replaces it once the broker has closed it. Callers that hit a closed
// channel simply ask again on their next attempt.
type Session struct {
	name   string
	open   ChannelOpener
	logger *slog.Logger

	mu sync.Mutex
	ch Channel
}

func NewSession(name string, open ChannelOpener, logger *slog.Logger) *Session {
	return &Session{
		name:   name,
		open:   open,
		logger: logger.With("component", "rabbitmq_session", "session", name),
	}
}

// Channel returns the live channel, opening a new one if there is none yet or
// the previous one was closed.
func (s *Session) Channel() (Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch != nil && !s.ch.IsClosed() {
		return s.ch, nil
	}

	reopening := s.ch != nil
	ch, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("open %s channel: %w", s.name, err)
	}
	s.ch = ch

	if reopening {
		s.logger.Warn("channel was closed, reopened")
	}
	return ch, nil
}

// Dialer shares one broker connection between sessions. The connection is
// redialed when it was closed, and the ingestion queue and events exchange
// are declared on every channel it opens.
type Dialer struct {
	url      string
	queue    string
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
}

func NewDialer(url, queue, exchange string) *Dialer {
	return &Dialer{url: url, queue: queue, exchange: exchange}
}

// Open satisfies ChannelOpener.
func (d *Dialer) Open() (Channel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil || d.conn.IsClosed() {
		conn, err := amqp.Dial(d.url)
		if err != nil {
			return nil, fmt.Errorf("dial broker: %w", err)
		}
		d.conn = conn
	}

	ch, err := d.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = DeclareTopology(ch, d.queue, d.exchange); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return ch, nil
}

// IsAlive reports ErrConnectionClosed until a connection is up.
func (d *Dialer) IsAlive() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil || d.conn.IsClosed() {
		return ErrConnectionClosed
	}
	return nil
}

func (d *Dialer) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil || d.conn.IsClosed() {
		return nil
	}
	return d.conn.Close()
}
