package rabbitmq_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"production/internal/adapters/out/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
)

// MockChannel records calls through testify; IsClosed is driven by Close so
// tests can break a channel halfway through.
type MockChannel struct {
	mock.Mock
	closed atomic.Bool
}

func (m *MockChannel) Get(queue string, autoAck bool) (amqp.Delivery, bool, error) {
	args := m.Called(queue, autoAck)
	return args.Get(0).(amqp.Delivery), args.Bool(1), args.Error(2)
}

func (m *MockChannel) Ack(tag uint64, multiple bool) error {
	return m.Called(tag, multiple).Error(0)
}

func (m *MockChannel) Nack(tag uint64, multiple bool, requeue bool) error {
	return m.Called(tag, multiple, requeue).Error(0)
}

func (m *MockChannel) PublishWithContext(
	ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing,
) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *MockChannel) IsClosed() bool { return m.closed.Load() }

func (m *MockChannel) Close() { m.closed.Store(true) }

var errNoMoreChannels = errors.New("broker unreachable")

// sessionOf hands out the given channels in order, one per (re)open, and fails
// once they are used up.
func sessionOf(t *testing.T, channels ...*MockChannel) *rabbitmq.Session {
	t.Helper()
	var opened int
	return rabbitmq.NewSession("test", func() (rabbitmq.Channel, error) {
		if opened >= len(channels) {
			return nil, errNoMoreChannels
		}
		ch := channels[opened]
		opened++
		return ch, nil
	}, discardLogger())
}
