package rabbitmq_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"production/internal/adapters/out/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testQueue = "production-orders"

func delivery(tag uint64, id string, redelivered bool) amqp.Delivery {
	return amqp.Delivery{DeliveryTag: tag, MessageId: id, Redelivered: redelivered, Body: []byte(`{}`)}
}

func TestQueueSource_ReceiveBatch_StopsAtMaxMessages(t *testing.T) {
	ch := &MockChannel{}
	mock.InOrder(
		ch.On("Get", testQueue, false).Return(delivery(1, "m-1", false), true, nil).Once(),
		ch.On("Get", testQueue, false).Return(delivery(2, "m-2", false), true, nil).Once(),
	)

	source := rabbitmq.NewQueueSource(sessionOf(t, ch), testQueue)
	batch, err := source.ReceiveBatch(t.Context(), 2, time.Second)

	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "m-1", batch[0].ID)
	assert.EqualValues(t, 1, batch[0].Handle)
	assert.Equal(t, "m-2", batch[1].ID)
	ch.AssertExpectations(t)
}

func TestQueueSource_ReceiveBatch_ReturnsWhatIsAvailable(t *testing.T) {
	ch := &MockChannel{}
	mock.InOrder(
		ch.On("Get", testQueue, false).Return(delivery(7, "m-7", false), true, nil).Once(),
		ch.On("Get", testQueue, false).Return(amqp.Delivery{}, false, nil).Once(),
	)

	source := rabbitmq.NewQueueSource(sessionOf(t, ch), testQueue)
	batch, err := source.ReceiveBatch(t.Context(), 10, time.Second)

	require.NoError(t, err)
	require.Len(t, batch, 1)
	ch.AssertExpectations(t)
}

func TestQueueSource_ReceiveBatch_EmptyAfterWait(t *testing.T) {
	ch := &MockChannel{}
	ch.On("Get", testQueue, false).Return(amqp.Delivery{}, false, nil)

	source := rabbitmq.NewQueueSource(sessionOf(t, ch), testQueue).WithPollInterval(10 * time.Millisecond)

	started := time.Now()
	batch, err := source.ReceiveBatch(t.Context(), 10, 50*time.Millisecond)

	require.NoError(t, err)
	assert.Empty(t, batch)
	assert.GreaterOrEqual(t, time.Since(started), 50*time.Millisecond)
}

func TestQueueSource_ReceiveBatch_Cancelled(t *testing.T) {
	ch := &MockChannel{}
	ch.On("Get", testQueue, false).Return(amqp.Delivery{}, false, nil)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	source := rabbitmq.NewQueueSource(sessionOf(t, ch), testQueue)
	_, err := source.ReceiveBatch(ctx, 10, time.Minute)

	require.ErrorIs(t, err, context.Canceled)
}

func TestQueueSource_ReceiveBatch_TransportError(t *testing.T) {
	ch := &MockChannel{}
	ch.On("Get", testQueue, false).Return(amqp.Delivery{}, false, amqp.ErrClosed).Once()

	source := rabbitmq.NewQueueSource(sessionOf(t, ch), testQueue)
	_, err := source.ReceiveBatch(t.Context(), 10, time.Second)

	require.ErrorIs(t, err, amqp.ErrClosed)
}

func TestQueueSource_Acknowledge(t *testing.T) {
	ch := &MockChannel{}
	ch.On("Get", testQueue, false).Return(delivery(3, "m-3", false), true, nil).Once()
	ch.On("Get", testQueue, false).Return(amqp.Delivery{}, false, nil).Once()
	ch.On("Ack", uint64(3), false).Return(nil).Once()

	source := rabbitmq.NewQueueSource(sessionOf(t, ch), testQueue)
	batch, err := source.ReceiveBatch(t.Context(), 10, time.Second)
	require.NoError(t, err)

	require.NoError(t, source.Acknowledge(t.Context(), batch[0].Handle))
	require.ErrorIs(t, source.Acknowledge(t.Context(), batch[0].Handle), rabbitmq.ErrUnknownDelivery)
	ch.AssertExpectations(t)
}

func TestQueueSource_Release(t *testing.T) {
	tests := []struct {
		name        string
		redelivered bool
		wantRequeue bool
	}{
		{name: "first failure is requeued", redelivered: false, wantRequeue: true},
		{name: "repeated failure is dead-lettered", redelivered: true, wantRequeue: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := &MockChannel{}
			ch.On("Get", testQueue, false).Return(delivery(9, "m-9", tt.redelivered), true, nil).Once()
			ch.On("Get", testQueue, false).Return(amqp.Delivery{}, false, nil).Once()
			ch.On("Nack", uint64(9), false, tt.wantRequeue).Return(nil).Once()

			source := rabbitmq.NewQueueSource(sessionOf(t, ch), testQueue)
			_, err := source.ReceiveBatch(t.Context(), 10, time.Second)
			require.NoError(t, err)

			require.NoError(t, source.Release(t.Context(), 9))
			ch.AssertExpectations(t)
		})
	}
}

func TestQueueSource_ReleaseUnknownHandle(t *testing.T) {
	ch := &MockChannel{}
	source := rabbitmq.NewQueueSource(sessionOf(t, ch), testQueue)

	err := source.Release(t.Context(), 42)

	require.ErrorIs(t, err, rabbitmq.ErrUnknownDelivery)
	ch.AssertNotCalled(t, "Nack", mock.Anything, mock.Anything, mock.Anything)
}

func TestQueueSource_AckFailureIsReturned(t *testing.T) {
	ch := &MockChannel{}
	ackErr := errors.New("channel closed")
	ch.On("Get", testQueue, false).Return(delivery(5, "m-5", false), true, nil).Once()
	ch.On("Get", testQueue, false).Return(amqp.Delivery{}, false, nil).Once()
	ch.On("Ack", uint64(5), false).Return(ackErr).Once()

	source := rabbitmq.NewQueueSource(sessionOf(t, ch), testQueue)
	_, err := source.ReceiveBatch(t.Context(), 10, time.Second)
	require.NoError(t, err)

	require.ErrorIs(t, source.Acknowledge(t.Context(), 5), ackErr)
}

func TestQueueSource_ReceiveBatch_FailureRequeuesPartialBatch(t *testing.T) {
	ch := &MockChannel{}
	mock.InOrder(
		ch.On("Get", testQueue, false).Return(delivery(1, "m-1", false), true, nil).Once(),
		ch.On("Get", testQueue, false).Return(amqp.Delivery{}, false, amqp.ErrClosed).Once(),
	)
	ch.On("Nack", uint64(1), false, true).Return(nil).Once()

	source := rabbitmq.NewQueueSource(sessionOf(t, ch), testQueue)
	batch, err := source.ReceiveBatch(t.Context(), 10, time.Second)

	require.ErrorIs(t, err, amqp.ErrClosed)
	assert.Nil(t, batch)
	require.ErrorIs(t, source.Acknowledge(t.Context(), 1), rabbitmq.ErrUnknownDelivery)
	ch.AssertExpectations(t)
}

func TestQueueSource_RecoversOnReopenedChannel(t *testing.T) {
	broken := &MockChannel{}
	broken.On("Get", testQueue, false).Return(amqp.Delivery{}, false, amqp.ErrClosed).
		Run(func(mock.Arguments) { broken.Close() }).Once()

	reopened := &MockChannel{}
	mock.InOrder(
		reopened.On("Get", testQueue, false).Return(delivery(1, "m-1", false), true, nil).Once(),
		reopened.On("Get", testQueue, false).Return(amqp.Delivery{}, false, nil).Once(),
	)
	reopened.On("Ack", uint64(1), false).Return(nil).Once()

	source := rabbitmq.NewQueueSource(sessionOf(t, broken, reopened), testQueue)

	_, err := source.ReceiveBatch(t.Context(), 10, time.Second)
	require.ErrorIs(t, err, amqp.ErrClosed)

	batch, err := source.ReceiveBatch(t.Context(), 10, time.Second)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	require.NoError(t, source.Acknowledge(t.Context(), batch[0].Handle))

	broken.AssertExpectations(t)
	reopened.AssertExpectations(t)
	broken.AssertNotCalled(t, "Ack", mock.Anything, mock.Anything)
}

func TestQueueSource_ForgetsDeliveriesOfClosedChannel(t *testing.T) {
	first := &MockChannel{}
	first.On("Get", testQueue, false).Return(delivery(5, "m-5", false), true, nil).Once()
	first.On("Get", testQueue, false).Return(amqp.Delivery{}, false, nil).Once()

	second := &MockChannel{}
	second.On("Get", testQueue, false).Return(amqp.Delivery{}, false, nil)

	source := rabbitmq.NewQueueSource(sessionOf(t, first, second), testQueue).WithPollInterval(10 * time.Millisecond)

	_, err := source.ReceiveBatch(t.Context(), 10, time.Second)
	require.NoError(t, err)

	first.Close()
	_, err = source.ReceiveBatch(t.Context(), 10, 20*time.Millisecond)
	require.NoError(t, err)

	// the broker requeued tag 5 when the first channel closed
	require.ErrorIs(t, source.Acknowledge(t.Context(), 5), rabbitmq.ErrUnknownDelivery)
	second.AssertNotCalled(t, "Ack", mock.Anything, mock.Anything)
}

func TestQueueSource_BrokerUnreachable(t *testing.T) {
	source := rabbitmq.NewQueueSource(sessionOf(t), testQueue)

	_, err := source.ReceiveBatch(t.Context(), 10, time.Second)

	require.ErrorIs(t, err, errNoMoreChannels)
}
