package queue_test

import (
	"context"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockNotificationSource struct {
	mock.Mock
}

func (m *MockNotificationSource) ReceiveBatch(
	ctx context.Context, maxMessages int, wait time.Duration,
) ([]ports.Notification, error) {
	args := m.Called(ctx, maxMessages, wait)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Notification), args.Error(1)
}

func (m *MockNotificationSource) Acknowledge(ctx context.Context, handle uint64) error {
	return m.Called(ctx, handle).Error(0)
}

func (m *MockNotificationSource) Release(ctx context.Context, handle uint64) error {
	return m.Called(ctx, handle).Error(0)
}

type MockDeliveryLedger struct {
	mock.Mock
}

func (m *MockDeliveryLedger) Seen(ctx context.Context, messageID string) (bool, error) {
	args := m.Called(ctx, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryLedger) Remember(ctx context.Context, messageID string) error {
	return m.Called(ctx, messageID).Error(0)
}

type MockOrderCreator struct {
	mock.Mock
}

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
