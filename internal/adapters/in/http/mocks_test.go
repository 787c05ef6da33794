package http_test

import (
	"context"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockStatusUpdater struct{ mock.Mock }

func (m *MockStatusUpdater) Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderGetter struct{ mock.Mock }

func (m *MockOrderGetter) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockOrderByRefGetter struct{ mock.Mock }

func (m *MockOrderByRefGetter) Handle(ctx context.Context, query queries.GetOrderByRefQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockOrdersByStatusGetter struct{ mock.Mock }

func (m *MockOrdersByStatusGetter) Handle(
	ctx context.Context, query queries.GetOrdersByStatusQuery,
) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderView), args.Error(1)
}

type MockQueueGetter struct{ mock.Mock }

func (m *MockQueueGetter) Handle(ctx context.Context, query queries.GetProductionQueueQuery) (queries.QueueView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.QueueView), args.Error(1)
}

type MockHealthChecker struct{ mock.Mock }

func (m *MockHealthChecker) IsAlive() error {
	return m.Called().Error(0)
}
