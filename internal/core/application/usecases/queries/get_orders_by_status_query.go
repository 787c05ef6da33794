package queries

import (
	"context"
	"errors"

	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
	"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
)

// GetOrdersByStatusQuery lists orders in one status. The status name is parsed
// case-insensitively; unknown names fail with order.ErrInvalidStatus.
type GetOrdersByStatusQuery struct {
	status order.Status
	guard  guard.ConstructorGuard
}

func NewGetOrdersByStatusQuery(status string) (GetOrdersByStatusQuery, error) {
	parsed, err := order.ParseStatus(status)
	if err != nil {
		return GetOrdersByStatusQuery{}, err
	}
	return GetOrdersByStatusQuery{status: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

func (q GetOrdersByStatusQuery) Status() order.Status {
	return q.status
}

type GetOrdersByStatusQueryHandler struct {
	reader OrderReader
}

func NewGetOrdersByStatusQueryHandler(reader OrderReader) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{reader: reader}
}

// Handle returns orders by priority, oldest first within a priority.
func (h GetOrdersByStatusQueryHandler) Handle(ctx context.Context, query GetOrdersByStatusQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.GetByStatus(ctx, query.Status())
	if err != nil {
		return nil, err
	}
	return newOrderViews(orders), nil
}
