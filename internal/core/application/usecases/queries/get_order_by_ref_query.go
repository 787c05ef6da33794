package queries

import (
	"context"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrGetOrderByRefQueryIsNotConstructed = errors.New(
	"GetOrderByRefQuery must be created via NewGetOrderByRefQuery constructor",
)

// GetOrderByRefQuery looks an order up by the upstream order it was created for.
type GetOrderByRefQuery struct {
	orderRef kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetOrderByRefQuery(orderRef kernel.UUID) (GetOrderByRefQuery, error) {
	if err := orderRef.Validate(); err != nil {
		return GetOrderByRefQuery{}, err
	}
	return GetOrderByRefQuery{orderRef: orderRef, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderByRefQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByRefQueryIsNotConstructed)
}

func (q GetOrderByRefQuery) OrderRef() kernel.UUID {
	return q.orderRef
}

type GetOrderByRefQueryHandler struct {
	reader OrderReader
}

func NewGetOrderByRefQueryHandler(reader OrderReader) GetOrderByRefQueryHandler {
	return GetOrderByRefQueryHandler{reader: reader}
}

func (h GetOrderByRefQueryHandler) Handle(ctx context.Context, query GetOrderByRefQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.reader.GetByOrderRef(ctx, query.OrderRef())
	if err != nil {
		return OrderView{}, err
	}
	return NewOrderView(o), nil
}
