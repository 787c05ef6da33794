// Package queries contains read-only operations. Handlers never open a
// transaction and never mutate aggregates.
package queries

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// OrderReader is the read side of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetByOrderRef(ctx context.Context, orderRef kernel.UUID) (*order.Order, error)
	GetByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
	GetQueue(ctx context.Context) ([]*order.Order, error)
}

// OrderView is the read model of a production order.
type OrderView struct {
	ID            kernel.UUID
	OrderRef      kernel.UUID
	OrderNumber   string
	Status        string
	Items         []ItemView
	Priority      int
	EstimatedTime *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	StartedAt     *time.Time
	ReadyAt       *time.Time
	DeliveredAt   *time.Time
}

type ItemView struct {
	ProductID kernel.UUID
	Name      string
	Category  string
	Quantity  int
	Notes     *string
}

// NewOrderView renders an aggregate. Write handlers use it for their responses too.
func NewOrderView(o *order.Order) OrderView {
	items := o.Items()
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ItemView{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Category:  item.Category(),
			Quantity:  item.Quantity(),
			Notes:     item.Notes(),
		})
	}

	return OrderView{
		ID:            o.ID(),
		OrderRef:      o.OrderRef(),
		OrderNumber:   o.OrderNumber(),
		Status:        o.Status().String(),
		Items:         views,
		Priority:      o.Priority(),
		EstimatedTime: o.EstimatedTime(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		StartedAt:     o.StartedAt(),
		ReadyAt:       o.ReadyAt(),
		DeliveredAt:   o.DeliveredAt(),
	}
}

func newOrderViews(orders []*order.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views
}
