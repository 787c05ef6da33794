package ports

import (
	"context"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for production orders.
// Lookups of a missing order return *errs.ObjectNotFoundError; every other
// failure is a storage error.
type OrderRepository interface {
	// Add persists a new order. A second order with the same OrderRef is rejected.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the current state of an existing order (last writer wins).
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrderRef retrieves the order created for the given upstream order.
	GetByOrderRef(ctx context.Context, orderRef kernel.UUID) (*order.Order, error)

	// GetByStatus returns every order in status, most urgent and oldest first.
	GetByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetQueue returns every order that is Received, InProgress or Ready.
	GetQueue(ctx context.Context) ([]*order.Order, error)
}

// ErrOrderAlreadyExists is returned by Add when an order for the same OrderRef
// was stored first.
var ErrOrderAlreadyExists = errors.New("order already exists")
