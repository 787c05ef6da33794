package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired  = errors.New("order number is required")
	ErrPriorityIsInvalid      = errors.New("priority must not be negative")
	ErrEstimatedTimeIsInvalid = errors.New("estimated time must not be negative")
)

// CreateOrderCommand asks for a production order for an upstream customer order.
//
// Example:
//
//	item, _ := order.NewItem(productID, "X-Burger", "Burgers", 2, nil)
//	cmd, err := NewCreateOrderCommand(orderRef, "A-101", []order.Item{item}, 0, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderRef      kernel.UUID
	orderNumber   string
	items         []order.Item
	priority      int
	estimatedTime *int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. A zero priority means the
// default priority; a nil estimatedTime means no estimate yet.
func NewCreateOrderCommand(
	orderRef kernel.UUID,
	orderNumber string,
	items []order.Item,
	priority int,
	estimatedTime *int,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		items: append([]order.Item{}, items...),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderRef(orderRef),
		cmd.setOrderNumber(orderNumber),
		cmd.setPriority(priority),
		cmd.setEstimatedTime(estimatedTime),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderRef() kernel.UUID {
	return c.orderRef
}

func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item{}, c.items...)
}

func (c CreateOrderCommand) Priority() int {
	return c.priority
}

func (c CreateOrderCommand) EstimatedTime() *int {
	return c.estimatedTime
}

func (c *CreateOrderCommand) setOrderRef(orderRef kernel.UUID) error {
	if err := orderRef.Validate(); err != nil {
		return err
	}

	c.orderRef = orderRef
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setPriority(priority int) error {
	if priority < 0 {
		return ErrPriorityIsInvalid
	}

	c.priority = priority
	return nil
}

func (c *CreateOrderCommand) setEstimatedTime(estimatedTime *int) error {
	if estimatedTime == nil {
		return nil
	}
	if *estimatedTime < 0 {
		return ErrEstimatedTimeIsInvalid
	}

	v := *estimatedTime
	c.estimatedTime = &v
	return nil
}
