package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
	ErrTargetStatusIsRequired = errors.New("target status is required")
)

// UpdateOrderStatusCommand requests moving an order to the named status.
// The status text is parsed by the handler, after the order was found.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	status        string
	estimatedTime *int

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand validates the request. estimatedTime only
// applies when the target is InProgress.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	status string,
	estimatedTime *int,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setEstimatedTime(estimatedTime),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the requested status as received.
func (c UpdateOrderStatusCommand) Status() string {
	return c.status
}

func (c UpdateOrderStatusCommand) EstimatedTime() *int {
	return c.estimatedTime
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setStatus(status string) error {
	if strings.TrimSpace(status) == "" {
		return ErrTargetStatusIsRequired
	}

	c.status = status
	return nil
}

func (c *UpdateOrderStatusCommand) setEstimatedTime(estimatedTime *int) error {
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
