package commands

import (
	"context"
	"errors"
	"fmt"

	"production/internal/core/domain/model/order"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

var (
	// ErrUnsupportedTransition is returned for a parsable target status that cannot
	// be requested, such as Received.
	ErrUnsupportedTransition = errors.New("unsupported status transition")

	// ErrEventNotPublished reports that the transition was stored but its event
	// could not be published. The returned order reflects the stored state.
	ErrEventNotPublished = errors.New("lifecycle event was not published")
)

// UpdateOrderStatusCommandHandler drives an order through the production line
// and announces every step.
//
// Steps:
//   - load the order (errs.ObjectNotFoundError when absent)
//   - parse the target (order.ErrInvalidStatus)
//   - apply the matching transition (ErrUnsupportedTransition, order.ErrIllegalTransition)
//   - persist and commit
//   - publish the events raised by the aggregate to the configured destination
//
// Events are published after commit. A publish failure does not undo the
// transition; Handle then returns the updated order together with
// ErrEventNotPublished.
type UpdateOrderStatusCommandHandler struct {
	uowFactory  OrderUoWFactory
	publisher   ports.EventPublisher
	destination string
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	destination string,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		destination: destination,
	}
}

func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	current, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	target, err := order.ParseStatus(cmd.Status())
	if err != nil {
		return nil, err
	}

	if err = transition(current, target, cmd); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, current); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, event := range uow.CommittedEvents() {
		if err = h.publisher.Publish(ctx, event, h.destination); err != nil {
			return current, fmt.Errorf("%w: %s for order %s: %w", ErrEventNotPublished, event.EventType(), current.ID(), err)
		}
	}

	return current, nil
}

// transition applies the requested stage; the aggregate raises the matching event.
func transition(o *order.Order, target order.Status, cmd UpdateOrderStatusCommand) error {
	//nolint:exhaustive // every other target is rejected below
	switch target {
	case order.InProgress:
		return o.StartProduction(cmd.EstimatedTime())
	case order.Ready:
		return o.MarkReady()
	case order.Delivered:
		return o.MarkDelivered()
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%w: %q", ErrUnsupportedTransition, cmd.Status()),
		)
	}
}
