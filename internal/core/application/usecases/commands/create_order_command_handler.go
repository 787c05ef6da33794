package commands

import (
	"context"
	"errors"

	"production/internal/core/domain/model/order"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

// CreateOrderCommandHandler registers production orders. Creation is idempotent
// on the upstream order reference: a repeated command returns the order that
// already exists instead of creating a second one.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the order in Received status and returns it.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	existing, err := orderRepo.GetByOrderRef(ctx, cmd.OrderRef())
	if err == nil {
		return existing, nil
	}
	var notFound *errs.ObjectNotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	created, err := order.NewOrder(
		cmd.OrderRef(),
		cmd.OrderNumber(),
		cmd.Items(),
		cmd.Priority(),
		cmd.EstimatedTime(),
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, created); err != nil {
		if errors.Is(err, ports.ErrOrderAlreadyExists) {
			return h.loadConcurrentlyCreated(ctx, cmd)
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// loadConcurrentlyCreated reads the order another writer committed first. The
// failed transaction is unusable, so the read goes through a fresh unit of work.
func (h *CreateOrderCommandHandler) loadConcurrentlyCreated(
	ctx context.Context,
	cmd CreateOrderCommand,
) (*order.Order, error) {
	return h.uowFactory.Create().OrderRepository().GetByOrderRef(ctx, cmd.OrderRef())
}
