package queries

import (
	"context"
	"errors"

	"production/internal/core/domain/services"
	"production/internal/pkg/guard"
)

var ErrGetProductionQueueQueryIsNotConstructed = errors.New(
	"GetProductionQueueQuery must be created via NewGetProductionQueueQuery constructor",
)

// GetProductionQueueQuery materializes the kitchen display.
type GetProductionQueueQuery struct {
	guard guard.ConstructorGuard
}

func NewGetProductionQueueQuery() GetProductionQueueQuery {
	return GetProductionQueueQuery{guard: guard.NewConstructorGuard()}
}

func (q GetProductionQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetProductionQueueQueryIsNotConstructed)
}

// QueueView is the snapshot returned to the kitchen display.
type QueueView struct {
	InQueue         []OrderView
	InProgress      []OrderView
	Ready           []OrderView
	TotalInQueue    int
	TotalInProgress int
	TotalReady      int
}

type GetProductionQueueQueryHandler struct {
	reader    OrderReader
	projector services.QueueProjector
}

func NewGetProductionQueueQueryHandler(reader OrderReader, projector services.QueueProjector) GetProductionQueueQueryHandler {
	return GetProductionQueueQueryHandler{reader: reader, projector: projector}
}

func (h GetProductionQueueQueryHandler) Handle(ctx context.Context, query GetProductionQueueQuery) (QueueView, error) {
	if err := query.Validate(); err != nil {
		return QueueView{}, err
	}

	active, err := h.reader.GetQueue(ctx)
	if err != nil {
		return QueueView{}, err
	}

	queue := h.projector.Project(active)
	return QueueView{
		InQueue:         newOrderViews(queue.InQueue),
		InProgress:      newOrderViews(queue.InProgress),
		Ready:           newOrderViews(queue.Ready),
		TotalInQueue:    queue.TotalInQueue(),
		TotalInProgress: queue.TotalInProgress(),
		TotalReady:      queue.TotalReady(),
	}, nil
}
