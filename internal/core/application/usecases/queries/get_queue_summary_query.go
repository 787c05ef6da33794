package queries

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetQueueSummaryQueryIsNotConstructed = errors.New(
	"GetQueueSummaryQuery must be created via NewGetQueueSummaryQuery constructor",
)

// GetQueueSummaryQuery counts orders per status without loading them.
type GetQueueSummaryQuery struct {
	guard guard.ConstructorGuard
}

func NewGetQueueSummaryQuery() GetQueueSummaryQuery {
	return GetQueueSummaryQuery{guard: guard.NewConstructorGuard()}
}

func (q GetQueueSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetQueueSummaryQueryIsNotConstructed)
}

// GetQueueSummaryQueryResponse holds per-status counts and the age of the
// oldest order still waiting to be started.
type GetQueueSummaryQueryResponse struct {
	Received       int
	InProgress     int
	Ready          int
	Delivered      int
	OldestReceived *time.Time
}

// GetQueueSummaryQueryHandler reads straight from the production_orders table.
type GetQueueSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetQueueSummaryQueryHandler(db *gorm.DB) GetQueueSummaryQueryHandler {
	return GetQueueSummaryQueryHandler{db: db}
}

func (h GetQueueSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetQueueSummaryQuery,
) (GetQueueSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetQueueSummaryQueryResponse{}, err
	}

	var summary GetQueueSummaryQueryResponse

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*),
			MIN(created_at)
		FROM production_orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetQueueSummaryQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status   string
			count    int
			earliest time.Time
		)
		if err = rows.Scan(&status, &count, &earliest); err != nil {
			return GetQueueSummaryQueryResponse{}, err
		}

		parsed, parseErr := order.ParseStatus(status)
		if parseErr != nil {
			return GetQueueSummaryQueryResponse{}, parseErr
		}

		//nolint:exhaustive // ParseStatus never yields Unknown
		switch parsed {
		case order.Received:
			summary.Received = count
			oldest := earliest.UTC()
			summary.OldestReceived = &oldest
		case order.InProgress:
			summary.InProgress = count
		case order.Ready:
			summary.Ready = count
		case order.Delivered:
			summary.Delivered = count
		}
	}

	if err = rows.Err(); err != nil {
		return GetQueueSummaryQueryResponse{}, err
	}

	return summary, nil
}
