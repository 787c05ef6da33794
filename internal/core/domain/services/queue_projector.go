package services

import (
	"slices"
	"time"

	"production/internal/core/domain/model/order"
)

// Queue is the operational view of active production orders.
type Queue struct {
	InQueue    []*order.Order
	InProgress []*order.Order
	Ready      []*order.Order
}

func (q Queue) TotalInQueue() int    { return len(q.InQueue) }
func (q Queue) TotalInProgress() int { return len(q.InProgress) }
func (q Queue) TotalReady() int      { return len(q.Ready) }

// QueueProjector partitions active orders into the kitchen display buckets.
//
// Ordering rules:
//   - InQueue (Received): priority ascending, then createdAt ascending
//   - InProgress: startedAt ascending
//   - Ready: readyAt descending, most recently finished first
//
// Ties keep the input order. Delivered orders, invalid orders and nil entries are
// dropped. The projection never mutates the orders it is given.
type QueueProjector struct{}

func NewQueueProjector() QueueProjector {
	return QueueProjector{}
}

func (QueueProjector) Project(orders []*order.Order) Queue {
	queue := Queue{
		InQueue:    []*order.Order{},
		InProgress: []*order.Order{},
		Ready:      []*order.Order{},
	}

	for _, o := range orders {
		if o.Validate() != nil {
			continue
		}
		switch o.Status() {
		case order.Received:
			queue.InQueue = append(queue.InQueue, o)
		case order.InProgress:
			queue.InProgress = append(queue.InProgress, o)
		case order.Ready:
			queue.Ready = append(queue.Ready, o)
		case order.Unknown, order.Delivered:
		}
	}

	slices.SortStableFunc(queue.InQueue, func(a, b *order.Order) int {
		if a.Priority() != b.Priority() {
			return a.Priority() - b.Priority()
		}
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	slices.SortStableFunc(queue.InProgress, func(a, b *order.Order) int {
		return compareStage(a.StartedAt(), b.StartedAt())
	})
	slices.SortStableFunc(queue.Ready, func(a, b *order.Order) int {
		return compareStage(b.ReadyAt(), a.ReadyAt())
	})

	return queue
}

// compareStage orders missing stage times last.
func compareStage(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}
