// Package orderrepo stores production orders in the production_orders table.
// Line items live in a jsonb column whose layout is owned by order.EncodeItems.
package orderrepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO is the row layout of a production order. The composite indexes back
// the status listing (status, priority, created_at) and the queue scans.
type OrderDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:ux_production_orders_order_id"`
	OrderNumber   string         `gorm:"type:varchar(50);not null"`
	Status        string         `gorm:"type:text;not null;index:ix_production_orders_status;index:ix_production_orders_status_created,priority:1;index:ix_production_orders_status_priority_created,priority:1"` //nolint:lll
	ItemsJSON     datatypes.JSON `gorm:"column:items_json;type:jsonb;not null"`
	Priority      int            `gorm:"not null;default:1;index:ix_production_orders_status_priority_created,priority:2"`
	EstimatedTime *int
	CreatedAt     time.Time `gorm:"not null;autoCreateTime:false;index:ix_production_orders_status_created,priority:2;index:ix_production_orders_status_priority_created,priority:3"` //nolint:lll
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime:false"`
	StartedAt     *time.Time
	ReadyAt       *time.Time
	DeliveredAt   *time.Time
}

func (OrderDTO) TableName() string {
	return "production_orders"
}

func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items, err := order.EncodeItems(aggregate.Items())
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderRef().Bytes(),
		OrderNumber:   aggregate.OrderNumber(),
		Status:        aggregate.Status().String(),
		ItemsJSON:     datatypes.JSON(items),
		Priority:      aggregate.Priority(),
		EstimatedTime: aggregate.EstimatedTime(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		StartedAt:     aggregate.StartedAt(),
		ReadyAt:       aggregate.ReadyAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
	}, nil
}

// toDomain rebuilds the aggregate around items that were decoded by the caller.
func toDomain(dto OrderDTO, items []order.Item) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	orderRef, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            id,
		OrderRef:      orderRef,
		OrderNumber:   dto.OrderNumber,
		Status:        status,
		Items:         items,
		Priority:      dto.Priority,
		EstimatedTime: dto.EstimatedTime,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
		StartedAt:     dto.StartedAt,
		ReadyAt:       dto.ReadyAt,
		DeliveredAt:   dto.DeliveredAt,
	})
}
