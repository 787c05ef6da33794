package order

import (
	"encoding/json"
	"time"

	"production/internal/core/domain/model/kernel"
)

// Event type names, used as the transport type header and as "eventType" in the body.
const (
	EventTypeStarted   = "ProductionStarted"
	EventTypeReady     = "ProductionReady"
	EventTypeDelivered = "ProductionDelivered"
)

// DomainEvent is recorded by the aggregate on every stage change and published
// once the change is committed.
type DomainEvent interface {
	EventType() string
}

// StartedEvent is emitted once an order enters InProgress.
type StartedEvent struct {
	OrderRef      kernel.UUID `json:"orderId"`
	OrderNumber   string      `json:"orderNumber"`
	EstimatedTime *int        `json:"estimatedTime"`
	Timestamp     time.Time   `json:"timestamp"`
}

func NewStartedEvent(o *Order) StartedEvent {
	return StartedEvent{
		OrderRef:      o.OrderRef(),
		OrderNumber:   o.OrderNumber(),
		EstimatedTime: o.EstimatedTime(),
		Timestamp:     stageTime(o.startedAt, o.updatedAt),
	}
}

func (StartedEvent) EventType() string { return EventTypeStarted }

func (e StartedEvent) MarshalJSON() ([]byte, error) {
	type body StartedEvent
	return json.Marshal(struct {
		EventType string `json:"eventType"`
		body
	}{EventTypeStarted, body(e)})
}

// ReadyEvent is emitted once an order is ready for pickup.
type ReadyEvent struct {
	OrderRef    kernel.UUID `json:"orderId"`
	OrderNumber string      `json:"orderNumber"`
	Timestamp   time.Time   `json:"timestamp"`
}

func NewReadyEvent(o *Order) ReadyEvent {
	return ReadyEvent{
		OrderRef:    o.OrderRef(),
		OrderNumber: o.OrderNumber(),
		Timestamp:   stageTime(o.readyAt, o.updatedAt),
	}
}

func (ReadyEvent) EventType() string { return EventTypeReady }

func (e ReadyEvent) MarshalJSON() ([]byte, error) {
	type body ReadyEvent
	return json.Marshal(struct {
		EventType string `json:"eventType"`
		body
	}{EventTypeReady, body(e)})
}

// DeliveredEvent is emitted once an order was handed over.
type DeliveredEvent struct {
	OrderRef    kernel.UUID `json:"orderId"`
	OrderNumber string      `json:"orderNumber"`
	Timestamp   time.Time   `json:"timestamp"`
}

func NewDeliveredEvent(o *Order) DeliveredEvent {
	return DeliveredEvent{
		OrderRef:    o.OrderRef(),
		OrderNumber: o.OrderNumber(),
		Timestamp:   stageTime(o.deliveredAt, o.updatedAt),
	}
}

func (DeliveredEvent) EventType() string { return EventTypeDelivered }

func (e DeliveredEvent) MarshalJSON() ([]byte, error) {
	type body DeliveredEvent
	return json.Marshal(struct {
		EventType string `json:"eventType"`
		body
	}{EventTypeDelivered, body(e)})
}

// stageTime is the moment the stage was reached, so the event matches the stored row.
func stageTime(stage *time.Time, fallback time.Time) time.Time {
	if stage != nil {
		return stage.UTC()
	}
	return fallback.UTC()
}
