package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// Defines values for OrderStatus.
const (
	Delivered  OrderStatus = "Delivered"
	InProgress OrderStatus = "InProgress"
	Ready      OrderStatus = "Ready"
	Received   OrderStatus = "Received"
)

// Valid reports whether s is one of the enum values.
func (s OrderStatus) Valid() bool {
	switch s {
	case Delivered, InProgress, Ready, Received:
		return true
	default:
		return false
	}
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Item defines model for Item.
type Item struct {
	PreparationNotes *string            `json:"preparationNotes,omitempty"`
	ProductCategory  string             `json:"productCategory"`
	ProductId        openapi_types.UUID `json:"productId"`
	ProductName      string             `json:"productName"`
	Quantity         int                `json:"quantity"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	// EstimatedTime Preparation estimate in minutes
	EstimatedTime *int               `json:"estimatedTime,omitempty"`
	Items         *[]Item            `json:"items,omitempty"`
	OrderId       openapi_types.UUID `json:"orderId"`
	OrderNumber   string             `json:"orderNumber"`

	// Priority Lower is more urgent. Omitted or 0 means 1.
	Priority *int `json:"priority,omitempty"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt     time.Time          `json:"createdAt"`
	DeliveredAt   *time.Time         `json:"deliveredAt"`
	EstimatedTime *int               `json:"estimatedTime"`
	Id            openapi_types.UUID `json:"id"`
	Items         []Item             `json:"items"`
	OrderId       openapi_types.UUID `json:"orderId"`
	OrderNumber   string             `json:"orderNumber"`
	Priority      int                `json:"priority"`
	ReadyAt       *time.Time         `json:"readyAt"`
	StartedAt     *time.Time         `json:"startedAt"`
	Status        OrderStatus        `json:"status"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ProductionQueue defines model for ProductionQueue.
type ProductionQueue struct {
	InProgress      []Order `json:"inProgress"`
	InQueue         []Order `json:"inQueue"`
	Ready           []Order `json:"ready"`
	TotalInProgress int     `json:"totalInProgress"`
	TotalInQueue    int     `json:"totalInQueue"`
	TotalReady      int     `json:"totalReady"`
}

// StatusUpdate defines model for StatusUpdate.
type StatusUpdate struct {
	EstimatedTime *int `json:"estimatedTime,omitempty"`

	// Status InProgress, Ready or Delivered
	Status string `json:"status"`
}

// OrderID defines model for OrderID.
type OrderID = openapi_types.UUID

// GetOrdersParams defines parameters for GetOrders.
type GetOrdersParams struct {
	Status OrderStatus `form:"status" json:"status"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// UpdateOrderStatusJSONRequestBody defines body for UpdateOrderStatus for application/json ContentType.
type UpdateOrderStatusJSONRequestBody = StatusUpdate
