package queue

import (
	"encoding/json"
	"errors"
	"fmt"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

var (
	ErrMalformedEnvelope = errors.New("malformed notification envelope")
	ErrMalformedPayload  = errors.New("malformed order created payload")
)

// envelope is the SNS-style wrapper around the published order event.
type envelope struct {
	Type      string  `json:"Type"`
	MessageID string  `json:"MessageId"`
	TopicArn  string  `json:"TopicArn"`
	Message   *string `json:"Message"`
}

// orderCreatedMessage is the inner payload. Field names are matched without
// regard to case, which encoding/json does for struct fields.
type orderCreatedMessage struct {
	OrderID       kernel.UUID        `json:"orderId"`
	OrderNumber   string             `json:"orderNumber"`
	Items         []orderItemMessage `json:"items"`
	Priority      int                `json:"priority"`
	EstimatedTime *int               `json:"estimatedTime"`
}

type orderItemMessage struct {
	ProductID        kernel.UUID `json:"productId"`
	ProductName      string      `json:"productName"`
	ProductCategory  string      `json:"productCategory"`
	Quantity         int         `json:"quantity"`
	PreparationNotes *string     `json:"preparationNotes"`
}

func decodeEnvelope(body []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}
	if env.Message == nil {
		return envelope{}, fmt.Errorf("%w: Message is missing", ErrMalformedEnvelope)
	}
	return env, nil
}

func decodeOrderCreated(payload string) (orderCreatedMessage, error) {
	var msg orderCreatedMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return orderCreatedMessage{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return msg, nil
}

func (m orderCreatedMessage) toCommand() (commands.CreateOrderCommand, error) {
	items := make([]order.Item, 0, len(m.Items))
	var itemErrs []error
	for i, raw := range m.Items {
		item, err := order.NewItem(raw.ProductID, raw.ProductName, raw.ProductCategory, raw.Quantity, raw.PreparationNotes)
		if err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if len(itemErrs) > 0 {
		return commands.CreateOrderCommand{}, errors.Join(itemErrs...)
	}

	return commands.NewCreateOrderCommand(m.OrderID, m.OrderNumber, items, m.Priority, m.EstimatedTime)
}
