package http

import (
	"errors"
	"fmt"

	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/generated/servers"
)

func toDomainItems(items *[]servers.Item) ([]order.Item, error) {
	if items == nil {
		return nil, nil
	}

	result := make([]order.Item, 0, len(*items))
	var itemErrs []error
	for i, item := range *items {
		productID, err := kernel.UUIDFromGoogle(item.ProductId)
		if err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("item %d: %w", i, err))
			continue
		}

		domainItem, err := order.NewItem(productID, item.ProductName, item.ProductCategory,
			item.Quantity, item.PreparationNotes)
		if err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		result = append(result, domainItem)
	}

	if len(itemErrs) > 0 {
		return nil, errors.Join(itemErrs...)
	}
	return result, nil
}

func toOrder(view queries.OrderView) servers.Order {
	items := make([]servers.Item, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, servers.Item{
			ProductId:        item.ProductID.Bytes(),
			ProductName:      item.Name,
			ProductCategory:  item.Category,
			Quantity:         item.Quantity,
			PreparationNotes: item.Notes,
		})
	}

	return servers.Order{
		Id:            view.ID.Bytes(),
		OrderId:       view.OrderRef.Bytes(),
		OrderNumber:   view.OrderNumber,
		Status:        servers.OrderStatus(view.Status),
		Items:         items,
		Priority:      view.Priority,
		EstimatedTime: view.EstimatedTime,
		CreatedAt:     view.CreatedAt,
		UpdatedAt:     view.UpdatedAt,
		StartedAt:     view.StartedAt,
		ReadyAt:       view.ReadyAt,
		DeliveredAt:   view.DeliveredAt,
	}
}

func toOrders(views []queries.OrderView) []servers.Order {
	result := make([]servers.Order, 0, len(views))
	for _, view := range views {
		result = append(result, toOrder(view))
	}
	return result
}
