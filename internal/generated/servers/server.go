// Package servers holds the HTTP contract of the production API described by
// api/openapi.yaml: the server interface, parameter binding and wire types.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	GetHealth(ctx echo.Context) error

	// (GET /api/production/orders)
	GetOrders(ctx echo.Context, params GetOrdersParams) error

	// (POST /api/production/orders)
	CreateOrder(ctx echo.Context) error

	// (GET /api/production/orders/order/{orderId})
	GetOrderByOrderId(ctx echo.Context, orderId openapi_types.UUID) error

	// (GET /api/production/orders/{id})
	GetOrder(ctx echo.Context, id OrderID) error

	// (PATCH /api/production/orders/{id}/status)
	UpdateOrderStatus(ctx echo.Context, id OrderID) error

	// (GET /api/production/queue)
	GetProductionQueue(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetHealth converts echo context to params.
func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

// GetOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	var err error

	var params GetOrdersParams

	err = runtime.BindQueryParameter("form", true, true, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.GetOrders(ctx, params)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrderByOrderId converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderByOrderId(ctx echo.Context) error {
	var err error

	var orderId openapi_types.UUID

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	return w.Handler.GetOrderByOrderId(ctx, orderId)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var err error

	var id OrderID

	err = runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	return w.Handler.GetOrder(ctx, id)
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	var err error

	var id OrderID

	err = runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	return w.Handler.UpdateOrderStatus(ctx, id)
}

// GetProductionQueue converts echo context to params.
func (w *ServerInterfaceWrapper) GetProductionQueue(ctx echo.Context) error {
	return w.Handler.GetProductionQueue(ctx)
}

// EchoRouter is the subset of echo.Echo and echo.Group the routes are registered on.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/health", wrapper.GetHealth)
	router.GET(baseURL+"/api/production/orders", wrapper.GetOrders)
	router.POST(baseURL+"/api/production/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/production/orders/order/:orderId", wrapper.GetOrderByOrderId)
	router.GET(baseURL+"/api/production/orders/:id", wrapper.GetOrder)
	router.PATCH(baseURL+"/api/production/orders/:id/status", wrapper.UpdateOrderStatus)
	router.GET(baseURL+"/api/production/queue", wrapper.GetProductionQueue)
}
