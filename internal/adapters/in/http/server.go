package http

import (
	"context"
	"log/slog"
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	orderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	statusUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
	}
	orderGetter interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	orderByRefGetter interface {
		Handle(ctx context.Context, query queries.GetOrderByRefQuery) (queries.OrderView, error)
	}
	ordersByStatusGetter interface {
		Handle(ctx context.Context, query queries.GetOrdersByStatusQuery) ([]queries.OrderView, error)
	}
	queueGetter interface {
		Handle(ctx context.Context, query queries.GetProductionQueueQuery) (queries.QueueView, error)
	}
)

// HealthChecker reports whether a dependency the service cannot work without is reachable.
type HealthChecker interface {
	IsAlive() error
}

// Handlers groups the use cases served over HTTP. Health is optional.
type Handlers struct {
	CreateOrder   orderCreator
	UpdateStatus  statusUpdater
	GetOrder      orderGetter
	GetOrderByRef orderByRefGetter
	GetByStatus   ordersByStatusGetter
	GetQueue      queueGetter
	Health        HealthChecker
}

// Server implements servers.ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
	}
}

// GetHealth handles GET /health. It answers 503 while the message broker is
// unreachable so an orchestrator can take the instance out of rotation.
func (s *Server) GetHealth(ctx echo.Context) error {
	if s.handlers.Health != nil {
		if err := s.handlers.Health.IsAlive(); err != nil {
			s.logger.WarnContext(ctx.Request().Context(), "health check failed", "error", err)
			return ctx.String(http.StatusServiceUnavailable, "Unhealthy")
		}
	}
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/production/orders. Posting an orderId that
// already has a production order returns that order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.reject(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderRef, err := kernel.UUIDFromGoogle(body.OrderId)
	if err != nil {
		return s.reject(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	items, err := toDomainItems(body.Items)
	if err != nil {
		return s.reject(ctx, http.StatusBadRequest, "Invalid order items: "+err.Error())
	}

	priority := 0
	if body.Priority != nil {
		priority = *body.Priority
	}

	cmd, err := commands.NewCreateOrderCommand(orderRef, body.OrderNumber, items, priority, body.EstimatedTime)
	if err != nil {
		return s.reject(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to create production order")
	}

	return ctx.JSON(http.StatusCreated, toOrder(queries.NewOrderView(created)))
}

// GetOrders handles GET /api/production/orders?status=.
func (s *Server) GetOrders(ctx echo.Context, params servers.GetOrdersParams) error {
	query, err := queries.NewGetOrdersByStatusQuery(string(params.Status))
	if err != nil {
		return s.reject(ctx, http.StatusBadRequest, "Invalid status: "+string(params.Status))
	}

	views, err := s.handlers.GetByStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve production orders")
	}

	return ctx.JSON(http.StatusOK, toOrders(views))
}

// GetOrder handles GET /api/production/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id servers.OrderID) error {
	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.reject(ctx, http.StatusBadRequest, "Invalid production order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.reject(ctx, http.StatusBadRequest, "Invalid production order id")
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve production order")
	}

	return ctx.JSON(http.StatusOK, toOrder(view))
}

// GetOrderByOrderId handles GET /api/production/orders/order/{orderId}.
func (s *Server) GetOrderByOrderId(ctx echo.Context, orderId openapi_types.UUID) error { //nolint:revive,stylecheck // name fixed by the API contract
	orderRef, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return s.reject(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetOrderByRefQuery(orderRef)
	if err != nil {
		return s.reject(ctx, http.StatusBadRequest, "Invalid order id")
	}

	view, err := s.handlers.GetOrderByRef.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve production order")
	}

	return ctx.JSON(http.StatusOK, toOrder(view))
}

// UpdateOrderStatus handles PATCH /api/production/orders/{id}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id servers.OrderID) error {
	var body servers.UpdateOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.reject(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.reject(ctx, http.StatusBadRequest, "Invalid production order id")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, body.Status, body.EstimatedTime)
	if err != nil {
		return s.reject(ctx, http.StatusBadRequest, "Invalid status update: "+err.Error())
	}

	updated, err := s.handlers.UpdateStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to update production order status")
	}

	return ctx.JSON(http.StatusOK, toOrder(queries.NewOrderView(updated)))
}

// GetProductionQueue handles GET /api/production/queue.
func (s *Server) GetProductionQueue(ctx echo.Context) error {
	view, err := s.handlers.GetQueue.Handle(ctx.Request().Context(), queries.NewGetProductionQueueQuery())
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve production queue")
	}

	return ctx.JSON(http.StatusOK, servers.ProductionQueue{
		InQueue:         toOrders(view.InQueue),
		InProgress:      toOrders(view.InProgress),
		Ready:           toOrders(view.Ready),
		TotalInQueue:    view.TotalInQueue,
		TotalInProgress: view.TotalInProgress,
		TotalReady:      view.TotalReady,
	})
}
