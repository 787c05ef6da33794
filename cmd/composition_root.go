package cmd

import (
	"log/slog"

	httpin "production/internal/adapters/in/http"
	"production/internal/adapters/in/queue"
	"production/internal/adapters/out/postgres"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot builds the use cases and the inbound adapters from the
// infrastructure opened in main.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	source     ports.NotificationSource
	broker     httpin.HealthChecker
	ledger     ports.DeliveryLedger
	logger     *slog.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	source ports.NotificationSource,
	broker httpin.HealthChecker,
	ledger ports.DeliveryLedger,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		publisher:  publisher,
		source:     source,
		broker:     broker,
		ledger:     ledger,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// orderReader reads outside of any transaction.
func (c *CompositionRoot) orderReader() queries.OrderReader {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher, c.cfg.EventsExchange)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetOrderByRefQueryHandler() queries.GetOrderByRefQueryHandler {
	return queries.NewGetOrderByRefQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetProductionQueueQueryHandler() queries.GetProductionQueueQueryHandler {
	return queries.NewGetProductionQueueQueryHandler(c.orderReader(), services.NewQueueProjector())
}

func (c *CompositionRoot) CreateGetQueueSummaryQueryHandler() queries.GetQueueSummaryQueryHandler {
	return queries.NewGetQueueSummaryQueryHandler(c.gormDB)
}

// NewRouter returns the echo instance serving the production API.
func (c *CompositionRoot) NewRouter() (*echo.Echo, error) {
	createOrder := c.CreateCreateOrderCommandHandler()
	updateStatus := c.CreateUpdateOrderStatusCommandHandler()

	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:   &createOrder,
		UpdateStatus:  &updateStatus,
		GetOrder:      c.CreateGetOrderQueryHandler(),
		GetOrderByRef: c.CreateGetOrderByRefQueryHandler(),
		GetByStatus:   c.CreateGetOrdersByStatusQueryHandler(),
		GetQueue:      c.CreateGetProductionQueueQueryHandler(),
		Health:        c.broker,
	}, c.logger)

	return httpin.NewRouter(server, c.logger)
}

func (c *CompositionRoot) NewOrderCreatedConsumer() *queue.OrderCreatedConsumer {
	createOrder := c.CreateCreateOrderCommandHandler()
	return queue.NewOrderCreatedConsumer(c.source, c.ledger, &createOrder, queue.Config{
		MaxMessages:  c.cfg.IngestMaxMessages,
		WaitTime:     c.cfg.IngestWait(),
		BackoffDelay: c.cfg.IngestBackoff(),
	}, c.logger)
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetQueueSummaryQueryHandler(), c.cfg.QueueReportSchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
