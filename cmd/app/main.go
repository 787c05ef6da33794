package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"production/cmd"
	"production/internal/adapters/out/postgres"
	"production/internal/adapters/out/rabbitmq"
	"production/internal/adapters/out/redis"
	"production/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file, using process environment")
	}

	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	dialer := rabbitmq.NewDialer(configs.RabbitMQURL, configs.IngestQueue, configs.EventsExchange)
	defer dialer.Close()

	consumerSession := rabbitmq.NewSession("consumer", dialer.Open, logger)
	publisherSession := rabbitmq.NewSession("publisher", dialer.Open, logger)
	if _, err := consumerSession.Channel(); err != nil {
		log.Fatalf("connect to rabbitmq: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		rabbitmq.NewEventPublisher(publisherSession, logger),
		rabbitmq.NewQueueSource(consumerSession, configs.IngestQueue),
		dialer,
		openLedger(ctx, configs, logger),
		logger,
	)

	if err := run(ctx, app, configs.HTTPPort, logger); err != nil {
		log.Fatal(err)
	}
}

func openLedger(ctx context.Context, configs cmd.Config, logger *slog.Logger) ports.DeliveryLedger {
	if configs.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, notification ledger disabled")
		return redis.NopLedger{}
	}
	rdb, err := redis.Connect(ctx, configs.RedisAddr)
	if err != nil {
		log.Fatalf("connect to redis: %v", err)
	}
	return redis.NewLedger(rdb, configs.LedgerTTL())
}

// run serves HTTP, consumes notifications and runs the scheduled jobs until ctx
// is cancelled or one of them fails.
func run(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) error {
	e, err := app.NewRouter()
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	jobManager := app.NewJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	consumer := app.NewOrderCreatedConsumer()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server started", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return consumer.Run(ctx)
	})

	err = g.Wait()
	logger.Info("production service stopped")
	return err
}
