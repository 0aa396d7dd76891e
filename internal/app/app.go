package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/config"
	"github.com/corray333/backend-labs/checkout/internal/dal/interfaces/icatalogrepo"
	"github.com/corray333/backend-labs/checkout/internal/dal/kafka"
	"github.com/corray333/backend-labs/checkout/internal/dal/orderstore"
	"github.com/corray333/backend-labs/checkout/internal/dal/postgres"
	"github.com/corray333/backend-labs/checkout/internal/dal/redis"
	basketrepo "github.com/corray333/backend-labs/checkout/internal/dal/repositories/basket/postgres"
	catalogrepo "github.com/corray333/backend-labs/checkout/internal/dal/repositories/catalog/postgres"
	cachedcatalogrepo "github.com/corray333/backend-labs/checkout/internal/dal/repositories/catalog/redis"
	deliveryrepo "github.com/corray333/backend-labs/checkout/internal/dal/repositories/delivery/http"
	kafkarepo "github.com/corray333/backend-labs/checkout/internal/dal/repositories/reservation/kafka"
	rabbitmqrepo "github.com/corray333/backend-labs/checkout/internal/dal/repositories/reservation/rabbitmq"
	"github.com/corray333/backend-labs/checkout/internal/metrics"
	"github.com/corray333/backend-labs/checkout/internal/otel"
	"github.com/corray333/backend-labs/checkout/internal/service/services/deliverysvc"
	"github.com/corray333/backend-labs/checkout/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/checkout/internal/service/services/reservationsvc"
	httptransport "github.com/corray333/backend-labs/checkout/internal/transport/http"
	"github.com/corray333/backend-labs/checkout/pkg/uricomposer"
	"golang.org/x/sync/errgroup"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	otel           *otel.OtelController
	closers        []namedCloser
}

type namedCloser struct {
	name   string
	closer io.Closer
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	a := &App{}
	a.otel = otel.MustInitOtel()
	a.postgresClient = postgres.MustNewClient()
	registry := metrics.NewRegistry()

	catalogCfg := config.Catalog()
	var catalog icatalogrepo.ICatalogRepository = catalogrepo.NewPostgresCatalogRepository(a.postgresClient.Pool())
	if catalogCfg.CacheEnabled {
		redisClient := redis.MustNewClient(catalogCfg.RedisAddr)
		a.closers = append(a.closers, namedCloser{"redis", redisClient})
		catalog = cachedcatalogrepo.NewCachedCatalogRepository(catalog, redisClient, catalogCfg.CacheTTL)
	}

	reservationCfg := config.Reservation()
	publisher := reservationsvc.MustNewPublisher(
		reservationsvc.WithSender(a.mustNewReservationSender(reservationCfg)),
		reservationsvc.WithTimeout(reservationCfg.Timeout),
		reservationsvc.WithMetrics(registry),
	)

	deliveryCfg := config.Delivery()
	notifier := deliverysvc.MustNewNotifier(
		deliverysvc.WithPoster(deliveryrepo.NewDeliveryHTTPClient()),
		deliverysvc.WithURL(deliveryCfg.URL()),
		deliverysvc.WithTimeout(deliveryCfg.Timeout),
		deliverysvc.WithMetrics(registry),
	)

	a.orderSvc = ordersvc.MustNewOrderService(
		ordersvc.WithBasketRepository(basketrepo.NewPostgresBasketRepository(a.postgresClient.Pool())),
		ordersvc.WithCatalogRepository(catalog),
		ordersvc.WithOrderStore(orderstore.NewStore(a.postgresClient)),
		ordersvc.WithReservationPublisher(publisher),
		ordersvc.WithDeliveryNotifier(notifier),
		ordersvc.WithURIComposer(uricomposer.New(catalogCfg.BaseURL)),
		ordersvc.WithMetrics(registry),
	)

	a.transport = httptransport.NewHTTPTransport(a.orderSvc,
		httptransport.WithMetricsHandler(registry.Handler()),
	)
	a.transport.RegisterRoutes()

	return a
}

type reservationSender interface {
	Send(ctx context.Context, body []byte) error
}

func (a *App) mustNewReservationSender(cfg config.ReservationConfig) reservationSender {
	switch cfg.Driver {
	case config.DriverRabbitMQ:
		slog.Info("Reservations go to RabbitMQ", "queue", cfg.Queue)

		return rabbitmqrepo.NewReservationRabbitMQSender(cfg.ConnectionString, cfg.Queue)
	case config.DriverKafka:
		writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.Queue)
		a.closers = append(a.closers, namedCloser{"kafka writer", writer})
		slog.Info("Reservations go to Kafka", "topic", cfg.Queue, "brokers", cfg.KafkaBrokers)

		return kafkarepo.NewReservationKafkaSender(writer)
	default:
		panic(fmt.Sprintf("unknown reservation driver %q", cfg.Driver))
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting HTTP server")

		return a.transport.Run()
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return a.transport.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("HTTP server error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	a.shutdown()
	slog.Info("Application shutdown complete")
}

func (a *App) shutdown() {
	for _, c := range a.closers {
		if err := c.closer.Close(); err != nil {
			slog.Error("Close error", "component", c.name, "error", err)
		}
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.otel.Shutdown(ctx); err != nil {
		slog.Error("Tracer shutdown error", "error", err)
	}
}
