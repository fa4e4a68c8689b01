package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/foodfetch/storefront/internal/dal/catalogapi"
	"github.com/foodfetch/storefront/internal/dal/interfaces/ieventsrepo"
	"github.com/foodfetch/storefront/internal/dal/interfaces/ikvbridge"
	"github.com/foodfetch/storefront/internal/dal/interfaces/iorderapi"
	"github.com/foodfetch/storefront/internal/dal/orderapi"
	"github.com/foodfetch/storefront/internal/dal/postgres"
	"github.com/foodfetch/storefront/internal/dal/rabbitmq"
	eventsrepo "github.com/foodfetch/storefront/internal/dal/repositories/events/rabbitmq"
	kvmemory "github.com/foodfetch/storefront/internal/dal/repositories/kv/memory"
	kvpostgres "github.com/foodfetch/storefront/internal/dal/repositories/kv/postgres"
	kvredis "github.com/foodfetch/storefront/internal/dal/repositories/kv/redis"
	"github.com/foodfetch/storefront/internal/otel"
	"github.com/foodfetch/storefront/internal/service/services/cartsvc"
	"github.com/foodfetch/storefront/internal/service/services/menusvc"
	"github.com/foodfetch/storefront/internal/service/services/ordersvc"
	"github.com/foodfetch/storefront/internal/service/services/usersvc"
	httptransport "github.com/foodfetch/storefront/internal/transport/http"
	"github.com/foodfetch/storefront/internal/worker/statusadvance"
)

// App represents the application.
type App struct {
	cartSvc   *cartsvc.CartService
	orderSvc  *ordersvc.OrderService
	menuSvc   *menusvc.MenuService
	userSvc   *usersvc.UserService
	transport *httptransport.HTTPTransport
	worker    *statusadvance.Worker

	postgresClient *postgres.Client
	redisRepo      *kvredis.KVRepository
	rabbitMqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	a := &App{}

	a.otelController = otel.MustInitOtel()

	bridge := a.mustNewBridge()

	var events ieventsrepo.IEventsRepository
	if viper.GetBool("rabbitmq.enabled") {
		a.rabbitMqClient = rabbitmq.MustNewClient()
		events = eventsrepo.NewEventsRepository(a.rabbitMqClient)
	}

	var orderAPI iorderapi.IOrderAPI
	if viper.GetString("services.order_api.base_url") != "" {
		orderAPI = orderapi.NewClient()
	}

	a.cartSvc = cartsvc.MustNewCartService(cartsvc.WithBridge(bridge))
	a.orderSvc = ordersvc.MustNewOrderService(
		ordersvc.WithOrderAPI(orderAPI),
		ordersvc.WithEventsRepository(events),
	)
	a.menuSvc = menusvc.MustNewMenuService(
		menusvc.WithCatalogAPI(catalogapi.NewClient()),
		menusvc.WithBridge(bridge),
	)
	a.userSvc = usersvc.MustNewUserService(bridge)

	a.worker = statusadvance.NewWorker(a.orderSvc)

	a.transport = httptransport.NewHTTPTransport(a.cartSvc, a.orderSvc, a.menuSvc, a.userSvc)
	a.transport.RegisterRoutes()

	return a
}

// mustNewBridge builds the session persistence bridge for the configured
// storage driver. Unknown drivers fall back to the in-memory store.
func (a *App) mustNewBridge() ikvbridge.IKVBridge {
	driver := viper.GetString("storage.driver")

	switch driver {
	case "postgres":
		a.postgresClient = postgres.MustNewClient()

		return kvpostgres.NewKVRepository(a.postgresClient)
	case "redis":
		a.redisRepo = kvredis.MustNewKVRepository()

		return a.redisRepo
	default:
		if driver != "" && driver != "memory" {
			slog.Warn("Unknown storage driver, using in-memory store", "driver", driver)
		}

		return kvmemory.NewKVRepository()
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		a.worker.Start(ctx)
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown shuts down components sequentially: worker, HTTP server,
// RabbitMQ, storage, and OpenTelemetry.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.worker.Stop()
	slog.Info("Status advance worker stopped gracefully")

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.rabbitMqClient != nil {
		if err := a.rabbitMqClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if a.postgresClient != nil {
		a.postgresClient.Close()
		slog.Info("Database connection closed gracefully")
	}

	if a.redisRepo != nil {
		if err := a.redisRepo.Close(); err != nil {
			slog.Error("Redis connection close error", "error", err)
		} else {
			slog.Info("Redis connection closed gracefully")
		}
	}

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
