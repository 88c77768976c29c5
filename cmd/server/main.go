package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"triphaven/internal/app"
	"triphaven/internal/config"
	"triphaven/internal/events"
	"triphaven/internal/gateway"
	"triphaven/internal/handler"
	"triphaven/internal/logger"
	internalRedis "triphaven/internal/redis"
	"triphaven/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before storage so we can instrument it).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			zlog.Warn("failed to initialize New Relic", zap.Error(err))
		} else {
			zlog.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	storage, err := app.NewStorage(ctx, cfg, nrApp)
	if err != nil {
		zlog.Fatal("failed to connect to storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	zlog.Info("connected to storage",
		zap.String("driver", cfg.Storage.Driver),
		zap.Bool("transactional_checkout", storage.UnitOfWork != nil),
	)

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		zlog.Fatal("failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		zlog.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	}

	var producer *events.PaymentEventProducer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = events.NewPaymentEventProducer(cfg.Kafka.Brokers, cfg.Kafka.PaymentsTopic, zlog)
	}

	// Wire dependencies.
	server := wireServer(cfg, storage, redisClient, producer, nrApp, zlog)

	// Start server in goroutine.
	go func() {
		zlog.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			zlog.Warn("failed to close kafka producer", zap.Error(err))
		}
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := storage.Close(shutdownCtx); err != nil {
		zlog.Warn("failed to close storage", zap.Error(err))
	}
	if nrApp != nil {
		nrApp.Shutdown(cfg.Server.ShutdownTimeout)
	}

	zlog.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	cfg *config.Config,
	storage *app.Storage,
	redisClient *redis.Client,
	producer *events.PaymentEventProducer,
	nrApp *newrelic.Application,
	zlog *zap.Logger,
) *http.Server {
	// Redis-backed helpers are optional.
	var tripCache service.TripCache
	var locker internalRedis.RequestLocker
	if redisClient != nil {
		tripCache = internalRedis.NewCacheStore(redisClient, cfg.Redis.CacheTTL)
		locker = internalRedis.NewLockStore(redisClient)
	}

	var publisher service.EventPublisher
	if producer != nil {
		publisher = producer
	}

	var paymentGateway service.PaymentGateway
	stripeGateway, err := gateway.NewStripeGateway(gateway.StripeConfig{
		SecretKey: cfg.Stripe.SecretKey,
		Currency:  cfg.Stripe.Currency,
		APIURL:    cfg.Stripe.APIURL,
	}, zlog)
	if err != nil {
		zlog.Warn("payment gateway not configured; payment intents will fail", zap.Error(err))
		paymentGateway = gateway.Unconfigured{}
	} else {
		paymentGateway = stripeGateway
	}

	// Initialize services.
	catalogService := service.NewCatalogService(storage.Trips, tripCache, zlog)
	cartService := service.NewCartService(storage.Carts)
	paymentService := service.NewPaymentService(paymentGateway)
	checkoutService := service.NewCheckoutService(storage.Payments, storage.Carts, storage.UnitOfWork, publisher, zlog)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		CatalogHandler:  handler.NewCatalogHandler(catalogService),
		CartHandler:     handler.NewCartHandler(cartService),
		PaymentHandler:  handler.NewPaymentHandler(paymentService),
		CheckoutHandler: handler.NewCheckoutHandler(checkoutService),
		RedisClient:     redisClient,
		RequestLocker:   locker,
		NewRelicApp:     nrApp,
		Logger:          zlog,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
