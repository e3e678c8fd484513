package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "overcooked-cart/cart-svc/internal/api/http"
	"overcooked-cart/cart-svc/internal/provider"
	"overcooked-cart/cart-svc/internal/service"
	"overcooked-cart/cart-svc/internal/storage"
	"overcooked-cart/config"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore := mustInitStore(ctx, cfg, logger)
	defer closeStore()

	var publisher service.OrderPublisher
	if cfg.KafkaBroker != "" {
		writer := config.NewKafkaWriter(cfg.KafkaBroker, cfg.OrdersTopic)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	} else {
		logger.Warn("KAFKA_BROKER not set, order events are disabled")
	}

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	handler := httpapi.NewHandler(
		store,
		provider.NewCatalogClient(cfg.CatalogURL, client),
		provider.NewAuthClient(cfg.AuthURL, client),
		publisher,
		service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL},
		logger,
	)

	if err := httpapi.StartServer(ctx, cfg.HTTPAddr, httpapi.NewRouter(handler), logger); err != nil {
		logger.Fatal("Cart Service stopped: ", err)
	}
	logger.Info("Cart Service shut down")
}

func mustInitStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (service.DurableStore, func()) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db := config.MustInitPostgres(cfg.PostgresDSN, logger)
		pg := storage.NewPostgresStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal("Failed to ensure schema: ", err)
		}
		logger.Info("Using Postgres durable store")
		return pg, func() { db.Close() }
	case config.StoreDriverRedis:
		rdb := config.MustInitRedis(cfg.RedisAddr, logger)
		logger.Info("Using Redis durable store")
		return storage.NewRedisStore(rdb), func() { rdb.Close() }
	default:
		logger.Fatalf("Unknown STORE_DRIVER %q", cfg.StoreDriver)
		return nil, nil
	}
}
