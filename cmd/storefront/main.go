package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/handlers"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/messaging"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/source"
	"github.com/nikolayk812/storefront/internal/storefront"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("storefront: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Configuration and logger
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging.NewLogger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// 2. Product source, optionally behind the redis cache
	src, closeSource, err := newProductSource(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("newProductSource: %w", err)
	}
	defer closeSource()

	// 3. Receipt publisher
	publisher, closePublisher, err := newReceiptPublisher(cfg, logger)
	if err != nil {
		return fmt.Errorf("newReceiptPublisher: %w", err)
	}
	defer closePublisher()

	// 4. Session
	unit, err := cfg.Currency()
	if err != nil {
		return fmt.Errorf("cfg.Currency: %w", err)
	}
	tag, err := cfg.Language()
	if err != nil {
		return fmt.Errorf("cfg.Language: %w", err)
	}
	maxPrice, err := cfg.MaxPrice()
	if err != nil {
		return fmt.Errorf("cfg.MaxPrice: %w", err)
	}

	session := storefront.NewSession(storefront.Options{
		Source:         src,
		Publisher:      publisher,
		Currency:       unit,
		Language:       tag,
		PageSize:       cfg.Catalog.PageSize,
		MaxPrice:       maxPrice,
		ClearOnConfirm: cfg.Checkout.ClearOnConfirm,
		NoticeDuration: cfg.Notice.Duration,
		Logger:         logger,
	})
	defer session.Close()

	session.Start(ctx)

	// 5. HTTP server
	mux := http.NewServeMux()
	handlers.NewHandler(session, logger.Named("http")).RegisterRoutes(mux)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      otelhttp.NewHandler(mux, "storefront"),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 6. Graceful shutdown
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server.ListenAndServe: %w", err)
		}
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}

	return nil
}

func newProductSource(ctx context.Context, cfg config.Config, logger *zap.Logger) (port.ProductSource, func(), error) {
	var (
		src     port.ProductSource
		closers []func()
	)

	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		closers = append(closers, pool.Close)
		src = repository.NewProduct(pool)

	default:
		src = source.NewHTTPSource(source.HTTPOptions{
			URL:      cfg.Catalog.URL,
			Timeout:  cfg.Catalog.FetchTimeout,
			MaxTries: cfg.Catalog.FetchRetries,
			Logger:   logger.Named("source"),
		})
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		closers = append(closers, func() { _ = rdb.Close() })
		src = source.NewCachedSource(src, rdb, cfg.Redis.TTL, logger.Named("cache"))
	}

	logger.Info("product source ready",
		zap.String("source", cfg.Catalog.Source),
		zap.Bool("cached", cfg.Redis.Addr != ""))

	return src, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}, nil
}

func newReceiptPublisher(cfg config.Config, logger *zap.Logger) (port.ReceiptPublisher, func(), error) {
	if cfg.AMQP.URL == "" {
		return messaging.NoopPublisher{}, func() {}, nil
	}

	conn, err := amqp.Dial(cfg.AMQP.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp.Dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("conn.Channel: %w", err)
	}

	queue, err := messaging.DeclareReceiptQueue(ch, cfg.AMQP.Queue)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("messaging.DeclareReceiptQueue: %w", err)
	}

	logger.Info("publishing receipts", zap.String("queue", queue))

	return messaging.NewReceiptPublisher(ch, queue), func() {
		_ = ch.Close()
		_ = conn.Close()
	}, nil
}
