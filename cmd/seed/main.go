// Command seed imports the HTTP product catalog into Postgres so the
// storefront can run with catalog.source=postgres.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/source"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	if path := os.Getenv(config.EnvConfigPath); path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return fmt.Errorf("cfg.LoadFromFile: %w", err)
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return fmt.Errorf("cfg.LoadFromEnv: %w", err)
	}
	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("postgres dsn is empty")
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging.NewLogger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	src := source.NewHTTPSource(source.HTTPOptions{
		URL:      cfg.Catalog.URL,
		Timeout:  cfg.Catalog.FetchTimeout,
		MaxTries: cfg.Catalog.FetchRetries,
		Logger:   logger.Named("source"),
	})

	products, err := src.FetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("src.FetchProducts: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	repo := repository.NewProduct(pool)

	n, err := repo.ReplaceProducts(ctx, products)
	if err != nil {
		return fmt.Errorf("repo.ReplaceProducts: %w", err)
	}

	for _, p := range products {
		stored, err := repo.GetProduct(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("repo.GetProduct: %w", err)
		}
		if !stored.Price.Equal(p.Price) || stored.Title != p.Title {
			return fmt.Errorf("product[%d] does not match the imported catalog", p.ID)
		}
	}

	logger.Info("catalog imported", zap.String("url", cfg.Catalog.URL), zap.Int64("products", n))

	// the cached catalog must not outlive the import
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer func() { _ = rdb.Close() }()

		if err := source.NewCachedSource(nil, rdb, cfg.Redis.TTL, logger).Invalidate(ctx); err != nil {
			logger.Warn("invalidate product cache", zap.Error(err))
		}
	}

	return nil
}
