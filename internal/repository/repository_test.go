package repository_test

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// startPostgres runs a throwaway postgres with every up migration applied and returns
// a pool connected to it. The container is removed when t finishes.
func startPostgres(ctx context.Context, t *testing.T) (*pgxpool.Pool, error) {
	migrations, err := filepath.Glob("../migrations/*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("filepath.Glob: %w", err)
	}
	slices.Sort(migrations)

	container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithDatabase("storefront"),
		postgres.WithInitScripts(migrations...),
	)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		return nil, fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("container.ConnectionString: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return pool, nil
}
