//go:build integration

package common

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Taichi-iskw/vidlike/migrations"
)

// SetupTestDB creates a PostgreSQL testcontainer and runs migrations
func SetupTestDB(t testing.TB) *pgxpool.Pool {
	ctx := context.Background()

	// Create PostgreSQL container
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	databaseURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Run migrations
	require.NoError(t, migrations.Up(databaseURL))

	// Create connection pool
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	pool, err := pgxpool.New(connectCtx, databaseURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// TruncateVideos empties the videos table and resets its sequence
func TruncateVideos(t testing.TB, pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), "TRUNCATE videos RESTART IDENTITY")
	require.NoError(t, err)
}
