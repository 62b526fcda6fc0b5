// Package testutil provides helpers for repository integration tests.
// Tests that need a real database read TEST_DATABASE_URL and skip when it
// is not set, so the unit suite stays runnable anywhere.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"ledgerbot/internal/app"
)

// DB connects to the test database, applies migrations, and truncates all
// ledger tables so every test starts clean. The pool is closed via
// t.Cleanup.
func DB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, app.RunMigrations(ctx, pool))

	_, err = pool.Exec(ctx, `TRUNCATE channel_messages, user_points, point_grants, task_messages RESTART IDENTITY`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE tasks RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return pool
}
