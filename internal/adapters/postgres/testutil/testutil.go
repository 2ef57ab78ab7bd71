package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revquotes/console/internal/adapters/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id         text PRIMARY KEY,
    token      text NOT NULL,
    user_json  jsonb,
    created_at timestamptz NOT NULL,
    updated_at timestamptz NOT NULL
);
TRUNCATE sessions;
`

// OpenMigratedPool connects to TEST_DATABASE_URL and applies the schema.
// Tests that need a real database skip when the variable is unset.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres-backed test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{MaxConns: 4})
	if err != nil {
		t.Fatalf("open test pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("apply test schema: %v", err)
	}
	return pool
}
