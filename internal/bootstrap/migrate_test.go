package bootstrap

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRequiresDSN(t *testing.T) {
	err := Migrate(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DSN")
}

// TestMigrateAppliesSchema runs against a real Postgres when TEST_DB_DSN is
// set, e.g. TEST_DB_DSN="host=localhost user=postgres dbname=muselink_test
// sslmode=disable". The database should be disposable.
func TestMigrateAppliesSchema(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping migration integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	require.NoError(t, Migrate(ctx, dsn))
	// reruns are no-ops
	require.NoError(t, Migrate(ctx, dsn))

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{
		"users", "profiles", "projects", "applications", "matches", "messages", "payments",
	} {
		var exists bool
		err := db.QueryRowContext(ctx,
			"select exists (select 1 from information_schema.tables where table_name = $1)",
			table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist after migration", table)
	}
}
