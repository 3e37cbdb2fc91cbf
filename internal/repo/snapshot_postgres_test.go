package repo_test

import (
	"context"
	"os"
	"testing"

	"github.com/rogerio-castellano/storefront/internal/db"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/stretchr/testify/require"
)

// Runs against a real database only when DATABASE_URL is set.
func TestPostgresSnapshotStore(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()

	database, err := db.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.EnsureSchema(ctx, database))

	_, err = database.ExecContext(ctx, "TRUNCATE TABLE snapshots")
	require.NoError(t, err)

	exerciseSnapshotStore(t, repo.NewPostgresSnapshotStore(database))
}
