package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wizperch/perch/sqlite"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		var pageCount int
		err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&pageCount)
		require.NoError(t, err)

		var commentCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&commentCount)
		require.NoError(t, err)
	})

	t.Run("records schema version and enforces foreign keys", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		var version, foreignKeys int
		require.NoError(t, db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
		require.NoError(t, db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys))
		require.Equal(t, 1, version)
		require.Equal(t, 1, foreignKeys)

		_, err := db.ExecContext(ctx,
			"INSERT INTO comments (id, page_id, text, created_at) VALUES ('c1', 'missing', 'x', '2026-01-01T00:00:00Z')")
		require.Error(t, err)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(t.TempDir() + "/test.db")
		require.NoError(t, db.Open())
		defer db.Close()

		var journalMode string
		err := db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})

	t.Run("reopens an existing database", func(t *testing.T) {
		t.Parallel()

		path := t.TempDir() + "/test.db"
		first := sqlite.NewDB(path)
		require.NoError(t, first.Open())
		require.NoError(t, first.Close())

		second := sqlite.NewDB(path)
		require.NoError(t, second.Open())
		defer second.Close()

		var pageCount int
		require.NoError(t, second.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM pages").Scan(&pageCount))
		require.Zero(t, pageCount)
	})
}
