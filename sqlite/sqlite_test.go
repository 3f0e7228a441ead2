package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/readtrack/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates every table", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		for _, table := range []string{"materials", "chapters", "quotes", "progress"} {
			var n int
			err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n)
			require.NoError(t, err, table)
			assert.Zero(t, n, table)
		}
	})

	t.Run("enforces foreign keys", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		_, err := db.ExecContext(context.Background(),
			"INSERT INTO chapters (id, material_id, url) VALUES ('c1', 'missing', 'https://example.com/1')")

		assert.Error(t, err)
	})

	t.Run("keeps data across reopen in WAL mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "reading.db")
		ctx := context.Background()

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(ctx, "INSERT INTO progress (url, percent, updated_at) VALUES ('https://example.com/1', 40, '2026-01-01')")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		defer db.Close()

		var mode string
		require.NoError(t, db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
		assert.Equal(t, "wal", mode)

		var percent int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT percent FROM progress WHERE url = 'https://example.com/1'").Scan(&percent))
		assert.Equal(t, 40, percent)
	})

	t.Run("fails for an unreachable path", func(t *testing.T) {
		t.Parallel()

		err := sqlite.NewDB("/nonexistent/dir/reading.db").Open()

		assert.Error(t, err)
	})

	t.Run("close without open is a no-op", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, sqlite.NewDB(":memory:").Close())
	})
}
