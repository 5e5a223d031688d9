package db_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yigit/uniadmin/internal/db"
	"github.com/yigit/uniadmin/internal/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openMemory(t *testing.T) *db.SQLiteDB {
	t.Helper()
	store, err := db.NewSQLiteDB(context.Background(), db.Options{Path: db.MemoryPath, Logger: logger.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.DB.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	return store
}

func countItems(t *testing.T, store *db.SQLiteDB) int {
	t.Helper()
	var n int
	require.NoError(t, store.DB.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n))
	return n
}

func TestNewSQLiteDB_RequiresPath(t *testing.T) {
	_, err := db.NewSQLiteDB(context.Background(), db.Options{})
	require.Error(t, err)
}

func TestNewSQLiteDB_ForeignKeysOn(t *testing.T) {
	store := openMemory(t)

	var on int
	require.NoError(t, store.DB.QueryRow(`PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)
}

func TestWithTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits", func(t *testing.T) {
		store := openMemory(t)
		err := store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO items (name) VALUES ('a'), ('b')`)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 2, countItems(t, store))
	})

	t.Run("rolls back and returns fn error", func(t *testing.T) {
		store := openMemory(t)
		sentinel := errors.New("stop")

		err := store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `INSERT INTO items (name) VALUES ('a')`); err != nil {
				return err
			}
			return sentinel
		})
		require.ErrorIs(t, err, sentinel)
		assert.Equal(t, 0, countItems(t, store))
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		store := openMemory(t)

		assert.Panics(t, func() {
			_ = store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
				_, _ = tx.ExecContext(ctx, `INSERT INTO items (name) VALUES ('a')`)
				panic("boom")
			})
		})
		assert.Equal(t, 0, countItems(t, store))

		// the writer lock was released
		require.NoError(t, store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO items (name) VALUES ('b')`)
			return err
		}))
		assert.Equal(t, 1, countItems(t, store))
	})

	t.Run("serializes writers", func(t *testing.T) {
		store := openMemory(t)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
					var n int
					if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
						return err
					}
					_, err := tx.ExecContext(ctx, `INSERT INTO items (name) VALUES (?)`, fmt.Sprintf("item-%d", n))
					return err
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, 20, countItems(t, store))
	})
}

func TestSQLiteDB_FilePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.db")

	store, err := db.NewSQLiteDB(ctx, db.Options{Path: path, Logger: logger.Nop()})
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())

	_, err = store.DB.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	require.NoError(t, store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO items (name) VALUES ('kept')`)
		return err
	}))
	require.NoError(t, store.Close())

	reopened, err := db.NewSQLiteDB(ctx, db.Options{Path: path, Logger: logger.Nop()})
	require.NoError(t, err)
	defer reopened.Close()

	var name string
	require.NoError(t, reopened.DB.QueryRow(`SELECT name FROM items`).Scan(&name))
	assert.Equal(t, "kept", name)

	var mode string
	require.NoError(t, reopened.DB.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestExistsAndCount(t *testing.T) {
	ctx := context.Background()
	store := openMemory(t)
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	_, err := store.DB.Exec(`INSERT INTO items (name) VALUES ('a'), ('b')`)
	require.NoError(t, err)

	found, err := db.Exists(ctx, store.DB, sb.Select("1").From("items").Where(squirrel.Eq{"name": "a"}))
	require.NoError(t, err)
	assert.True(t, found)

	found, err = db.Exists(ctx, store.DB, sb.Select("1").From("items").Where(squirrel.Eq{"name": "z"}))
	require.NoError(t, err)
	assert.False(t, found)

	n, err := db.Count(ctx, store.DB, sb.Select("COUNT(*)").From("items"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = db.Count(ctx, store.DB, sb.Select("COUNT(*)").From("missing"))
	assert.Error(t, err)
}
