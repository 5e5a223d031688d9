// Package dbtest opens throwaway stores for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yigit/uniadmin/internal/app/schema"
	"github.com/yigit/uniadmin/internal/db"
	"github.com/yigit/uniadmin/internal/pkg/logger"
)

// Open returns a private in-memory store with the schema in place. It is
// closed when the test ends.
func Open(t testing.TB) *db.SQLiteDB {
	t.Helper()
	return open(t, db.MemoryPath)
}

// OpenFile is Open backed by a file in the test's temp dir. It returns the
// path so tests can reopen it.
func OpenFile(t testing.TB) (*db.SQLiteDB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "university.db")
	return open(t, path), path
}

func open(t testing.TB, path string) *db.SQLiteDB {
	t.Helper()
	ctx := context.Background()

	store, err := db.NewSQLiteDB(ctx, db.Options{Path: path, Logger: logger.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, schema.Ensure(ctx, store.DB, logger.Nop()))
	return store
}
