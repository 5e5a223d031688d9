package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so repositories can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Exists wraps a SELECT in SELECT EXISTS(...)
func Exists(ctx context.Context, conn DBTX, inner squirrel.SelectBuilder) (bool, error) {
	query, args, err := inner.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var found bool
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		return false, fmt.Errorf("error checking existence: %w", err)
	}
	return found, nil
}

// Count runs a single-column COUNT query
func Count(ctx context.Context, conn DBTX, builder squirrel.SelectBuilder) (int, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting rows: %w", err)
	}
	return n, nil
}
