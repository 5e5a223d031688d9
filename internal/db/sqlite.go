package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory store, used by tests.
const MemoryPath = ":memory:"

// Options configures NewSQLiteDB
type Options struct {
	Path        string
	BusyTimeout time.Duration
	JournalMode string
	Logger      zerolog.Logger
}

// SQLiteDB is the single-file relational store. All writes go through
// WithTransaction, which serializes them behind writeMu.
type SQLiteDB struct {
	DB      *sql.DB
	path    string
	writeMu sync.Mutex
	logger  zerolog.Logger
}

// NewSQLiteDB opens (creating if absent) the SQLite file at opts.Path.
func NewSQLiteDB(ctx context.Context, opts Options) (*SQLiteDB, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = 5 * time.Second
	}
	if opts.JournalMode == "" {
		opts.JournalMode = "WAL"
	}

	if opts.Path != MemoryPath {
		dir := filepath.Dir(opts.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: pragmas stick, and an in-memory database is not
	// silently duplicated per connection.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", opts.BusyTimeout.Milliseconds()),
		"PRAGMA foreign_keys = ON",
	}
	if opts.Path != MemoryPath {
		pragmas = append(pragmas,
			fmt.Sprintf("PRAGMA journal_mode = %s", opts.JournalMode),
			"PRAGMA synchronous = NORMAL",
		)
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	opts.Logger.Debug().Str("path", opts.Path).Str("journalMode", opts.JournalMode).Msg("SQLite store opened")
	return &SQLiteDB{DB: conn, path: opts.Path, logger: opts.Logger}, nil
}

// Path returns the file the store persists to.
func (db *SQLiteDB) Path() string {
	return db.path
}

// Close closes the underlying connection.
func (db *SQLiteDB) Close() error {
	if db.DB == nil {
		return nil
	}
	return db.DB.Close()
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx *sql.Tx) error

// WithTransaction runs fn in a transaction while holding the writer lock.
// fn's error is returned as-is after rollback so callers can match sentinels.
func (db *SQLiteDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("%w (rollback error: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
