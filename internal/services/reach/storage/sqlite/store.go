// Package sqlite persists reach documents in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/aviato/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/aviato/internal/services/reach/storage"
	"github.com/louisbranch/aviato/internal/services/reach/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store is a storage.Gateway over a single documents table.
type Store struct {
	sqlDB *sql.DB
	clock func() time.Time
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	return openDSN(ctx, dsn)
}

func openDSN(ctx context.Context, dsn string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, clock: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return storage.ErrClosed
	}
	return s.sqlDB.PingContext(ctx)
}

// Load returns the document stored under key.
func (s *Store) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if s == nil || s.sqlDB == nil {
		return nil, false, storage.ErrClosed
	}
	var value []byte
	err := s.sqlDB.QueryRowContext(ctx, "SELECT value FROM documents WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return value, true, nil
}

// Save upserts the document under key.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if s == nil || s.sqlDB == nil {
		return storage.ErrClosed
	}
	return upsert(ctx, s.sqlDB, key, value, s.clock())
}

// SaveAll upserts records in one transaction.
func (s *Store) SaveAll(ctx context.Context, records []storage.Record) error {
	if s == nil || s.sqlDB == nil {
		return storage.ErrClosed
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save all: %w", err)
	}
	rollbackWith := func(cause error) error {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("%w: rollback save all: %v", cause, rollbackErr)
		}
		return cause
	}
	now := s.clock()
	for _, r := range records {
		if err := upsert(ctx, tx, r.Key, r.Value, now); err != nil {
			return rollbackWith(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save all: %w", err)
	}
	return nil
}

// Remove deletes key. Missing keys are not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if s == nil || s.sqlDB == nil {
		return storage.ErrClosed
	}
	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM documents WHERE key = ?", key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, key string, value []byte, now time.Time) error {
	if value == nil {
		value = []byte{}
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
