package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/chewy/internal/db"
)

// SQLiteResponseCache persists Trello response bodies across runs. It
// satisfies trello.Cache.
type SQLiteResponseCache struct {
	db db.DBTX
}

// NewSQLiteResponseCache creates a new SQLiteResponseCache.
func NewSQLiteResponseCache(conn db.DBTX) *SQLiteResponseCache {
	return &SQLiteResponseCache{db: conn}
}

func (r *SQLiteResponseCache) Lookup(ctx context.Context, key string) ([]byte, bool, error) {
	var body []byte
	err := r.db.QueryRowContext(ctx, `SELECT body FROM response_cache WHERE key = ?`, key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cached response %s: %w", key, err)
	}
	return body, true, nil
}

func (r *SQLiteResponseCache) Store(ctx context.Context, key string, body []byte) error {
	query := `INSERT OR REPLACE INTO response_cache (key, body, stored_at) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, key, body, nowUTC()); err != nil {
		return fmt.Errorf("caching response %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteResponseCache) Purge(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM response_cache`); err != nil {
		return fmt.Errorf("purging response cache: %w", err)
	}
	return nil
}

func (r *SQLiteResponseCache) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM response_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cached responses: %w", err)
	}
	return n, nil
}
