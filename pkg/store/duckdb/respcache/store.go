package respcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/price-atlas/pkg/models/store"
)

// Store persists raw HTTP response bodies keyed by the exact request URL.
// Expiry evaluation is left to the caller so a substitute clock can drive it.
type Store interface {
	Get(ctx context.Context, url string) (*store.CacheEntry, error)
	Put(ctx context.Context, entry store.CacheEntry) error
	Purge(ctx context.Context, now time.Time) (int64, error)
}

type cacheStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &cacheStore{db: db}, nil
}

// Get returns the stored entry for url, or nil when none exists.
func (s *cacheStore) Get(ctx context.Context, url string) (*store.CacheEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT url, body, fetched_at, expires_at FROM response_cache WHERE url = ?`, url)

	var entry store.CacheEntry
	err := row.Scan(&entry.URL, &entry.Body, &entry.FetchedAt, &entry.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache entry: %w", err)
	}
	return &entry, nil
}

// Put stores entry, replacing any previous response for the same URL.
func (s *cacheStore) Put(ctx context.Context, entry store.CacheEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO response_cache (url, body, fetched_at, expires_at) VALUES (?, ?, ?, ?)`,
		entry.URL, entry.Body, entry.FetchedAt, entry.ExpiresAt)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Purge removes entries that expired before now and reports how many went away.
func (s *cacheStore) Purge(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM response_cache WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return removed, nil
}
