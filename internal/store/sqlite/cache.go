// Package sqlite provides a file-backed listing cache for single-node
// deployments that run without Postgres.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS listing_cache (
	cache_key     TEXT PRIMARY KEY,
	listings      TEXT NOT NULL,
	listing_count INTEGER NOT NULL DEFAULT 0,
	fetched_at    INTEGER NOT NULL,
	expires_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_listing_cache_expires_at ON listing_cache (expires_at);
`

// Cache stores raw listings in SQLite. Timestamps are unix milliseconds.
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock sets the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// Open opens (creating if needed) the cache database at path and applies
// its schema.
func Open(path string, opts ...Option) (*Cache, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite cache path is required")
	}

	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite cache: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite cache: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying sqlite cache schema: %w", err)
	}

	c := &Cache{db: db, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Ping verifies the database is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// GetCachedListings returns unexpired listings cached under key.
func (c *Cache) GetCachedListings(ctx context.Context, key string) ([]domain.RawListing, bool, error) {
	var payload string
	err := c.db.QueryRowContext(ctx,
		`SELECT listings FROM listing_cache WHERE cache_key = ? AND expires_at > ?`,
		key, c.now().UnixMilli(),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading listing cache: %w", err)
	}

	var listings []domain.RawListing
	if err := json.Unmarshal([]byte(payload), &listings); err != nil {
		return nil, false, fmt.Errorf("decoding cached listings: %w", err)
	}
	return listings, true, nil
}

// PutCachedListings stores listings under key until ttl elapses.
func (c *Cache) PutCachedListings(
	ctx context.Context,
	key string,
	listings []domain.RawListing,
	ttl time.Duration,
) error {
	if listings == nil {
		listings = []domain.RawListing{}
	}
	payload, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("encoding listings: %w", err)
	}

	now := c.now()
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO listing_cache (cache_key, listings, listing_count, fetched_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET
			listings      = excluded.listings,
			listing_count = excluded.listing_count,
			fetched_at    = excluded.fetched_at,
			expires_at    = excluded.expires_at`,
		key, string(payload), len(listings), now.UnixMilli(), now.Add(ttl).UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("writing listing cache: %w", err)
	}
	return nil
}

// PruneListingCache removes expired entries and reports how many were
// deleted.
func (c *Cache) PruneListingCache(ctx context.Context) (int, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM listing_cache WHERE expires_at <= ?`, c.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("pruning listing cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned rows: %w", err)
	}
	return int(n), nil
}
