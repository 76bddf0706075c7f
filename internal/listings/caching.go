package listings

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/donaldgifford/vehicle-valuator/internal/metrics"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// defaultSharedFetchTimeout bounds an upstream fetch shared by concurrent
// misses.
const defaultSharedFetchTimeout = 10 * time.Second

// CachingSource wraps a Source with a TTL cache. Concurrent misses for the
// same search share one upstream call. The shared call runs detached from
// any single caller's cancellation; each caller stops waiting when its own
// context ends. Cache failures are logged and bypassed; they never fail a
// fetch.
type CachingSource struct {
	next         Source
	cache        Cache
	ttl          time.Duration
	fetchTimeout time.Duration
	log          *slog.Logger
	group        singleflight.Group
}

// CachingOption configures a CachingSource.
type CachingOption func(*CachingSource)

// WithCacheLogger sets the logger.
func WithCacheLogger(l *slog.Logger) CachingOption {
	return func(c *CachingSource) {
		c.log = l
	}
}

// WithSharedFetchTimeout bounds the shared upstream fetch.
func WithSharedFetchTimeout(d time.Duration) CachingOption {
	return func(c *CachingSource) {
		c.fetchTimeout = d
	}
}

// NewCachingSource caches results from next in cache for ttl.
func NewCachingSource(next Source, cache Cache, ttl time.Duration, opts ...CachingOption) *CachingSource {
	c := &CachingSource{
		next:  next,
		cache: cache,
		ttl:   ttl,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),

		fetchTimeout: defaultSharedFetchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchListings implements Source.
func (c *CachingSource) FetchListings(
	ctx context.Context,
	v domain.Vehicle,
	zip string,
) ([]domain.RawListing, error) {
	key := CacheKey(v, zip)

	cached, ok, err := c.cache.GetCachedListings(ctx, key)
	switch {
	case err != nil:
		c.log.Warn("listing cache read failed", "key", key, "error", err)
	case ok:
		metrics.ListingCacheHitsTotal.Inc()
		return cached, nil
	}
	metrics.ListingCacheMissesTotal.Inc()

	ch := c.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()

		raw, err := c.next.FetchListings(fctx, v, zip)
		if err != nil {
			return nil, err
		}
		if err := c.cache.PutCachedListings(fctx, key, raw, c.ttl); err != nil {
			c.log.Warn("listing cache write failed", "key", key, "error", err)
		}
		return raw, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.log.Debug("listing fetch shared", "key", key)
		}
		return res.Val.([]domain.RawListing), nil
	}
}
