package listings_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vehicle-valuator/internal/listings"
	"github.com/donaldgifford/vehicle-valuator/internal/listings/mocks"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

func TestCachingSource_FetchListings(t *testing.T) {
	t.Parallel()

	key := listings.CacheKey(camry, "94103")
	fresh := []domain.RawListing{{"price": 24000.0, "source": "autotrader"}}
	cached := []domain.RawListing{{"price": 23000.0, "source": "autotrader"}}

	tests := []struct {
		name       string
		setupMocks func(src *mocks.MockSource, cache *mocks.MockCache)
		want       []domain.RawListing
		wantErr    bool
	}{
		{
			name: "cache hit skips upstream",
			setupMocks: func(_ *mocks.MockSource, cache *mocks.MockCache) {
				cache.EXPECT().GetCachedListings(mock.Anything, key).Return(cached, true, nil).Once()
			},
			want: cached,
		},
		{
			name: "cache miss fetches and stores",
			setupMocks: func(src *mocks.MockSource, cache *mocks.MockCache) {
				cache.EXPECT().GetCachedListings(mock.Anything, key).Return(nil, false, nil).Once()
				src.EXPECT().FetchListings(mock.Anything, camry, "94103").Return(fresh, nil).Once()
				cache.EXPECT().PutCachedListings(mock.Anything, key, fresh, time.Hour).Return(nil).Once()
			},
			want: fresh,
		},
		{
			name: "cache read error falls through to upstream",
			setupMocks: func(src *mocks.MockSource, cache *mocks.MockCache) {
				cache.EXPECT().GetCachedListings(mock.Anything, key).Return(nil, false, errors.New("db down")).Once()
				src.EXPECT().FetchListings(mock.Anything, camry, "94103").Return(fresh, nil).Once()
				cache.EXPECT().PutCachedListings(mock.Anything, key, fresh, time.Hour).Return(errors.New("db down")).Once()
			},
			want: fresh,
		},
		{
			name: "upstream error is returned and not cached",
			setupMocks: func(src *mocks.MockSource, cache *mocks.MockCache) {
				cache.EXPECT().GetCachedListings(mock.Anything, key).Return(nil, false, nil).Once()
				src.EXPECT().FetchListings(mock.Anything, camry, "94103").Return(nil, errors.New("timeout")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := mocks.NewMockSource(t)
			cache := mocks.NewMockCache(t)
			tt.setupMocks(src, cache)

			cs := listings.NewCachingSource(src, cache, time.Hour)
			got, err := cs.FetchListings(context.Background(), camry, "94103")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// memCache is an in-memory Cache for concurrency tests.
type memCache struct {
	mu sync.Mutex
	m  map[string][]domain.RawListing
}

func (c *memCache) GetCachedListings(_ context.Context, key string) ([]domain.RawListing, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok, nil
}

func (c *memCache) PutCachedListings(_ context.Context, key string, l []domain.RawListing, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = l
	return nil
}

func TestCachingSource_CollapsesConcurrentMisses(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	release := make(chan struct{})
	src := listings.SourceFunc(func(_ context.Context, _ domain.Vehicle, _ string) ([]domain.RawListing, error) {
		calls.Add(1)
		<-release
		return []domain.RawListing{{"price": 20000.0}}, nil
	})

	cs := listings.NewCachingSource(src, &memCache{m: map[string][]domain.RawListing{}}, time.Hour)

	const n = 8
	var wg sync.WaitGroup
	results := make([][]domain.RawListing, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = cs.FetchListings(context.Background(), camry, "94103")
		}()
	}

	// Give the goroutines time to pile up behind the first fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(2), "concurrent misses share an upstream call")
	for _, r := range results {
		assert.Len(t, r, 1)
	}

	_, _ = cs.FetchListings(context.Background(), camry, "94103")
	assert.LessOrEqual(t, calls.Load(), int32(2), "later fetches are served from cache")
}

func TestCachingSource_CancelledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	src := listings.SourceFunc(func(ctx context.Context, _ domain.Vehicle, _ string) ([]domain.RawListing, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return []domain.RawListing{{"price": 20000.0}}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	cs := listings.NewCachingSource(src, &memCache{m: map[string][]domain.RawListing{}}, time.Hour)

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := cs.FetchListings(leaderCtx, camry, "94103")
		leaderErr <- err
	}()
	<-started

	type result struct {
		listings []domain.RawListing
		err      error
	}
	follower := make(chan result, 1)
	go func() {
		l, err := cs.FetchListings(context.Background(), camry, "94103")
		follower <- result{l, err}
	}()

	// Let the follower join the in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	got := <-follower
	require.NoError(t, got.err)
	assert.Len(t, got.listings, 1)
	assert.Equal(t, int32(1), calls.Load())
}
