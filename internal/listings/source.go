// Package listings acquires raw market listings for a vehicle from HTTP
// providers, with optional caching and fan-out across several providers.
package listings

import (
	"context"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/vehicle-valuator/pkg/normalize"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// Source fetches raw listings for a vehicle near a ZIP code.
type Source interface {
	FetchListings(ctx context.Context, v domain.Vehicle, zip string) ([]domain.RawListing, error)
}

// Cache persists fetched listings. Both the Postgres store and the SQLite
// cache implement it.
type Cache interface {
	GetCachedListings(ctx context.Context, key string) ([]domain.RawListing, bool, error)
	PutCachedListings(ctx context.Context, key string, listings []domain.RawListing, ttl time.Duration) error
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, v domain.Vehicle, zip string) ([]domain.RawListing, error)

// FetchListings calls f.
func (f SourceFunc) FetchListings(ctx context.Context, v domain.Vehicle, zip string) ([]domain.RawListing, error) {
	return f(ctx, v, zip)
}

// CacheKey identifies a listing search. Trim is included because providers
// filter on it.
func CacheKey(v domain.Vehicle, zip string) string {
	return strings.Join([]string{
		normalize.MakeKey(v.Make),
		normalize.Key(v.Model),
		strconv.Itoa(v.Year),
		normalize.Key(v.Trim),
		strings.TrimSpace(zip),
	}, "|")
}

// tag returns a copy of raw with "source" set on records that lack one.
func tag(raw []domain.RawListing, source string) []domain.RawListing {
	out := make([]domain.RawListing, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			continue
		}
		if s, ok := r["source"].(string); ok && s != "" {
			out = append(out, r)
			continue
		}
		cp := maps.Clone(r)
		cp["source"] = source
		out = append(out, cp)
	}
	return out
}
