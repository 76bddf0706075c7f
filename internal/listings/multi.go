package listings

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/vehicle-valuator/internal/metrics"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// Named pairs a Source with the label used in logs and metrics.
type Named struct {
	Name   string
	Source Source
}

// MultiSource queries several sources concurrently and concatenates their
// results in source order. A failing source contributes nothing; the fetch
// only errors when every source failed.
type MultiSource struct {
	sources []Named
	log     *slog.Logger
}

// NewMultiSource creates a fan-out source.
func NewMultiSource(log *slog.Logger, sources ...Named) *MultiSource {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &MultiSource{sources: sources, log: log}
}

// FetchListings implements Source.
func (m *MultiSource) FetchListings(
	ctx context.Context,
	v domain.Vehicle,
	zip string,
) ([]domain.RawListing, error) {
	results := make([][]domain.RawListing, len(m.sources))
	errs := make([]error, len(m.sources))

	var g errgroup.Group
	for i, s := range m.sources {
		g.Go(func() error {
			raw, err := s.Source.FetchListings(ctx, v, zip)
			if err != nil {
				metrics.ListingSourceErrorsTotal.WithLabelValues(s.Name).Inc()
				m.log.Warn("listing source failed", "source", s.Name, "error", err)
				errs[i] = err
				return nil
			}
			results[i] = tag(raw, s.Name)
			return nil
		})
	}
	_ = g.Wait()

	var out []domain.RawListing
	failed := 0
	for i := range m.sources {
		if errs[i] != nil {
			failed++
			continue
		}
		out = append(out, results[i]...)
	}

	if len(m.sources) > 0 && failed == len(m.sources) {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
