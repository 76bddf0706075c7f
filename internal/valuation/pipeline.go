package valuation

import (
	"context"
	"math"

	"github.com/donaldgifford/vehicle-valuator/internal/metrics"
	"github.com/donaldgifford/vehicle-valuator/internal/telemetry"
	"github.com/donaldgifford/vehicle-valuator/pkg/adjust"
	"github.com/donaldgifford/vehicle-valuator/pkg/normalize"
	"github.com/donaldgifford/vehicle-valuator/pkg/pricing"
	score "github.com/donaldgifford/vehicle-valuator/pkg/scorer"
	"github.com/donaldgifford/vehicle-valuator/pkg/stats"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// Price range half-width bounds, as fractions of the final value.
const (
	rangeDefault = 0.10
	rangeMin     = 0.05
	rangeMax     = 0.15
)

// runLocal executes the in-process pipeline and returns the result with the
// resolver's confidence hint.
func (o *Orchestrator) runLocal(
	ctx context.Context,
	in *input,
	trail []domain.Stage,
	fallback bool,
) (*domain.ValuationResult, int) {
	ctx, span := telemetry.Tracer().Start(ctx, "valuation.local")
	defer span.End()

	raw, label := o.acquire(ctx, in)

	normalized := o.normalizer.Normalize(raw, label)
	if dropped := len(raw) - len(normalized); dropped > 0 {
		metrics.ListingsDroppedTotal.Add(float64(dropped))
	}
	comparable := normalize.Comparable(normalize.Dedupe(normalized), in.vehicle, o.yearTolerance)
	trail = append(trail, domain.StageNormalized)

	st := stats.Aggregate(comparable)
	trail = append(trail, domain.StageAggregated)

	base := o.resolver.Resolve(&pricing.Input{
		Vehicle:  in.vehicle,
		Mileage:  in.mileage,
		Listings: comparable,
		Stats:    st,
	})
	trail = append(trail, domain.StageBaseResolved)

	adjs := o.adjuster.Compute(ctx, &adjust.Input{
		Vehicle:     in.vehicle,
		Base:        base.Value,
		Mileage:     in.mileage,
		Condition:   in.condition,
		TitleStatus: in.title,
		ZIP:         in.zip,
		Features:    in.features,
		SaleDate:    in.saleDate,
		Stats:       st,
	})
	total := adjust.Total(adjs)
	final := adjust.Apply(base.Value, total, o.finalFloor)
	if math.IsNaN(total) {
		// Apply already floored the value; keep the record serializable.
		total = 0
	}
	trail = append(trail, domain.StageAdjusted)

	conf := score.Confidence(score.Signals{
		ListingCount:      len(comparable),
		VINSupplied:       in.vehicle.VIN != "",
		VINMatched:        vinMatched(in.vehicle.VIN, comparable),
		MileageSupplied:   in.mileage != nil,
		ConditionSupplied: in.conditionSupplied,
		TrimSupplied:      in.vehicle.Trim != "",
		FeaturesSupplied:  len(in.features) > 0,
		Method:            base.Method,
	})
	trail = append(trail, domain.StageScored)

	lead := domain.SourceLocal
	if fallback {
		lead = domain.SourceLocalFallback
	}

	result := &domain.ValuationResult{
		ID:              o.newID(),
		CorrelationID:   in.correlationID,
		Vehicle:         in.vehicle,
		Mileage:         in.mileage,
		Condition:       in.condition,
		ZIP:             in.zip,
		BaseValue:       base.Value,
		BaseMethod:      base.Method,
		Adjustments:     adjs,
		TotalAdjustment: total,
		FinalValue:      final,
		PriceRange:      o.priceRange(final, base.Method, st),
		ConfidenceScore: conf.Score,
		Confidence:      conf,
		SourcesUsed:     []string{lead, methodMarker(base.Method)},
		ListingCount:    len(comparable),
		Statistics:      st,
		FallbackUsed:    fallback,
		Stages:          append(trail, domain.StageAssembled),
		CreatedAt:       o.now().UTC(),
	}
	return result, base.ConfidenceHint
}

// acquire returns the raw listings for in and the source label to
// normalize them under. Source failures yield no listings.
func (o *Orchestrator) acquire(ctx context.Context, in *input) ([]domain.RawListing, string) {
	if in.rawSupplied {
		return in.raw, in.listingSource
	}
	if o.source == nil {
		return nil, ""
	}

	lctx, cancel := context.WithTimeout(ctx, o.listingTimeout)
	defer cancel()

	raw, err := o.source.FetchListings(lctx, in.vehicle, in.zip)
	if err != nil {
		o.log.Warn("listing fetch failed, continuing without market data",
			"make", in.vehicle.Make,
			"model", in.vehicle.Model,
			"year", in.vehicle.Year,
			"correlation_id", in.correlationID,
			"error", err,
		)
		return nil, ""
	}
	return raw, ""
}

// priceRange widens the final value by half the IQR for market results,
// bounded to [5%, 15%] of final, else by 10%. Low never drops below the
// final floor.
func (o *Orchestrator) priceRange(final float64, method domain.BaseMethod, st *domain.ListingStatistics) domain.PriceRange {
	half := final * rangeDefault
	if method == domain.MethodMarket && st != nil && st.IQR > 0 {
		half = min(max(st.IQR/2, final*rangeMin), final*rangeMax)
	}
	return domain.PriceRange{
		Low:  math.Max(math.Round(final-half), o.finalFloor),
		High: math.Round(final + half),
	}
}

func methodMarker(m domain.BaseMethod) string {
	switch m {
	case domain.MethodMarket:
		return domain.SourceMarket
	case domain.MethodDepreciation:
		return domain.SourceDepreciation
	default:
		return domain.SourceFloor
	}
}

func vinMatched(v string, comparable []domain.Listing) bool {
	if v == "" {
		return false
	}
	for i := range comparable {
		if comparable[i].VIN == v {
			return true
		}
	}
	return false
}
