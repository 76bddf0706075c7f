package valuation

import (
	"context"
	"math"

	"github.com/donaldgifford/vehicle-valuator/internal/metrics"
	"github.com/donaldgifford/vehicle-valuator/internal/remote"
	"github.com/donaldgifford/vehicle-valuator/internal/telemetry"
	"github.com/donaldgifford/vehicle-valuator/pkg/adjust"
	score "github.com/donaldgifford/vehicle-valuator/pkg/scorer"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// tryRemote asks the delegate for a valuation. It reports false on any
// failure so the caller can run the local pipeline instead.
func (o *Orchestrator) tryRemote(
	ctx context.Context,
	in *input,
	trail []domain.Stage,
) (*domain.ValuationResult, bool) {
	ctx, span := telemetry.Tracer().Start(ctx, "valuation.remote")
	defer span.End()

	rctx, cancel := context.WithTimeout(ctx, o.remoteTimeout)
	defer cancel()

	req := *in.request
	req.Vehicle = in.vehicle
	req.Features = in.features
	req.RawListings = nil

	resp, err := o.delegate.RunRemoteValuation(rctx, &req, in.correlationID)
	if err != nil {
		metrics.RemoteFallbacksTotal.Inc()
		o.log.Warn("remote valuation failed, falling back to local pipeline",
			"delegate", o.delegateName,
			"correlation_id", in.correlationID,
			"error", err,
		)
		return nil, false
	}

	return o.fromRemote(in, trail, resp), true
}

// fromRemote maps a delegate response onto a result.
func (o *Orchestrator) fromRemote(in *input, trail []domain.Stage, resp *remote.Response) *domain.ValuationResult {
	final := math.Max(math.Round(resp.EstimatedValue), o.finalFloor)

	adjs := make([]domain.Adjustment, 0, len(resp.Adjustments))
	for _, a := range resp.Adjustments {
		if math.IsNaN(a.Amount) || math.IsInf(a.Amount, 0) {
			continue
		}
		if a.Factor == "" {
			a.Factor = "Other"
		}
		if a.Reason == "" {
			a.Reason = "Reported by remote valuation service"
		}
		adjs = append(adjs, a)
	}
	total := adjust.Total(adjs)

	pr := domain.PriceRange{
		Low:  math.Max(math.Round(final*(1-rangeDefault)), o.finalFloor),
		High: math.Round(final * (1 + rangeDefault)),
	}
	if resp.PriceRange != nil && resp.PriceRange.Low > 0 && resp.PriceRange.Low <= resp.PriceRange.High {
		pr = domain.PriceRange{
			Low:  math.Max(math.Round(resp.PriceRange.Low), o.finalFloor),
			High: math.Max(math.Round(resp.PriceRange.High), final),
		}
	}

	conf := domain.ConfidenceExplanation{
		Score:       resp.Confidence,
		Level:       score.Level(resp.Confidence),
		Reasons:     []string{"Confidence reported by remote valuation service"},
		Suggestions: []string{},
	}

	name := o.delegateName
	if name == "" {
		name = "default"
	}

	return &domain.ValuationResult{
		ID:              o.newID(),
		CorrelationID:   in.correlationID,
		Vehicle:         in.vehicle,
		Mileage:         in.mileage,
		Condition:       in.condition,
		ZIP:             in.zip,
		BaseValue:       final - total,
		BaseMethod:      domain.MethodRemote,
		Adjustments:     adjs,
		TotalAdjustment: total,
		FinalValue:      final,
		PriceRange:      pr,
		ConfidenceScore: resp.Confidence,
		Confidence:      conf,
		SourcesUsed:     []string{domain.SourceRemotePrefix + name},
		Explanation:     resp.Explanation,
		ListingCount:    resp.ListingCount,
		Stages:          append(trail, domain.StageDelegated, domain.StageAssembled),
		CreatedAt:       o.now().UTC(),
	}
}
