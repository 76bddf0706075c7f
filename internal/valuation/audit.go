package valuation

import (
	"context"
	"encoding/json"

	"github.com/donaldgifford/vehicle-valuator/internal/metrics"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// NewAuditRecord builds the audit row for r. quality is the pipeline's
// internal confidence hint; conditionSupplied records whether the caller
// gave a condition or it was assumed.
func NewAuditRecord(r *domain.ValuationResult, quality int, conditionSupplied bool) *domain.AuditRecord {
	body, err := json.Marshal(r)
	if err != nil {
		body = nil
	}
	return &domain.AuditRecord{
		ValuationID:       r.ID,
		CorrelationID:     r.CorrelationID,
		VIN:               r.Vehicle.VIN,
		Year:              r.Vehicle.Year,
		Make:              r.Vehicle.Make,
		Model:             r.Vehicle.Model,
		ZIP:               r.ZIP,
		Mileage:           r.Mileage,
		Condition:         r.Condition,
		ConditionSupplied: conditionSupplied,
		FinalValue:        r.FinalValue,
		ConfidenceScore:   r.ConfidenceScore,
		SourcesUsed:       r.SourcesUsed,
		FallbackUsed:      r.FallbackUsed,
		Adjustments:       r.Adjustments,
		QualityScore:      quality,
		Result:            body,
		CreatedAt:         r.CreatedAt,
	}
}

// emit writes the audit record in the background and publishes the
// completion event. Neither can fail the valuation.
func (o *Orchestrator) emit(ctx context.Context, in *input, r *domain.ValuationResult, quality int) {
	if o.audit != nil {
		rec := NewAuditRecord(r, quality, in.conditionSupplied)
		actx := context.WithoutCancel(ctx)

		o.inflight.Add(1)
		go func() {
			defer o.inflight.Done()

			wctx, cancel := context.WithTimeout(actx, o.auditTimeout)
			defer cancel()

			if err := o.audit.RecordValuation(wctx, rec); err != nil {
				metrics.AuditFailuresTotal.Inc()
				o.log.Error("audit write failed",
					"valuation_id", rec.ValuationID,
					"correlation_id", rec.CorrelationID,
					"error", err,
				)
			}
		}()
	}

	if err := o.publisher.PublishValuation(ctx, r); err != nil {
		metrics.EventPublishFailuresTotal.Inc()
		o.log.Warn("publishing valuation event failed",
			"valuation_id", r.ID,
			"error", err,
		)
	}
}
