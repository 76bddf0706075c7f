// Package notify delivers completed valuations to dealers.
package notify

import (
	"context"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// ValuationPayload contains the data needed to announce a valuation.
type ValuationPayload struct {
	ValuationID string
	Vehicle     string
	VIN         string
	ZIP         string
	FinalValue  string
	PriceRange  string
	Confidence  int
	Level       domain.ConfidenceLevel
	Method      domain.BaseMethod
	Explanation string
	ReportURL   string
	Fallback    bool
}

// Notifier sends valuation notifications.
type Notifier interface {
	SendValuation(ctx context.Context, v *ValuationPayload) error
}
