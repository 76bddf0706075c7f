// Package explain turns a finished valuation into a short narrative.
package explain

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// Explainer produces the narrative for a finalized result. Implementations
// must not modify the result.
type Explainer interface {
	Explain(ctx context.Context, r *domain.ValuationResult) (string, error)
	Name() string
}

var printer = message.NewPrinter(language.AmericanEnglish)

// Dollars formats v as whole US dollars with thousands separators.
func Dollars(v float64) string {
	return printer.Sprintf("$%d", int64(math.Round(v)))
}

// Template is the deterministic explainer. It never fails.
type Template struct{}

// Name returns the backend name.
func (Template) Name() string { return "template" }

// Explain implements Explainer.
func (Template) Explain(_ context.Context, r *domain.ValuationResult) (string, error) {
	return Text(r), nil
}

// Text renders the deterministic explanation for r.
func Text(r *domain.ValuationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "This %s is valued at %s", vehicleLabel(r.Vehicle), Dollars(r.FinalValue))
	if r.ZIP != "" {
		fmt.Fprintf(&b, " in ZIP %s", r.ZIP)
	}
	fmt.Fprintf(&b, " based on %d key %s", len(r.Adjustments), plural(len(r.Adjustments), "factor", "factors"))
	if top := topFactors(r.Adjustments, 3); len(top) > 0 {
		fmt.Fprintf(&b, " including %s", joinList(top))
	}
	b.WriteString(". ")

	switch r.BaseMethod {
	case domain.MethodMarket:
		fmt.Fprintf(&b, "The base value is the median of %d comparable %s. ",
			r.ListingCount, plural(r.ListingCount, "listing", "listings"))
	case domain.MethodDepreciation:
		b.WriteString("The base value comes from the depreciation model because market data was limited. ")
	case domain.MethodFloor:
		b.WriteString("Very little data was available, so this is a floor estimate. ")
	}

	fmt.Fprintf(&b, "Confidence: %d%% (%s).", r.ConfidenceScore, r.Confidence.Level)
	if r.FallbackUsed {
		b.WriteString(" Computed locally because the remote valuation service was unavailable.")
	}

	return b.String()
}

func vehicleLabel(v domain.Vehicle) string {
	parts := make([]string, 0, 4)
	if v.Year > 0 {
		parts = append(parts, fmt.Sprint(v.Year))
	}
	for _, s := range []string{v.Make, v.Model, v.Trim} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "vehicle"
	}
	return strings.Join(parts, " ")
}

// topFactors returns up to n lower-cased factor labels with the largest
// absolute effect, ties kept in pipeline order. Zero-amount entries are skipped
// and each label appears once.
func topFactors(adjs []domain.Adjustment, n int) []string {
	nonzero := make([]domain.Adjustment, 0, len(adjs))
	for _, a := range adjs {
		if a.Amount != 0 {
			nonzero = append(nonzero, a)
		}
	}
	sort.SliceStable(nonzero, func(i, j int) bool {
		return math.Abs(nonzero[i].Amount) > math.Abs(nonzero[j].Amount)
	})

	out := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for _, a := range nonzero {
		if len(out) == n {
			break
		}
		label := strings.ToLower(a.Factor)
		if seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	return out
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
