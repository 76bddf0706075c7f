package score

import (
	"fmt"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// Level thresholds.
const (
	HighThreshold   = 80
	MediumThreshold = 60
)

const (
	baseScore        = 50
	retryListingsMax = 3
)

// Signals are the data-quality facts a confidence score is derived from.
type Signals struct {
	ListingCount      int
	VINSupplied       bool
	VINMatched        bool
	MileageSupplied   bool
	ConditionSupplied bool
	TrimSupplied      bool
	FeaturesSupplied  bool
	Method            domain.BaseMethod
}

// contribution is one signal's effect on the score.
type contribution struct {
	points     int
	reason     string
	suggestion string
}

// Confidence scores signals and explains the result. It is a pure
// function: reasons and suggestions appear in a fixed order.
func Confidence(s Signals) domain.ConfidenceExplanation {
	parts := []contribution{
		listingContribution(s.ListingCount),
		vinContribution(s),
		toggle(s.MileageSupplied, 5, 5,
			"Mileage supplied",
			"Mileage not supplied",
			"Enter the odometer reading"),
		toggle(s.ConditionSupplied, 5, 5,
			"Condition supplied",
			"Condition not supplied, assumed good",
			"Select the vehicle's condition"),
		toggle(s.TrimSupplied, 3, 3,
			"Trim level known",
			"Trim level unknown",
			"Specify the trim level"),
		toggle(s.FeaturesSupplied, 2, 0,
			"Equipment list supplied",
			"",
			"List notable options and packages"),
	}
	if s.Method == domain.MethodFloor {
		parts = append(parts, contribution{
			points:     -20,
			reason:     "Value is an emergency floor estimate",
			suggestion: "Check the make, model and year",
		})
	}

	total := baseScore
	reasons := make([]string, 0, len(parts))
	suggestions := make([]string, 0, len(parts))
	for _, p := range parts {
		total += p.points
		if p.reason != "" {
			reasons = append(reasons, p.reason)
		}
		if p.suggestion != "" {
			suggestions = append(suggestions, p.suggestion)
		}
	}
	total = clamp(total)

	return domain.ConfidenceExplanation{
		Score:       total,
		Level:       Level(total),
		Reasons:     reasons,
		Suggestions: suggestions,
		CanRetry:    total < HighThreshold && s.ListingCount < retryListingsMax,
	}
}

// Level maps a score to its qualitative band.
func Level(score int) domain.ConfidenceLevel {
	switch {
	case score >= HighThreshold:
		return domain.ConfidenceHigh
	case score >= MediumThreshold:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

func listingContribution(n int) contribution {
	switch {
	case n >= 10:
		return contribution{points: 25, reason: fmt.Sprintf("%d comparable market listings", n)}
	case n >= 5:
		return contribution{
			points:     18,
			reason:     fmt.Sprintf("%d comparable market listings", n),
			suggestion: "More listings would tighten the estimate",
		}
	case n >= 3:
		return contribution{
			points:     10,
			reason:     fmt.Sprintf("Only %d comparable market listings", n),
			suggestion: "More listings would tighten the estimate",
		}
	case n > 0:
		return contribution{
			points:     3,
			reason:     fmt.Sprintf("Only %d comparable market listing(s), value is model-based", n),
			suggestion: "Retry later or widen the search area for more listings",
		}
	default:
		return contribution{
			points:     -10,
			reason:     "No market listings found, value is model-based",
			suggestion: "Retry later or widen the search area for more listings",
		}
	}
}

func vinContribution(s Signals) contribution {
	switch {
	case s.VINMatched:
		return contribution{points: 10, reason: "Exact VIN found among market listings"}
	case s.VINSupplied:
		return contribution{points: -5, reason: "VIN not found among market listings"}
	default:
		return contribution{
			points:     -5,
			reason:     "No VIN supplied",
			suggestion: "Provide the VIN for an exact-match lookup",
		}
	}
}

func toggle(present bool, gain, loss int, have, missing, suggestion string) contribution {
	if present {
		return contribution{points: gain, reason: have}
	}
	return contribution{points: -loss, reason: missing, suggestion: suggestion}
}

func clamp(v int) int {
	return max(0, min(100, v))
}
