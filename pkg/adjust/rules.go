package adjust

import (
	"strings"
	"time"
	"unicode"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// Factor labels, in evaluation order.
const (
	FactorMileage   = "Mileage"
	FactorCondition = "Condition"
	FactorTitle     = "Title Status"
	FactorRegion    = "Region"
	FactorEquipment = "Equipment"
	FactorSeasonal  = "Seasonal"
)

var conditionPercents = map[domain.Condition]float64{
	domain.ConditionExcellent: 0.06,
	domain.ConditionVeryGood:  0.03,
	domain.ConditionGood:      0,
	domain.ConditionFair:      -0.08,
	domain.ConditionPoor:      -0.18,
}

var conditionLabels = map[domain.Condition]string{
	domain.ConditionExcellent: "Excellent",
	domain.ConditionVeryGood:  "Very good",
	domain.ConditionGood:      "Good",
	domain.ConditionFair:      "Fair",
	domain.ConditionPoor:      "Poor",
}

var titlePenalties = map[domain.TitleStatus]float64{
	domain.TitleSalvage: -0.30,
	domain.TitleFlood:   -0.25,
	domain.TitleLemon:   -0.20,
	domain.TitleRebuilt: -0.15,
	domain.TitleHail:    -0.10,
}

// FeatureRule maps keywords to a canonical equipment feature worth a fixed
// dollar amount.
type FeatureRule struct {
	Feature  string
	Amount   float64
	Keywords []string
}

// DefaultFeatureRules is the equipment table in evaluation order.
var DefaultFeatureRules = []FeatureRule{
	{Feature: "Leather Seats", Amount: 800, Keywords: []string{"leather"}},
	{Feature: "Navigation", Amount: 600, Keywords: []string{"navigation", "nav", "gps"}},
	{Feature: "Sunroof", Amount: 500, Keywords: []string{"sunroof", "moonroof", "panoramic roof", "panoramic"}},
	{Feature: "Premium Audio", Amount: 400, Keywords: []string{
		"premium audio", "premium sound", "bose", "harman kardon", "jbl", "mark levinson", "burmester",
	}},
	{Feature: "Advanced Safety", Amount: 700, Keywords: []string{
		"adaptive cruise", "lane keep", "lane keeping", "blind spot", "safety sense",
		"eyesight", "honda sensing", "driver assist", "collision mitigation",
	}},
	{Feature: "Third Row Seating", Amount: 900, Keywords: []string{"third row", "3rd row", "7 passenger", "8 passenger"}},
	{Feature: "All-Wheel Drive", Amount: 1000, Keywords: []string{
		"awd", "4wd", "all wheel drive", "four wheel drive", "4x4", "xdrive", "quattro", "4matic",
	}},
	{Feature: "Towing Package", Amount: 500, Keywords: []string{"tow package", "towing package", "trailer hitch", "max tow"}},
	{Feature: "Sport Package", Amount: 600, Keywords: []string{"sport package", "m sport", "trd", "amg line", "s line"}},
}

type season int

const (
	seasonNone season = iota
	seasonConvertible
	seasonUtility
)

func bodyClass(bodyStyle string) season {
	b := matchText(bodyStyle)
	switch {
	case containsPhrase(b, "convertible"), containsPhrase(b, "cabriolet"), containsPhrase(b, "roadster"):
		return seasonConvertible
	case containsPhrase(b, "suv"), containsPhrase(b, "sport utility"),
		containsPhrase(b, "pickup"), containsPhrase(b, "truck"):
		return seasonUtility
	default:
		return seasonNone
	}
}

// seasonalPercent returns the seasonal factor and a reason, or ok=false
// when the body style has no seasonality in that month.
func seasonalPercent(s season, month time.Month) (pct float64, reason string, ok bool) {
	switch s {
	case seasonConvertible:
		switch month {
		case time.April, time.May, time.June, time.July, time.August:
			return 0.03, "Convertible demand peaks in spring and summer", true
		case time.November, time.December, time.January, time.February:
			return -0.03, "Convertible demand is soft in winter", true
		}
	case seasonUtility:
		switch month {
		case time.October, time.November, time.December, time.January, time.February:
			return 0.02, "SUV and truck demand rises in fall and winter", true
		}
	}
	return 0, "", false
}

// matchText lower-cases s and turns punctuation into spaces so keyword
// phrases match on word boundaries.
func matchText(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

func containsPhrase(haystack, phrase string) bool {
	p := matchText(phrase)
	if p == "" || haystack == "" {
		return false
	}
	return strings.Contains(" "+haystack+" ", " "+p+" ")
}
