package normalize

import (
	"strings"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// conditionMap maps free-text listing conditions to domain conditions.
// Keys are lower-cased with '-' and '_' replaced by spaces.
var conditionMap = map[string]domain.Condition{
	// enum values
	"excellent": domain.ConditionExcellent,
	"very good": domain.ConditionVeryGood,
	"good":      domain.ConditionGood,
	"fair":      domain.ConditionFair,
	"poor":      domain.ConditionPoor,
	// marketplace variants
	"like new":            domain.ConditionExcellent,
	"mint":                domain.ConditionExcellent,
	"pristine":            domain.ConditionExcellent,
	"outstanding":         domain.ConditionExcellent,
	"certified":           domain.ConditionVeryGood,
	"certified pre owned": domain.ConditionVeryGood,
	"cpo":                 domain.ConditionVeryGood,
	"above average":       domain.ConditionVeryGood,
	"great":               domain.ConditionVeryGood,
	"average":             domain.ConditionGood,
	"used":                domain.ConditionGood,
	"pre owned":           domain.ConditionGood,
	"clean":               domain.ConditionGood,
	"below average":       domain.ConditionFair,
	"rough":               domain.ConditionFair,
	"needs work":          domain.ConditionFair,
	"bad":                 domain.ConditionPoor,
	"damaged":             domain.ConditionPoor,
	"not running":         domain.ConditionPoor,
	"for parts":           domain.ConditionPoor,
	"mechanic special":    domain.ConditionPoor,
	"parts only":          domain.ConditionPoor,
}

var conditionReplacer = strings.NewReplacer("-", " ", "_", " ")

// Condition maps a raw condition string to a domain.Condition.
// Unrecognized or empty input returns ConditionGood.
func Condition(raw string) domain.Condition {
	key := Key(conditionReplacer.Replace(raw))
	if c, ok := conditionMap[key]; ok {
		return c
	}
	return domain.ConditionGood
}

// ParseCondition is the strict form of Condition used for request input:
// empty input reports ok=false so callers can tell "not supplied" apart
// from a recognized value.
func ParseCondition(raw string) (domain.Condition, bool) {
	key := Key(conditionReplacer.Replace(raw))
	if key == "" {
		return domain.ConditionGood, false
	}
	c, ok := conditionMap[key]
	if !ok {
		return domain.ConditionGood, false
	}
	return c, true
}

var titleMap = map[string]domain.TitleStatus{
	"clean":         domain.TitleClean,
	"clear":         domain.TitleClean,
	"salvage":       domain.TitleSalvage,
	"salvaged":      domain.TitleSalvage,
	"rebuilt":       domain.TitleRebuilt,
	"reconstructed": domain.TitleRebuilt,
	"flood":         domain.TitleFlood,
	"water damage":  domain.TitleFlood,
	"lemon":         domain.TitleLemon,
	"buyback":       domain.TitleLemon,
	"hail":          domain.TitleHail,
	"hail damage":   domain.TitleHail,
}

// TitleStatus maps a raw title brand to a domain.TitleStatus,
// returning TitleUnknown for anything unrecognized.
func TitleStatus(raw string) domain.TitleStatus {
	if t, ok := titleMap[Key(conditionReplacer.Replace(raw))]; ok {
		return t
	}
	return domain.TitleUnknown
}
