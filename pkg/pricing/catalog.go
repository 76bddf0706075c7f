package pricing

import (
	"strings"

	"github.com/donaldgifford/vehicle-valuator/pkg/normalize"
)

// BrandTier groups makes by typical resale value.
type BrandTier string

// Brand tiers.
const (
	TierLuxury     BrandTier = "luxury"
	TierPremium    BrandTier = "premium"
	TierMainstream BrandTier = "mainstream"
	TierEconomy    BrandTier = "economy"
)

var tierMultipliers = map[BrandTier]float64{
	TierLuxury:     1.45,
	TierPremium:    1.2,
	TierMainstream: 1.0,
	TierEconomy:    0.85,
}

var brandTiers = map[string]BrandTier{
	"bmw":           TierLuxury,
	"mercedes-benz": TierLuxury,
	"audi":          TierLuxury,
	"lexus":         TierLuxury,
	"porsche":       TierLuxury,
	"jaguar":        TierLuxury,
	"land rover":    TierLuxury,
	"tesla":         TierLuxury,
	"genesis":       TierLuxury,
	"acura":         TierPremium,
	"infiniti":      TierPremium,
	"cadillac":      TierPremium,
	"lincoln":       TierPremium,
	"volvo":         TierPremium,
	"kia":           TierEconomy,
	"hyundai":       TierEconomy,
	"mitsubishi":    TierEconomy,
	"nissan":        TierEconomy,
}

// modelMultipliers is keyed by "<make key> <model key>".
var modelMultipliers = map[string]float64{
	"toyota camry":          1.0,
	"toyota corolla":        0.85,
	"toyota rav4":           1.1,
	"toyota tacoma":         1.2,
	"toyota tundra":         1.3,
	"toyota 4runner":        1.25,
	"toyota highlander":     1.2,
	"toyota prius":          0.95,
	"toyota sienna":         1.15,
	"honda civic":           0.9,
	"honda accord":          1.0,
	"honda cr-v":            1.1,
	"honda pilot":           1.15,
	"honda odyssey":         1.1,
	"ford f-150":            1.3,
	"ford mustang":          1.1,
	"ford explorer":         1.1,
	"ford escape":           0.9,
	"ford bronco":           1.3,
	"ford focus":            0.7,
	"chevrolet silverado":   1.3,
	"chevrolet tahoe":       1.4,
	"chevrolet equinox":     0.9,
	"chevrolet malibu":      0.8,
	"chevrolet corvette":    2.0,
	"jeep wrangler":         1.25,
	"jeep grand cherokee":   1.15,
	"subaru outback":        1.05,
	"subaru crosstrek":      0.95,
	"bmw 3 series":          1.0,
	"bmw x5":                1.25,
	"mercedes-benz c-class": 1.0,
	"mercedes-benz g-class": 2.2,
	"audi a4":               0.95,
	"lexus rx":              1.1,
	"tesla model 3":         1.05,
	"tesla model y":         1.15,
	"tesla model s":         1.4,
	"porsche 911":           1.9,
	"porsche cayenne":       1.3,
}

// ageBucket is an upper bound in years and the starting value for vehicles
// at or under it.
type ageBucket struct {
	maxAge int
	value  float64
}

var ageBuckets = []ageBucket{
	{maxAge: 1, value: 32000},
	{maxAge: 3, value: 27000},
	{maxAge: 5, value: 22000},
	{maxAge: 8, value: 16000},
	{maxAge: 12, value: 11000},
}

const oldestBucketValue = 6500

func ageBucketValue(age int) float64 {
	for _, b := range ageBuckets {
		if age <= b.maxAge {
			return b.value
		}
	}
	return oldestBucketValue
}

// BrandTierOf returns the brand tier for a make, TierMainstream when unlisted.
func BrandTierOf(vehicleMake string) BrandTier {
	if t, ok := brandTiers[normalize.MakeKey(vehicleMake)]; ok {
		return t
	}
	return TierMainstream
}

// BrandMultiplier returns the multiplier for a make's brand tier.
func BrandMultiplier(vehicleMake string) float64 {
	return tierMultipliers[BrandTierOf(vehicleMake)]
}

// ModelMultiplier returns the model-specific multiplier, matching the
// longest leading run of model words present in the table. Unknown models
// get 1.0.
func ModelMultiplier(vehicleMake, model string) float64 {
	mk := normalize.MakeKey(vehicleMake)
	words := strings.Fields(normalize.Key(model))
	for n := len(words); n > 0; n-- {
		key := mk + " " + strings.Join(words[:n], " ")
		if m, ok := modelMultipliers[key]; ok {
			return m
		}
	}
	return 1.0
}
