// Package pricing resolves the base price of a vehicle through an ordered
// policy of pricing tiers: observed market listings, a depreciation curve,
// and a fixed emergency floor.
package pricing

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// ErrNonFinite is returned by a tier that produced NaN, Inf or a
// non-positive value.
var ErrNonFinite = errors.New("non-finite or non-positive price")

// Config holds the tunable constants of the tier policy.
type Config struct {
	MinMarketListings    int
	HintCap              int
	FloorValue           float64
	Ceiling              float64
	ExpectedMilesPerYear int
	MileageRate          float64 // dollars per mile
	MaxMileagePenalty    float64 // fraction of base
	MaxMileageBonus      float64 // fraction of base
}

// DefaultConfig returns the production pricing constants.
func DefaultConfig() Config {
	return Config{
		MinMarketListings:    3,
		HintCap:              10,
		FloorValue:           3000,
		Ceiling:              150000,
		ExpectedMilesPerYear: 12000,
		MileageRate:          0.10,
		MaxMileagePenalty:    0.15,
		MaxMileageBonus:      0.10,
	}
}

// Input is everything a tier may consult.
type Input struct {
	Vehicle  domain.Vehicle
	Mileage  *int
	Listings []domain.Listing
	Stats    *domain.ListingStatistics
}

// Tier is one (predicate, resolver) pair in the pricing policy.
type Tier struct {
	Method  domain.BaseMethod
	Applies func(in *Input) bool
	Resolve func(in *Input) (domain.BasePrice, error)
}

// Resolver walks its tiers in order and returns the first usable price.
type Resolver struct {
	cfg   Config
	now   func() time.Time
	log   *slog.Logger
	tiers []Tier
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConfig overrides the default pricing constants.
func WithConfig(cfg Config) Option {
	return func(r *Resolver) {
		r.cfg = cfg
	}
}

// WithClock sets the time source used to compute vehicle age.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

// WithTiers replaces the default policy. The floor tier is always appended
// so resolution cannot fail.
func WithTiers(tiers ...Tier) Option {
	return func(r *Resolver) {
		r.tiers = tiers
	}
}

// NewResolver creates a Resolver with the market, depreciation and floor
// tiers in that order.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		cfg: DefaultConfig(),
		now: time.Now,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tiers == nil {
		r.tiers = []Tier{r.MarketTier(), r.DepreciationTier()}
	}
	r.tiers = append(r.tiers, r.FloorTier())
	return r
}

// Tiers returns the policy in evaluation order.
func (r *Resolver) Tiers() []Tier {
	return r.tiers
}

// Resolve returns the base price from the first tier whose predicate holds
// and whose resolver yields a finite positive value. The value is clamped
// into (0, Ceiling].
func (r *Resolver) Resolve(in *Input) domain.BasePrice {
	for _, t := range r.tiers {
		if !t.Applies(in) {
			continue
		}
		bp, err := t.Resolve(in)
		if err == nil && !usable(bp.Value) {
			err = fmt.Errorf("%s tier returned %v: %w", t.Method, bp.Value, ErrNonFinite)
		}
		if err != nil {
			r.log.Error("pricing tier failed, falling through",
				"method", t.Method,
				"make", in.Vehicle.Make,
				"model", in.Vehicle.Model,
				"year", in.Vehicle.Year,
				"error", err,
			)
			continue
		}
		bp.Value = r.clamp(bp.Value)
		return bp
	}

	// Unreachable with the floor tier appended, kept for custom policies.
	return domain.BasePrice{
		Value:          r.cfg.FloorValue,
		Method:         domain.MethodFloor,
		ConfidenceHint: floorHint,
	}
}

// Confidence hints per tier.
const (
	marketHintBase   = 40
	marketHintRange  = 60
	depreciationHint = 35
	floorHint        = 10
)

// MarketTier anchors on the median of at least MinMarketListings listings.
func (r *Resolver) MarketTier() Tier {
	return Tier{
		Method: domain.MethodMarket,
		Applies: func(in *Input) bool {
			return in.Stats != nil && in.Stats.Count >= r.cfg.MinMarketListings
		},
		Resolve: func(in *Input) (domain.BasePrice, error) {
			capped := min(in.Stats.Count, r.cfg.HintCap)
			hint := marketHintBase
			if r.cfg.HintCap > 0 {
				hint += marketHintRange * capped / r.cfg.HintCap
			}
			return domain.BasePrice{
				Value:          in.Stats.Median,
				Method:         domain.MethodMarket,
				ConfidenceHint: hint,
			}, nil
		},
	}
}

// DepreciationTier estimates value from age, brand, model and mileage.
func (r *Resolver) DepreciationTier() Tier {
	return Tier{
		Method:  domain.MethodDepreciation,
		Applies: func(*Input) bool { return true },
		Resolve: func(in *Input) (domain.BasePrice, error) {
			v, err := r.Depreciate(in.Vehicle, in.Mileage)
			if err != nil {
				return domain.BasePrice{}, err
			}
			return domain.BasePrice{
				Value:          v,
				Method:         domain.MethodDepreciation,
				ConfidenceHint: depreciationHint,
			}, nil
		},
	}
}

// FloorTier always applies and returns the configured floor value.
func (r *Resolver) FloorTier() Tier {
	return Tier{
		Method:  domain.MethodFloor,
		Applies: func(*Input) bool { return true },
		Resolve: func(*Input) (domain.BasePrice, error) {
			return domain.BasePrice{
				Value:          r.cfg.FloorValue,
				Method:         domain.MethodFloor,
				ConfidenceHint: floorHint,
			}, nil
		},
	}
}

// Depreciate computes the depreciation-curve value of a vehicle.
func (r *Resolver) Depreciate(v domain.Vehicle, mileage *int) (float64, error) {
	if v.Year <= 0 {
		return 0, fmt.Errorf("vehicle year %d: %w", v.Year, domain.ErrOutOfRange)
	}

	age := Age(v.Year, r.now())
	base := ageBucketValue(age) * BrandMultiplier(v.Make) * ModelMultiplier(v.Make, v.Model)

	if mileage != nil {
		base += r.mileageDelta(base, age, *mileage)
	}

	if !usable(base) {
		return 0, fmt.Errorf("depreciation for %d %s %s: %w", v.Year, v.Make, v.Model, ErrNonFinite)
	}
	return base, nil
}

// mileageDelta rewards below-expectation mileage and penalizes excess,
// capped at MaxMileageBonus and MaxMileagePenalty of base respectively.
func (r *Resolver) mileageDelta(base float64, age, mileage int) float64 {
	expected := float64(max(age, 1) * r.cfg.ExpectedMilesPerYear)
	delta := (expected - float64(mileage)) * r.cfg.MileageRate
	lo := -r.cfg.MaxMileagePenalty * base
	hi := r.cfg.MaxMileageBonus * base
	return math.Max(lo, math.Min(hi, delta))
}

func (r *Resolver) clamp(v float64) float64 {
	if v > r.cfg.Ceiling {
		return r.cfg.Ceiling
	}
	if v < 1 {
		return 1
	}
	return v
}

// Age returns the vehicle's age in whole model years, never negative.
func Age(year int, now time.Time) int {
	return max(now.Year()-year, 0)
}

func usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
