// Package adjust composes the independent price adjustments applied to a
// base value: mileage, condition, title status, region, equipment and
// seasonality. Entries are always produced in that order.
package adjust

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/donaldgifford/vehicle-valuator/pkg/pricing"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// RegionClassifier classifies a ZIP code. A nil region means unknown.
type RegionClassifier interface {
	Classify(ctx context.Context, zip string) (*domain.Region, error)
}

// Config holds the tunable constants of the adjustment engine.
type Config struct {
	MileageRate          float64 // dollars per mile
	ExpectedMilesPerYear int
	MinMarketListings    int
	UrbanPremium         float64
}

// DefaultConfig returns the production adjustment constants.
func DefaultConfig() Config {
	return Config{
		MileageRate:          0.10,
		ExpectedMilesPerYear: 12000,
		MinMarketListings:    3,
		UrbanPremium:         0.03,
	}
}

// Input is the vehicle context the adjustments are computed from.
type Input struct {
	Vehicle     domain.Vehicle
	Base        float64
	Mileage     *int
	Condition   domain.Condition
	TitleStatus domain.TitleStatus
	ZIP         string
	Features    []string
	SaleDate    *time.Time
	Stats       *domain.ListingStatistics
}

// Engine computes adjustments.
type Engine struct {
	cfg        Config
	classifier RegionClassifier
	rules      []FeatureRule
	now        func() time.Time
	log        *slog.Logger
	printer    *message.Printer
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig overrides the default constants.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithClassifier sets the ZIP region classifier.
func WithClassifier(c RegionClassifier) Option {
	return func(e *Engine) {
		e.classifier = c
	}
}

// WithFeatureRules replaces the equipment table.
func WithFeatureRules(rules []FeatureRule) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// WithClock sets the time source used to compute vehicle age.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		cfg:     DefaultConfig(),
		rules:   DefaultFeatureRules,
		now:     time.Now,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute returns the adjustment entries for in, in evaluation order.
// Region lookup failures are logged and produce no entry.
func (e *Engine) Compute(ctx context.Context, in *Input) []domain.Adjustment {
	adjs := make([]domain.Adjustment, 0, 6)

	if a, ok := e.mileage(in); ok {
		adjs = append(adjs, a)
	}
	adjs = append(adjs, e.condition(in), e.title(in))
	if a, ok := e.region(ctx, in); ok {
		adjs = append(adjs, a)
	}
	adjs = append(adjs, e.equipment(in)...)
	if a, ok := e.seasonal(in); ok {
		adjs = append(adjs, a)
	}

	return adjs
}

// ExpectedMileage is the comparison mileage for in: the median mileage of
// market listings when there are enough of them, else an age-based
// expectation.
func (e *Engine) ExpectedMileage(in *Input) int {
	if in.Stats != nil && in.Stats.Count >= e.cfg.MinMarketListings {
		return int(math.Round(in.Stats.MedianMileage))
	}
	age := pricing.Age(in.Vehicle.Year, e.now())
	return max(age, 1) * e.cfg.ExpectedMilesPerYear
}

func (e *Engine) mileage(in *Input) (domain.Adjustment, bool) {
	if in.Mileage == nil {
		return domain.Adjustment{}, false
	}

	actual := *in.Mileage
	expected := e.ExpectedMileage(in)
	diff := expected - actual
	amount := cents(float64(diff) * e.cfg.MileageRate)

	var reason string
	switch {
	case diff > 0:
		reason = e.printer.Sprintf("%d miles is %d below the expected %d", actual, diff, expected)
	case diff < 0:
		reason = e.printer.Sprintf("%d miles is %d above the expected %d", actual, -diff, expected)
	default:
		reason = e.printer.Sprintf("%d miles matches the expected mileage", actual)
	}

	return domain.Adjustment{Factor: FactorMileage, Amount: amount, Reason: reason}, true
}

func (e *Engine) condition(in *Input) domain.Adjustment {
	c := in.Condition
	if _, ok := conditionPercents[c]; !ok {
		c = domain.ConditionGood
	}
	pct := conditionPercents[c]
	label := conditionLabels[c]

	reason := label + " condition, no adjustment"
	if pct != 0 {
		reason = label + " condition (" + percent(pct) + ")"
	}
	return domain.Adjustment{
		Factor:  FactorCondition,
		Amount:  cents(in.Base * pct),
		Percent: pct,
		Reason:  reason,
	}
}

func (e *Engine) title(in *Input) domain.Adjustment {
	pct, branded := titlePenalties[in.TitleStatus]

	var reason string
	switch {
	case branded:
		reason = titleCase(string(in.TitleStatus)) + " title (" + percent(pct) + ")"
	case in.TitleStatus == domain.TitleClean:
		reason = "Clean title, no adjustment"
	default:
		reason = "Title status unknown, treated as clean"
	}

	return domain.Adjustment{
		Factor:  FactorTitle,
		Amount:  cents(in.Base * pct),
		Percent: pct,
		Reason:  reason,
	}
}

func (e *Engine) region(ctx context.Context, in *Input) (domain.Adjustment, bool) {
	if e.classifier == nil || in.ZIP == "" {
		return domain.Adjustment{}, false
	}

	r, err := e.classifier.Classify(ctx, in.ZIP)
	if err != nil {
		e.log.Warn("region classification failed", "zip", in.ZIP, "error", err)
		return domain.Adjustment{}, false
	}
	if r == nil {
		return domain.Adjustment{}, false
	}

	name := r.DisplayName
	if name == "" {
		name = in.ZIP
	}

	switch {
	case r.IsUrban:
		pct := e.cfg.UrbanPremium
		return domain.Adjustment{
			Factor:  FactorRegion,
			Amount:  cents(in.Base * pct),
			Percent: pct,
			Reason:  "High-demand urban market: " + name + " (" + percent(pct) + ")",
		}, true
	case r.IsSuburban:
		return domain.Adjustment{Factor: FactorRegion, Reason: "Suburban market: " + name + ", no adjustment"}, true
	default:
		return domain.Adjustment{Factor: FactorRegion, Reason: "Rural market: " + name + ", no adjustment"}, true
	}
}

func (e *Engine) equipment(in *Input) []domain.Adjustment {
	parts := make([]string, 0, len(in.Features)+2)
	parts = append(parts, in.Vehicle.Trim, in.Vehicle.Drivetrain)
	parts = append(parts, in.Features...)
	haystack := matchText(strings.Join(parts, " | "))
	if haystack == "" {
		return nil
	}

	var out []domain.Adjustment
	seen := make(map[string]bool, len(e.rules))
	for _, rule := range e.rules {
		if seen[rule.Feature] {
			continue
		}
		for _, kw := range rule.Keywords {
			if !containsPhrase(haystack, kw) {
				continue
			}
			seen[rule.Feature] = true
			out = append(out, domain.Adjustment{
				Factor: FactorEquipment,
				Amount: cents(rule.Amount),
				Reason: e.printer.Sprintf("%s detected (%q) +$%.0f", rule.Feature, kw, rule.Amount),
			})
			break
		}
	}
	return out
}

func (e *Engine) seasonal(in *Input) (domain.Adjustment, bool) {
	if in.SaleDate == nil || in.Vehicle.BodyStyle == "" {
		return domain.Adjustment{}, false
	}

	pct, reason, ok := seasonalPercent(bodyClass(in.Vehicle.BodyStyle), in.SaleDate.Month())
	if !ok {
		return domain.Adjustment{}, false
	}
	return domain.Adjustment{
		Factor:  FactorSeasonal,
		Amount:  cents(in.Base * pct),
		Percent: pct,
		Reason:  reason + " (" + percent(pct) + ")",
	}, true
}

// Total sums adjustment amounts in decimal arithmetic, rounded to cents.
func Total(adjs []domain.Adjustment) float64 {
	sum := decimal.Zero
	for _, a := range adjs {
		if math.IsNaN(a.Amount) || math.IsInf(a.Amount, 0) {
			return math.NaN()
		}
		sum = sum.Add(decimal.NewFromFloat(a.Amount))
	}
	return sum.Round(2).InexactFloat64()
}

// Apply adds the adjustment total to base, rounds to whole dollars and
// floors the result. Non-finite results return floor.
func Apply(base, total, floor float64) float64 {
	v := math.Round(base + total)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < floor {
		return floor
	}
	return v
}

func cents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func percent(p float64) string {
	s := decimal.NewFromFloat(p*100).Round(1).String() + "%"
	if p > 0 {
		s = "+" + s
	}
	return s
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
