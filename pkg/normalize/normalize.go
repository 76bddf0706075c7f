// Package normalize converts heterogeneous raw listing records into the
// canonical domain.Listing shape. Records that cannot be parsed or fall
// outside plausible bounds are dropped without error.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// Plausibility bounds for normalized listings.
const (
	MinPrice   = 1000.0
	MaxPrice   = 200000.0
	MinMileage = 0
	MaxMileage = 500000
	MinYear    = 1981
)

// DefaultSourceTier is the trust weight for sources missing from sourceTiers.
const DefaultSourceTier = 0.7

// dedupeTitleLen is the number of title runes compared when deduplicating.
const dedupeTitleLen = 30

var sourceTiers = map[string]float64{
	"carmax":     0.95,
	"carvana":    0.95,
	"cargurus":   0.9,
	"autotrader": 0.9,
	"cars.com":   0.9,
	"edmunds":    0.85,
	"dealer":     0.85,
	"cache":      0.8,
	"craigslist": 0.55,
	"facebook":   0.5,
	"offerup":    0.5,
}

var makeAliases = map[string]string{
	"chevy":     "chevrolet",
	"mercedes":  "mercedes-benz",
	"benz":      "mercedes-benz",
	"vw":        "volkswagen",
	"landrover": "land rover",
}

// Field aliases, tried in order.
var (
	priceKeys     = []string{"price", "asking_price", "list_price", "listPrice", "amount"}
	mileageKeys   = []string{"mileage", "miles", "odometer"}
	yearKeys      = []string{"year", "model_year", "modelYear"}
	makeKeys      = []string{"make", "brand"}
	modelKeys     = []string{"model"}
	trimKeys      = []string{"trim", "trim_level"}
	titleKeys     = []string{"title", "name", "heading"}
	conditionKeys = []string{"condition", "condition_text"}
	vinKeys       = []string{"vin", "VIN"}
	urlKeys       = []string{"url", "link", "listing_url"}
	dealerKeys    = []string{"dealer", "dealer_name", "seller"}
	locationKeys  = []string{"location", "zip", "zip_code"}
	fetchedKeys   = []string{"fetched_at", "fetchedAt", "scraped_at"}
	sourceKeys    = []string{"source"}
)

// Normalizer converts raw listings. The zero value is not usable; use New.
type Normalizer struct {
	now func() time.Time
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock sets the time source used for year bounds and default fetch
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts raw listings using the wall clock.
func Normalize(raw []domain.RawListing, source string) []domain.Listing {
	return New().Normalize(raw, source)
}

// Normalize converts each raw record into a Listing, preserving input order
// and silently dropping records that fail parsing or bounds checks. A
// record's own "source" field takes precedence over source.
func (n *Normalizer) Normalize(raw []domain.RawListing, source string) []domain.Listing {
	now := n.now()
	maxYear := now.Year() + 1
	tier := SourceTier(source)

	out := make([]domain.Listing, 0, len(raw))
	for _, r := range raw {
		l, ok := n.normalizeOne(r, now, maxYear)
		if !ok {
			continue
		}
		l.Source, l.SourceTier = source, tier
		if own := text(lookup(r, sourceKeys)); own != "" {
			l.Source, l.SourceTier = own, SourceTier(own)
		}
		out = append(out, l)
	}
	return out
}

func (n *Normalizer) normalizeOne(r domain.RawListing, now time.Time, maxYear int) (domain.Listing, bool) {
	if r == nil {
		return domain.Listing{}, false
	}

	price, ok := number(lookup(r, priceKeys))
	if !ok || price < MinPrice || price > MaxPrice {
		return domain.Listing{}, false
	}

	miles, ok := number(lookup(r, mileageKeys))
	if !ok {
		return domain.Listing{}, false
	}
	mileage := int(math.Round(miles))
	if mileage < MinMileage || mileage > MaxMileage {
		return domain.Listing{}, false
	}

	yf, ok := number(lookup(r, yearKeys))
	year := int(yf)
	if !ok || yf != math.Trunc(yf) || year < MinYear || year > maxYear {
		return domain.Listing{}, false
	}

	mk := Collapse(text(lookup(r, makeKeys)))
	md := Collapse(text(lookup(r, modelKeys)))
	if mk == "" || md == "" {
		return domain.Listing{}, false
	}

	l := domain.Listing{
		Price:     price,
		Mileage:   mileage,
		Year:      year,
		Make:      mk,
		Model:     md,
		MakeKey:   MakeKey(mk),
		ModelKey:  Key(md),
		Trim:      Collapse(text(lookup(r, trimKeys))),
		Title:     Collapse(text(lookup(r, titleKeys))),
		Condition: Condition(text(lookup(r, conditionKeys))),
		VIN:       strings.ToUpper(strings.TrimSpace(text(lookup(r, vinKeys)))),
		URL:       strings.TrimSpace(text(lookup(r, urlKeys))),
		Dealer:    Collapse(text(lookup(r, dealerKeys))),
		Location:  Collapse(text(lookup(r, locationKeys))),
		FetchedAt: timestamp(lookup(r, fetchedKeys), now),
	}
	return l, true
}

// Dedupe drops listings that repeat an earlier listing's price, mileage
// and title prefix. The first occurrence wins and order is preserved.
func Dedupe(listings []domain.Listing) []domain.Listing {
	type key struct {
		price   float64
		mileage int
		title   string
	}

	seen := make(map[key]struct{}, len(listings))
	out := make([]domain.Listing, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		k := key{price: l.Price, mileage: l.Mileage, title: titlePrefix(l)}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, *l)
	}
	return out
}

func titlePrefix(l *domain.Listing) string {
	t := l.Title
	if t == "" {
		t = strings.Join([]string{l.Make, l.Model, l.Trim}, " ")
	}
	r := []rune(Key(t))
	if len(r) > dedupeTitleLen {
		r = r[:dedupeTitleLen]
	}
	return string(r)
}

// Comparable keeps listings for the same make and model whose model year is
// within tolerance of the vehicle's.
func Comparable(listings []domain.Listing, v domain.Vehicle, yearTolerance int) []domain.Listing {
	mk, md := MakeKey(v.Make), Key(v.Model)
	out := make([]domain.Listing, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		if l.MakeKey != mk || l.ModelKey != md {
			continue
		}
		if absInt(l.Year-v.Year) > yearTolerance {
			continue
		}
		out = append(out, *l)
	}
	return out
}

// SourceTier returns the trust weight for a listing source.
func SourceTier(source string) float64 {
	if t, ok := sourceTiers[Key(source)]; ok {
		return t
	}
	return DefaultSourceTier
}

// Collapse trims s and collapses internal whitespace runs to single spaces.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Key lower-cases and whitespace-collapses s for comparisons.
func Key(s string) string {
	return strings.ToLower(Collapse(s))
}

// MakeKey is Key with common make nicknames resolved.
func MakeKey(s string) string {
	k := Key(s)
	if alias, ok := makeAliases[k]; ok {
		return alias
	}
	return k
}

func lookup(r domain.RawListing, keys []string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// number coerces JSON numbers and human-formatted strings such as
// "$24,995", "45,000 mi" or "38k" into a finite float64.
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, ok := parseNumberString(n)
		if !ok {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseNumberString(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("$", "", ",", "", "usd", "", " ", "").Replace(s)
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) && r != 'k'
	})

	mult := 1.0
	if strings.HasSuffix(s, "k") {
		mult = 1000
		s = strings.TrimSuffix(s, "k")
	}
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f * mult, true
}

func timestamp(v any, fallback time.Time) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return fallback
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
