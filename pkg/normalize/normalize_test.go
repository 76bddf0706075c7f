package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func testNormalizer() *Normalizer {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func camry(price any, miles any) domain.RawListing {
	return domain.RawListing{
		"price":   price,
		"mileage": miles,
		"year":    2020,
		"make":    "Toyota",
		"model":   "Camry",
		"title":   "2020 Toyota Camry SE",
	}
}

func TestNormalize_ParsesHeterogeneousShapes(t *testing.T) {
	t.Parallel()

	raw := []domain.RawListing{
		{
			"asking_price": "$24,995",
			"miles":        "45,000 mi",
			"model_year":   "2020",
			"brand":        "  TOYOTA ",
			"model":        "Camry   SE",
			"condition":    "Like New",
			"link":         "https://example.com/1",
			"dealer_name":  "Valley Toyota",
			"zip":          "90210",
			"vin":          "4t1g11ak5lu000001",
		},
		{
			"price":      json.Number("23500"),
			"odometer":   38.0,
			"year":       json.Number("2020"),
			"make":       "Toyota",
			"model":      "Camry",
			"fetched_at": "2025-05-30T10:00:00Z",
		},
	}

	got := testNormalizer().Normalize(raw, "CarGurus")
	require.Len(t, got, 2)

	first := got[0]
	assert.InDelta(t, 24995.0, first.Price, 0.001)
	assert.Equal(t, 45000, first.Mileage)
	assert.Equal(t, 2020, first.Year)
	assert.Equal(t, "TOYOTA", first.Make)
	assert.Equal(t, "toyota", first.MakeKey)
	assert.Equal(t, "Camry SE", first.Model)
	assert.Equal(t, "camry se", first.ModelKey)
	assert.Equal(t, domain.ConditionExcellent, first.Condition)
	assert.Equal(t, "https://example.com/1", first.URL)
	assert.Equal(t, "Valley Toyota", first.Dealer)
	assert.Equal(t, "90210", first.Location)
	assert.Equal(t, "4T1G11AK5LU000001", first.VIN)
	assert.Equal(t, "CarGurus", first.Source)
	assert.InDelta(t, 0.9, first.SourceTier, 0.0001)
	assert.Equal(t, fixedNow, first.FetchedAt)

	second := got[1]
	assert.Equal(t, 38, second.Mileage)
	assert.Equal(t, domain.ConditionGood, second.Condition)
	assert.Equal(t, time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC), second.FetchedAt)
}

func TestNormalize_DropsInvalidRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  domain.RawListing
	}{
		{name: "nil record", raw: nil},
		{name: "missing price", raw: domain.RawListing{"mileage": 1, "year": 2020, "make": "a", "model": "b"}},
		{name: "price below bounds", raw: camry(999, 10000)},
		{name: "price above bounds", raw: camry(200001, 10000)},
		{name: "non numeric price", raw: camry("call for price", 10000)},
		{name: "negative mileage", raw: camry(20000, -1)},
		{name: "mileage above bounds", raw: camry(20000, 500001)},
		{name: "missing mileage", raw: domain.RawListing{"price": 20000, "year": 2020, "make": "a", "model": "b"}},
		{name: "year too old", raw: domain.RawListing{"price": 20000, "mileage": 1, "year": 1970, "make": "a", "model": "b"}},
		{name: "year in future", raw: domain.RawListing{"price": 20000, "mileage": 1, "year": 2030, "make": "a", "model": "b"}},
		{name: "fractional year", raw: domain.RawListing{"price": 20000, "mileage": 1, "year": 2020.5, "make": "a", "model": "b"}},
		{name: "missing make", raw: domain.RawListing{"price": 20000, "mileage": 1, "year": 2020, "model": "b"}},
		{name: "blank model", raw: domain.RawListing{"price": 20000, "mileage": 1, "year": 2020, "make": "a", "model": "  "}},
		{name: "unsupported price type", raw: camry([]int{1}, 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := testNormalizer().Normalize([]domain.RawListing{tt.raw}, "test")
			assert.Empty(t, got)
		})
	}
}

func TestNormalize_BoundsAreInclusive(t *testing.T) {
	t.Parallel()

	raw := []domain.RawListing{
		camry(1000, 0),
		camry(200000, 500000),
		{"price": 5000, "mileage": 1, "year": 2026, "make": "a", "model": "b"},
	}
	got := testNormalizer().Normalize(raw, "test")
	assert.Len(t, got, 3)
}

func TestNormalize_PreservesOrder(t *testing.T) {
	t.Parallel()

	raw := []domain.RawListing{
		camry(30000, 1000),
		camry("junk", 1000),
		camry(10000, 2000),
		camry(20000, 3000),
	}
	got := testNormalizer().Normalize(raw, "test")
	require.Len(t, got, 3)
	assert.InDelta(t, 30000.0, got[0].Price, 0.001)
	assert.InDelta(t, 10000.0, got[1].Price, 0.001)
	assert.InDelta(t, 20000.0, got[2].Price, 0.001)
}

func TestNormalize_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Normalize(nil, "test"))
	assert.NotNil(t, Normalize(nil, "test"))
}

func TestNormalize_UnknownSourceTier(t *testing.T) {
	t.Parallel()

	got := testNormalizer().Normalize([]domain.RawListing{camry(20000, 1)}, "some-forum")
	require.Len(t, got, 1)
	assert.InDelta(t, DefaultSourceTier, got[0].SourceTier, 0.0001)
}

func TestNormalize_RecordSourceOverrides(t *testing.T) {
	t.Parallel()

	own := camry(20000, 1)
	own["source"] = "CarMax"
	got := testNormalizer().Normalize([]domain.RawListing{own, camry(21000, 1)}, "some-forum")
	require.Len(t, got, 2)
	assert.Equal(t, "CarMax", got[0].Source)
	assert.InDelta(t, 0.95, got[0].SourceTier, 0.0001)
	assert.Equal(t, "some-forum", got[1].Source)
	assert.InDelta(t, DefaultSourceTier, got[1].SourceTier, 0.0001)
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	a := domain.Listing{Price: 20000, Mileage: 40000, Title: "2020 Toyota Camry SE - One Owner, Clean Carfax", Source: "cargurus"}
	b := domain.Listing{Price: 20000, Mileage: 40000, Title: "2020 TOYOTA CAMRY SE - ONE OWNER, different tail", Source: "autotrader"}
	c := domain.Listing{Price: 20000, Mileage: 40001, Title: a.Title}
	d := domain.Listing{Price: 19999, Mileage: 40000, Title: a.Title}
	e := domain.Listing{Price: 18000, Mileage: 1000, Make: "Toyota", Model: "Camry"}
	f := domain.Listing{Price: 18000, Mileage: 1000, Make: "toyota", Model: "camry", Source: "dup"}

	got := Dedupe([]domain.Listing{a, b, c, d, e, f})
	require.Len(t, got, 4)
	assert.Equal(t, "cargurus", got[0].Source, "first occurrence wins")
	assert.Equal(t, 40001, got[1].Mileage)
	assert.InDelta(t, 19999.0, got[2].Price, 0.001)
	assert.Equal(t, "Toyota", got[3].Make)
}

func TestComparable(t *testing.T) {
	t.Parallel()

	v := domain.Vehicle{Year: 2020, Make: "Chevy", Model: "Silverado 1500"}
	listings := []domain.Listing{
		{MakeKey: "chevrolet", ModelKey: "silverado 1500", Year: 2020},
		{MakeKey: "chevrolet", ModelKey: "silverado 1500", Year: 2022},
		{MakeKey: "chevrolet", ModelKey: "silverado 1500", Year: 2023},
		{MakeKey: "chevrolet", ModelKey: "tahoe", Year: 2020},
		{MakeKey: "ford", ModelKey: "silverado 1500", Year: 2020},
	}

	got := Comparable(listings, v, 2)
	require.Len(t, got, 2)
	assert.Equal(t, 2020, got[0].Year)
	assert.Equal(t, 2022, got[1].Year)
}

func TestCondition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want domain.Condition
	}{
		{"excellent", domain.ConditionExcellent},
		{"Very-Good", domain.ConditionVeryGood},
		{"very_good", domain.ConditionVeryGood},
		{"  GOOD ", domain.ConditionGood},
		{"fair", domain.ConditionFair},
		{"poor", domain.ConditionPoor},
		{"like new", domain.ConditionExcellent},
		{"Certified Pre-Owned", domain.ConditionVeryGood},
		{"needs work", domain.ConditionFair},
		{"not running", domain.ConditionPoor},
		{"", domain.ConditionGood},
		{"sparkly", domain.ConditionGood},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Condition(tt.raw))
		})
	}
}

func TestParseCondition(t *testing.T) {
	t.Parallel()

	c, ok := ParseCondition("fair")
	assert.True(t, ok)
	assert.Equal(t, domain.ConditionFair, c)

	c, ok = ParseCondition("")
	assert.False(t, ok)
	assert.Equal(t, domain.ConditionGood, c)

	c, ok = ParseCondition("sparkly")
	assert.False(t, ok)
	assert.Equal(t, domain.ConditionGood, c)
}

func TestTitleStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.TitleSalvage, TitleStatus("Salvage"))
	assert.Equal(t, domain.TitleFlood, TitleStatus("water_damage"))
	assert.Equal(t, domain.TitleRebuilt, TitleStatus("reconstructed"))
	assert.Equal(t, domain.TitleClean, TitleStatus("clean"))
	assert.Equal(t, domain.TitleUnknown, TitleStatus(""))
	assert.Equal(t, domain.TitleUnknown, TitleStatus("bonded"))
}

func TestNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{"$24,995", 24995, true},
		{"45,000 miles", 45000, true},
		{"38k", 38000, true},
		{"12.5K mi", 12500, true},
		{"USD 9,999.99", 9999.99, true},
		{"", 0, false},
		{"abc", 0, false},
		{int64(7), 7, true},
		{float32(2.5), 2.5, true},
		{json.Number("x"), 0, false},
		{true, 0, false},
	}

	for _, tt := range tests {
		got, ok := number(tt.in)
		assert.Equal(t, tt.wantOK, ok, "%v", tt.in)
		assert.InDelta(t, tt.want, got, 0.001, "%v", tt.in)
	}
}
