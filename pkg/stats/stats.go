// Package stats computes descriptive statistics over normalized listings.
package stats

import (
	"math"
	"slices"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// Aggregate computes price statistics (and secondary mileage statistics)
// for listings. It returns nil when listings is empty, which callers treat
// as "no market data". The input slice is not modified.
func Aggregate(listings []domain.Listing) *domain.ListingStatistics {
	n := len(listings)
	if n == 0 {
		return nil
	}

	prices := make([]float64, n)
	miles := make([]float64, n)
	for i := range listings {
		prices[i] = listings[i].Price
		miles[i] = float64(listings[i].Mileage)
	}
	slices.Sort(prices)
	slices.Sort(miles)

	mean := Mean(prices)
	p25 := Percentile(prices, 0.25)
	p75 := Percentile(prices, 0.75)

	return &domain.ListingStatistics{
		Count:         n,
		Min:           prices[0],
		Max:           prices[n-1],
		Mean:          mean,
		Median:        Percentile(prices, 0.5),
		StdDev:        stdDev(prices, mean),
		P25:           p25,
		P75:           p75,
		IQR:           p75 - p25,
		MeanMileage:   Mean(miles),
		MedianMileage: Percentile(miles, 0.5),
	}
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Percentile returns the p-th percentile (0 <= p <= 1) of sorted using
// linear interpolation between closest ranks, the same definition as
// PostgreSQL's percentile_cont. sorted must be in ascending order.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case n == 1 || p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[n-1]
	}

	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// stdDev is the population standard deviation.
func stdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}
