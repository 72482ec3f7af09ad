// internal/market/stats.go
package market

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Listing is one observed marketplace offer. Only Price feeds the statistics;
// the rest is carried through for display.
type Listing struct {
	Title     string `json:"title"`
	Price     string `json:"price"`
	URL       string `json:"url"`
	Source    string `json:"source"`
	Condition string `json:"condition,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Snippet   string `json:"snippet,omitempty"`
}

type PriceDistribution struct {
	Low  int `json:"low"`  // 25th percentile
	Mid  int `json:"mid"`  // 50th percentile (median)
	High int `json:"high"` // 75th percentile
}

type Statistics struct {
	AveragePrice      int               `json:"average_price"`
	MinPrice          int               `json:"min_price"`
	MaxPrice          int               `json:"max_price"`
	TotalListings     int               `json:"total_listings"`
	PriceDistribution PriceDistribution `json:"price_distribution"`
}

var numericPricePattern = regexp.MustCompile(`[\d,]+(?:\.\d{2})?`)

// ExtractNumericPrice pulls the first numeric amount out of a price string,
// tolerating currency symbols, a USD prefix/suffix, and thousands separators.
// Returns false when the string carries no parseable amount.
func ExtractNumericPrice(price string) (float64, bool) {
	match := numericPricePattern.FindString(price)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CalculateStats aggregates listing prices into summary statistics. Listings
// without a parseable price are dropped entirely, and nil is returned when
// nothing parses, rather than a zero-filled structure.
//
// Percentiles use the nearest-rank method with floor-indexing on the
// ascending-sorted prices. Callers depend on this exact indexing; do not
// swap in an interpolated percentile.
func CalculateStats(listings []Listing) *Statistics {
	if len(listings) == 0 {
		return nil
	}

	prices := make([]float64, 0, len(listings))
	for _, l := range listings {
		if p, ok := ExtractNumericPrice(l.Price); ok {
			prices = append(prices, p)
		}
	}

	if len(prices) == 0 {
		return nil
	}

	sort.Float64s(prices)

	sum := 0.0
	for _, p := range prices {
		sum += p
	}

	n := len(prices)
	return &Statistics{
		AveragePrice:  int(math.Round(sum / float64(n))),
		MinPrice:      int(prices[0]),
		MaxPrice:      int(prices[n-1]),
		TotalListings: n,
		PriceDistribution: PriceDistribution{
			Low:  int(prices[percentileIndex(n, 0.25)]),
			Mid:  int(prices[percentileIndex(n, 0.50)]),
			High: int(prices[percentileIndex(n, 0.75)]),
		},
	}
}

func percentileIndex(n int, p float64) int {
	idx := int(math.Floor(float64(n) * p))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}
