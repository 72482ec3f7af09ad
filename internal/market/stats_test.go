// internal/market/stats_test.go
package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNumericPrice(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"$300", 300, true},
		{"$1,234.56", 1234.56, true},
		{"USD 250", 250, true},
		{"250 USD", 250, true},
		{"1,000", 1000, true},
		{"€450.00", 450, true},
		{"from $89.99", 89.99, true},
		{"Price on request", 0, false},
		{"", 0, false},
		{"sold out", 0, false},
	}

	for _, tt := range tests {
		got, ok := ExtractNumericPrice(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestCalculateStatsEmpty(t *testing.T) {
	assert.Nil(t, CalculateStats(nil))
	assert.Nil(t, CalculateStats([]Listing{}))
}

func TestCalculateStatsAllUnparseable(t *testing.T) {
	listings := []Listing{
		{Title: "Bag", Price: "Price on request"},
		{Title: "Bag", Price: "sold"},
	}
	assert.Nil(t, CalculateStats(listings))
}

func TestCalculateStatsFourListings(t *testing.T) {
	listings := []Listing{
		{Price: "$400"},
		{Price: "$100"},
		{Price: "$300"},
		{Price: "$200"},
	}

	stats := CalculateStats(listings)
	assert.NotNil(t, stats)
	assert.Equal(t, 250, stats.AveragePrice)
	assert.Equal(t, 100, stats.MinPrice)
	assert.Equal(t, 400, stats.MaxPrice)
	assert.Equal(t, 4, stats.TotalListings)

	// Nearest-rank percentiles with floor indexing on the sorted slice:
	// indices floor(4*0.25)=1, floor(4*0.5)=2, floor(4*0.75)=3
	assert.Equal(t, 200, stats.PriceDistribution.Low)
	assert.Equal(t, 300, stats.PriceDistribution.Mid)
	assert.Equal(t, 400, stats.PriceDistribution.High)
}

func TestCalculateStatsSingleListing(t *testing.T) {
	stats := CalculateStats([]Listing{{Price: "$750"}})

	assert.NotNil(t, stats)
	assert.Equal(t, 750, stats.AveragePrice)
	assert.Equal(t, 750, stats.MinPrice)
	assert.Equal(t, 750, stats.MaxPrice)
	assert.Equal(t, 1, stats.TotalListings)
	assert.Equal(t, 750, stats.PriceDistribution.Low)
	assert.Equal(t, 750, stats.PriceDistribution.Mid)
	assert.Equal(t, 750, stats.PriceDistribution.High)
}

func TestCalculateStatsDropsUnparseable(t *testing.T) {
	listings := []Listing{
		{Price: "$100"},
		{Price: "contact seller"},
		{Price: "$300"},
	}

	stats := CalculateStats(listings)
	assert.NotNil(t, stats)
	assert.Equal(t, 2, stats.TotalListings)
	assert.Equal(t, 200, stats.AveragePrice)
}

func TestCalculateStatsAverageRounding(t *testing.T) {
	listings := []Listing{
		{Price: "$100"},
		{Price: "$101"},
	}

	stats := CalculateStats(listings)
	assert.Equal(t, 101, stats.AveragePrice) // 100.5 rounds half away from zero
}
