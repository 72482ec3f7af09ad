// internal/services/market_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luxeval/luxeval-backend/internal/appraisal"
	"github.com/luxeval/luxeval-backend/internal/market"
)

func TestBuildSearchQuery(t *testing.T) {
	query := buildSearchQuery("Louis Vuitton", "Neverfull", "Handbags")

	assert.Contains(t, query, `"Louis Vuitton"`)
	assert.Contains(t, query, `"Neverfull"`)
	assert.Contains(t, query, "Handbags")
	assert.Contains(t, query, "resale price")
	assert.Contains(t, query, "site:vestiairecollective.com")
	assert.Contains(t, query, "site:grailed.com")
	assert.Contains(t, query, " OR ")
}

func TestBuildSearchQueryMinimal(t *testing.T) {
	query := buildSearchQuery("Gucci", "", "")

	assert.Contains(t, query, `"Gucci"`)
	assert.NotContains(t, query, `""`)
}

func TestExtractListingPrice(t *testing.T) {
	assert.Equal(t, "$1,250", extractListingPrice("Pre-owned, $1,250 with dust bag", "LV Bag"))
	assert.Equal(t, "$890.00", extractListingPrice("no price here", "Chanel Flap $890.00"))
	assert.Empty(t, extractListingPrice("contact seller", "no price"))
}

func TestCleanListingTitle(t *testing.T) {
	assert.Equal(t, "Louis Vuitton Neverfull MM", cleanListingTitle("Louis Vuitton Neverfull MM | The RealReal"))
	assert.Equal(t, "Chanel Classic Flap", cleanListingTitle("Chanel Classic Flap - Vestiaire Collective"))
	assert.Equal(t, "Gucci Marmont", cleanListingTitle("Gucci Marmont"))
}

func TestSourceFromURL(t *testing.T) {
	assert.Equal(t, "The RealReal", sourceFromURL("https://www.therealreal.com/products/123"))
	assert.Equal(t, "Vestiaire Collective", sourceFromURL("https://vestiairecollective.com/bags/456"))
	assert.Equal(t, "example.com", sourceFromURL("https://example.com/item"))
	assert.Equal(t, "Marketplace", sourceFromURL("://not-a-url"))
}

func TestSimulatedListingsDeterministic(t *testing.T) {
	a := SimulatedListings("Louis Vuitton", "Neverfull", "Handbags")
	b := SimulatedListings("Louis Vuitton", "Neverfull", "Handbags")

	assert.Equal(t, a, b)
}

func TestSimulatedListingsWithinBrandBand(t *testing.T) {
	listings := SimulatedListings("Chanel", "", "Handbags")
	priceRange := appraisal.PriceRangeForBrand("Chanel")

	assert.GreaterOrEqual(t, len(listings), 5)
	assert.LessOrEqual(t, len(listings), 8)

	prev := 0.0
	for _, l := range listings {
		price, ok := market.ExtractNumericPrice(l.Price)
		assert.True(t, ok)
		assert.GreaterOrEqual(t, price, float64(priceRange.Min))
		assert.LessOrEqual(t, price, float64(priceRange.Max))
		assert.GreaterOrEqual(t, price, prev, "listings should be sorted ascending by price")
		prev = price

		assert.NotEmpty(t, l.Source)
		assert.NotEmpty(t, l.URL)
	}
}

func TestSimulatedListingsFeedStats(t *testing.T) {
	listings := SimulatedListings("Hermès", "Birkin", "Handbags")
	stats := market.CalculateStats(listings)

	assert.NotNil(t, stats)
	assert.Equal(t, len(listings), stats.TotalListings)
}
