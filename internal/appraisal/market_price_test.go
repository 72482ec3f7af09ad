// internal/appraisal/market_price_test.go
package appraisal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luxeval/luxeval-backend/internal/market"
	"github.com/luxeval/luxeval-backend/internal/models"
)

func TestEstimateFromMarketWithStats(t *testing.T) {
	stats := &market.Statistics{AveragePrice: 1000, TotalListings: 8}

	assert.Equal(t, 1000, EstimateFromMarket("Chanel", "Handbags", models.ConditionNew, stats))
	assert.Equal(t, 850, EstimateFromMarket("Chanel", "Handbags", models.ConditionExcellent, stats))
	assert.Equal(t, 700, EstimateFromMarket("Chanel", "Handbags", models.ConditionGood, stats))
	assert.Equal(t, 550, EstimateFromMarket("Chanel", "Handbags", models.ConditionFair, stats))
	assert.Equal(t, 400, EstimateFromMarket("Chanel", "Handbags", models.ConditionPoor, stats))
}

func TestEstimateFromMarketUnknownConditionUsesDefault(t *testing.T) {
	stats := &market.Statistics{AveragePrice: 1000}

	assert.Equal(t, 700, EstimateFromMarket("Chanel", "Handbags", models.ItemCondition("mint"), stats))
}

func TestEstimateFromMarketWithoutStats(t *testing.T) {
	// Louis Vuitton band 800-3500, midpoint 2150
	assert.Equal(t, 2150, EstimateFromMarket("Louis Vuitton", "Handbags", models.ConditionNew, nil))
	assert.Equal(t, 1505, EstimateFromMarket("Louis Vuitton", "Handbags", models.ConditionGood, nil))

	// Unrecognized brand falls back to the generic 300-1500 band, midpoint 900
	assert.Equal(t, 900, EstimateFromMarket("Unknown Atelier", "Handbags", models.ConditionNew, nil))
	assert.Equal(t, 630, EstimateFromMarket("Unknown Atelier", "Handbags", models.ConditionGood, nil))
}

func TestBlendedConfidence(t *testing.T) {
	assert.Equal(t, 70, BlendedConfidence(nil, nil))

	vision := &VisionAnalysis{Brand: "Gucci", Confidence: 85}
	assert.Equal(t, 90, BlendedConfidence(vision, nil))

	stats := &market.Statistics{TotalListings: 6}
	assert.Equal(t, 95, BlendedConfidence(vision, stats))

	// Exactly five listings is not enough for the market bonus
	few := &market.Statistics{TotalListings: 5}
	assert.Equal(t, 90, BlendedConfidence(vision, few))

	// Vision confidence of exactly 80 does not earn the bonus
	unsure := &VisionAnalysis{Brand: "Gucci", Confidence: 80}
	assert.Equal(t, 80, BlendedConfidence(unsure, nil))
}

func TestBlendedConfidenceCappedBelowLocalMax(t *testing.T) {
	vision := &VisionAnalysis{Brand: "Hermès", Confidence: 99}
	stats := &market.Statistics{TotalListings: 20}

	assert.Equal(t, 95, BlendedConfidence(vision, stats))
}

func TestPriceRangeForBrand(t *testing.T) {
	lv := PriceRangeForBrand("Louis Vuitton")
	assert.Equal(t, 800, lv.Min)
	assert.Equal(t, 3500, lv.Max)

	other := PriceRangeForBrand("Unknown Atelier")
	assert.Equal(t, 300, other.Min)
	assert.Equal(t, 1500, other.Max)
}

func TestBaseBrandPrice(t *testing.T) {
	assert.Equal(t, 2150, BaseBrandPrice("Louis Vuitton", "Handbags"))
	assert.Equal(t, 10000, BaseBrandPrice("Hermès", "Handbags"))
	assert.Equal(t, 900, BaseBrandPrice("Unknown Atelier", "Handbags"))
}
