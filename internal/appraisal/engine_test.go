// internal/appraisal/engine_test.go
package appraisal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/luxeval/luxeval-backend/internal/models"
)

func testItem() LuxuryItem {
	return LuxuryItem{
		Brand:         "Louis Vuitton",
		Category:      "Handbags",
		OriginalPrice: 1000,
		Condition:     models.ConditionGood,
		HasTags:       false,
		HasBox:        false,
		DesignTrend:   models.TrendClassic,
		DemandLevel:   models.DemandMedium,
	}
}

func TestCalculateWorkedExample(t *testing.T) {
	// 1000 * 0.65 base, adjustments: good -0.15, no tags -0.10, no box -0.08,
	// classic 0, medium 0 => 650 * 0.67 = 435.5
	engine := NewEngine(DefaultOptions())
	result := engine.Calculate(testItem())

	assert.Equal(t, 436, result.EstimatedPrice)
	assert.Equal(t, 392, result.PriceRange.Min) // 435.5 * 0.9 = 391.95
	assert.Equal(t, 479, result.PriceRange.Max) // 435.5 * 1.1 = 479.05
	assert.Equal(t, 70, result.Confidence)
	assert.NotEmpty(t, result.ID)
}

func TestCalculateHalfPointEstimates(t *testing.T) {
	// Good condition with no tags and no box totals exactly -33%, which
	// leaves these prices on a .5 boundary before rounding. A drifting
	// adjustment sum would land just below it and round down.
	tests := []struct {
		price float64
		want  int
	}{
		{1000, 436},  // 650 * 0.67 = 435.5
		{3000, 1307}, // 1950 * 0.67 = 1306.5
		{9000, 3920}, // 5850 * 0.67 = 3919.5
	}

	engine := NewEngine(DefaultOptions())
	for _, tt := range tests {
		item := testItem()
		item.OriginalPrice = tt.price
		assert.Equal(t, tt.want, engine.Calculate(item).EstimatedPrice, "original price %v", tt.price)
	}
}

func TestCalculateBestCase(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	item := testItem()
	item.Condition = models.ConditionNew
	item.HasTags = true
	item.HasBox = true
	item.DesignTrend = models.TrendTrending
	item.DemandLevel = models.DemandHigh

	// adjustments: 0 + 0.15 + 0.10 = +0.25 => 650 * 1.25 = 812.5
	result := engine.Calculate(item)

	assert.Equal(t, 813, result.EstimatedPrice)
	assert.Equal(t, 731, result.PriceRange.Min)
	assert.Equal(t, 894, result.PriceRange.Max)
	assert.Equal(t, 100, result.Confidence)
}

func TestCalculateFactorOrder(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	result := engine.Calculate(testItem())

	expected := []string{
		"Item Condition",
		"Original Tags",
		"Original Packaging",
		"Design Trend",
		"Market Demand",
	}
	assert.Len(t, result.Factors, 5)
	for i, factor := range result.Factors {
		assert.Equal(t, expected[i], factor.Name)
	}
}

func TestCalculateFactorAdjustments(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	result := engine.Calculate(testItem())

	assert.Equal(t, -15.0, result.Factors[0].Adjustment)
	assert.Equal(t, models.ImpactNegative, result.Factors[0].Impact)
	assert.Equal(t, -10.0, result.Factors[1].Adjustment)
	assert.Equal(t, -8.0, result.Factors[2].Adjustment)
	assert.Equal(t, 0.0, result.Factors[3].Adjustment)
	assert.Equal(t, models.ImpactNeutral, result.Factors[3].Impact)
	assert.Equal(t, 0.0, result.Factors[4].Adjustment)
}

func TestCalculateUnknownConditionTreatedAsGood(t *testing.T) {
	engine := NewEngine(DefaultOptions())

	known := testItem()
	unknown := testItem()
	unknown.Condition = models.ItemCondition("pristine")

	assert.Equal(t, engine.Calculate(known).EstimatedPrice, engine.Calculate(unknown).EstimatedPrice)
}

func TestCalculateDemandMonotonic(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	item := testItem()

	prices := make([]int, 0, 3)
	for _, demand := range []models.DemandLevel{models.DemandLow, models.DemandMedium, models.DemandHigh} {
		item.DemandLevel = demand
		prices = append(prices, engine.Calculate(item).EstimatedPrice)
	}

	assert.Less(t, prices[0], prices[1])
	assert.Less(t, prices[1], prices[2])
}

func TestCalculateConditionMonotonic(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	item := testItem()

	conditions := []models.ItemCondition{
		models.ConditionPoor,
		models.ConditionFair,
		models.ConditionGood,
		models.ConditionExcellent,
		models.ConditionNew,
	}

	prev := -1
	for _, condition := range conditions {
		item.Condition = condition
		price := engine.Calculate(item).EstimatedPrice
		assert.Greater(t, price, prev, "condition %s should price above the previous grade", condition)
		prev = price
	}
}

func TestCalculateDeterministicWithFixedClock(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	engine := NewEngine(DefaultOptions()).WithClock(func() time.Time { return fixed })

	a := engine.Calculate(testItem())
	b := engine.Calculate(testItem())

	assert.Equal(t, a.EstimatedPrice, b.EstimatedPrice)
	assert.Equal(t, a.PriceRange, b.PriceRange)
	assert.Equal(t, a.Factors, b.Factors)
	assert.Equal(t, a.Confidence, b.Confidence)
	assert.Equal(t, fixed, a.CreatedAt)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCalculateFloorAtZero(t *testing.T) {
	// poor -0.50, no tags -0.10, no box -0.08, dated -0.20, low -0.15 = -1.03
	item := testItem()
	item.Condition = models.ConditionPoor
	item.DesignTrend = models.TrendDated
	item.DemandLevel = models.DemandLow

	floored := NewEngine(DefaultOptions()).Calculate(item)
	assert.Equal(t, 0, floored.EstimatedPrice)
	assert.Equal(t, 0, floored.PriceRange.Min)
	assert.Equal(t, 0, floored.PriceRange.Max)

	unfloored := NewEngine(Options{}).Calculate(item)
	assert.Negative(t, unfloored.EstimatedPrice)
}

func TestPresenceFactorLabels(t *testing.T) {
	item := testItem()
	item.HasTags = true
	item.HasBox = true

	shipped := NewEngine(DefaultOptions()).Calculate(item)
	assert.Equal(t, models.ImpactPositive, shipped.Factors[1].Impact)
	assert.Equal(t, models.ImpactPositive, shipped.Factors[2].Impact)

	neutral := NewEngine(Options{NeutralPresenceFactors: true, FloorAtZero: true}).Calculate(item)
	assert.Equal(t, models.ImpactNeutral, neutral.Factors[1].Impact)
	assert.Equal(t, models.ImpactNeutral, neutral.Factors[2].Impact)

	// Labeling never changes the numbers
	assert.Equal(t, shipped.EstimatedPrice, neutral.EstimatedPrice)
}

func TestLocalConfidence(t *testing.T) {
	item := testItem()
	assert.Equal(t, 70, LocalConfidence(item))

	item.HasTags = true
	assert.Equal(t, 80, LocalConfidence(item))

	item.HasBox = true
	assert.Equal(t, 90, LocalConfidence(item))

	item.Condition = models.ConditionExcellent
	assert.Equal(t, 100, LocalConfidence(item))

	item.Condition = models.ConditionNew
	assert.Equal(t, 100, LocalConfidence(item))
}

func TestConditionDescription(t *testing.T) {
	assert.Equal(t, "Brand new with tags, never worn or used", ConditionDescription(models.ConditionNew))
	assert.Empty(t, ConditionDescription(models.ItemCondition("pristine")))
}
