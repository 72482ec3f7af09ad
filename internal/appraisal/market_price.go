// internal/appraisal/market_price.go
package appraisal

import (
	"math"

	"github.com/luxeval/luxeval-backend/internal/market"
	"github.com/luxeval/luxeval-backend/internal/models"
)

// Multiplicative condition multipliers for the market-informed strategy.
// These are on a 0–1 scale and applied to the market average, unlike the
// additive fractions the local engine sums against its 65% base. The two
// strategies are selected by which upstream data is available and are never
// merged.
var marketConditionMultipliers = map[models.ItemCondition]float64{
	models.ConditionNew:       1.0,
	models.ConditionExcellent: 0.85,
	models.ConditionGood:      0.70,
	models.ConditionFair:      0.55,
	models.ConditionPoor:      0.40,
}

const defaultMarketConditionMultiplier = 0.70

// VisionAnalysis is the subset of the vision collaborator's output the pricing
// variant consumes.
type VisionAnalysis struct {
	Brand          string               `json:"brand,omitempty"`
	Model          string               `json:"model,omitempty"`
	Category       string               `json:"category,omitempty"`
	Condition      models.ItemCondition `json:"condition"`
	ConditionScore float64              `json:"condition_score"`
	Confidence     int                  `json:"confidence"`
	Details        string               `json:"details"`
	SuggestedPrice string               `json:"suggested_price,omitempty"`
}

// EstimateFromMarket prices an item from observed market data when available,
// otherwise from the per-brand base price table. The condition multiplier is
// applied multiplicatively in both cases.
func EstimateFromMarket(brand, category string, condition models.ItemCondition, stats *market.Statistics) int {
	base := float64(BaseBrandPrice(brand, category))
	if stats != nil {
		base = float64(stats.AveragePrice)
	}

	multiplier, ok := marketConditionMultipliers[condition]
	if !ok {
		multiplier = defaultMarketConditionMultiplier
	}

	return int(math.Round(base * multiplier))
}

// BlendedConfidence scores certainty from which upstream signals arrived:
// 70 base, +10 when vision identified the brand, +10 when vision reported
// confidence above 80, +10 with more than five market listings. Capped at 95,
// below the local variant's 100.
func BlendedConfidence(vision *VisionAnalysis, stats *market.Statistics) int {
	confidence := 70

	if vision != nil && vision.Brand != "" {
		confidence += 10
	}
	if vision != nil && vision.Confidence > 80 {
		confidence += 10
	}
	if stats != nil && stats.TotalListings > 5 {
		confidence += 10
	}

	if confidence > 95 {
		confidence = 95
	}
	return confidence
}
