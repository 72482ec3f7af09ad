// internal/appraisal/engine.go
package appraisal

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luxeval/luxeval-backend/internal/models"
)

// Fraction of the original retail price used as the starting point before
// any adjustment is applied.
const BaseResalePercentage = 0.65

// Additive adjustment fractions. All factors are summed against the same
// base, never compounded.
var conditionAdjustments = map[models.ItemCondition]float64{
	models.ConditionNew:       0,
	models.ConditionExcellent: -0.05,
	models.ConditionGood:      -0.15,
	models.ConditionFair:      -0.30,
	models.ConditionPoor:      -0.50,
}

var trendAdjustments = map[models.DesignTrend]float64{
	models.TrendTrending: 0.15,
	models.TrendClassic:  0,
	models.TrendDated:    -0.20,
}

var demandAdjustments = map[models.DemandLevel]float64{
	models.DemandHigh:   0.10,
	models.DemandMedium: 0,
	models.DemandLow:    -0.15,
}

const (
	missingTagsAdjustment = -0.10
	missingBoxAdjustment  = -0.08
)

// Options tune engine behavior that the heuristic leaves open.
type Options struct {
	// NeutralPresenceFactors labels the zero-valued "has tags" / "has box"
	// factors neutral instead of positive. Off by default: the positive label
	// is user-visible and matches the shipped behavior.
	NeutralPresenceFactors bool
	// FloorAtZero clamps the estimate at 0. Adjustments can sum below -1.0
	// (poor, no tags, no box, dated, low demand totals -1.03).
	FloorAtZero bool
}

// DefaultOptions preserve the shipped labeling and never return a negative
// price.
func DefaultOptions() Options {
	return Options{FloorAtZero: true}
}

// Engine is the local pricing heuristic. It is pure apart from the result
// timestamp and identifier, and is safe for concurrent use.
type Engine struct {
	opts Options
	now  func() time.Time
}

func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts, now: time.Now}
}

// WithClock fixes the engine's clock. Used by tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Calculate maps declared item attributes to an estimate, a ±10% range, five
// named factors in fixed evaluation order, and a confidence score.
func (e *Engine) Calculate(item LuxuryItem) Result {
	factors := make([]Factor, 0, 5)

	// Adjustments accumulate in whole percentage points. The fraction table
	// values are not exact in binary floating point and summing them drifts
	// (-0.15 + -0.10 + -0.08 != -0.33), which can move a half-point estimate
	// across the rounding boundary. The scaled values are exact integers.
	totalPct := 0.0

	base := item.OriginalPrice * BaseResalePercentage

	// Factor 1: condition
	conditionAdj, ok := conditionAdjustments[item.Condition]
	if !ok {
		conditionAdj = conditionAdjustments[models.ConditionGood]
	}
	conditionPct := conditionAdj * 100
	totalPct += conditionPct
	conditionImpact := models.ImpactNegative
	if conditionAdj == 0 {
		conditionImpact = models.ImpactNeutral
	}
	factors = append(factors, Factor{
		Name:        "Item Condition",
		Impact:      conditionImpact,
		Description: fmt.Sprintf("Condition: %s", titleCase(string(item.Condition))),
		Adjustment:  conditionPct,
	})

	// Factor 2: original tags
	if !item.HasTags {
		totalPct += missingTagsAdjustment * 100
		factors = append(factors, Factor{
			Name:        "Original Tags",
			Impact:      models.ImpactNegative,
			Description: "Missing original tags",
			Adjustment:  missingTagsAdjustment * 100,
		})
	} else {
		factors = append(factors, Factor{
			Name:        "Original Tags",
			Impact:      e.presenceImpact(),
			Description: "Has original tags",
			Adjustment:  0,
		})
	}

	// Factor 3: original box/packaging
	if !item.HasBox {
		totalPct += missingBoxAdjustment * 100
		factors = append(factors, Factor{
			Name:        "Original Packaging",
			Impact:      models.ImpactNegative,
			Description: "Missing original box/packaging",
			Adjustment:  missingBoxAdjustment * 100,
		})
	} else {
		factors = append(factors, Factor{
			Name:        "Original Packaging",
			Impact:      e.presenceImpact(),
			Description: "Has original box and packaging",
			Adjustment:  0,
		})
	}

	// Factor 4: design trend
	trendPct := trendAdjustments[item.DesignTrend] * 100
	totalPct += trendPct
	factors = append(factors, Factor{
		Name:        "Design Trend",
		Impact:      impactForAdjustment(trendPct),
		Description: fmt.Sprintf("Design is %s", item.DesignTrend),
		Adjustment:  trendPct,
	})

	// Factor 5: market demand
	demandPct := demandAdjustments[item.DemandLevel] * 100
	totalPct += demandPct
	factors = append(factors, Factor{
		Name:        "Market Demand",
		Impact:      impactForAdjustment(demandPct),
		Description: fmt.Sprintf("%s demand", titleCase(string(item.DemandLevel))),
		Adjustment:  demandPct,
	})

	estimated := base * (100 + totalPct) / 100
	if e.opts.FloorAtZero && estimated < 0 {
		estimated = 0
	}

	now := e.now()
	return Result{
		ID:             uuid.New().String(),
		Item:           item,
		EstimatedPrice: roundPrice(estimated),
		PriceRange: PriceRange{
			Min: roundPrice(estimated * 0.9),
			Max: roundPrice(estimated * 1.1),
		},
		Factors:    factors,
		Confidence: LocalConfidence(item),
		CreatedAt:  now,
	}
}

// LocalConfidence scores certainty from declared inputs alone: 70 base,
// +10 for tags, +10 for box, +10 for new or excellent condition, capped at 100.
func LocalConfidence(item LuxuryItem) int {
	confidence := 70
	if item.HasTags {
		confidence += 10
	}
	if item.HasBox {
		confidence += 10
	}
	if item.Condition == models.ConditionNew || item.Condition == models.ConditionExcellent {
		confidence += 10
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

func (e *Engine) presenceImpact() models.FactorImpact {
	if e.opts.NeutralPresenceFactors {
		return models.ImpactNeutral
	}
	return models.ImpactPositive
}

func impactForAdjustment(adj float64) models.FactorImpact {
	switch {
	case adj > 0:
		return models.ImpactPositive
	case adj < 0:
		return models.ImpactNegative
	default:
		return models.ImpactNeutral
	}
}

// roundPrice rounds half away from zero. Prices are non-negative, so this is
// equivalent to rounding .5 upward.
func roundPrice(v float64) int {
	return int(math.Round(v))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ConditionDescription returns the human-readable meaning of a condition grade.
func ConditionDescription(condition models.ItemCondition) string {
	switch condition {
	case models.ConditionNew:
		return "Brand new with tags, never worn or used"
	case models.ConditionExcellent:
		return "Like new, minimal signs of wear"
	case models.ConditionGood:
		return "Gently used, minor imperfections"
	case models.ConditionFair:
		return "Visible wear and tear, functional"
	case models.ConditionPoor:
		return "Significant damage or heavy wear"
	default:
		return ""
	}
}
