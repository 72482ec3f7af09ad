// internal/appraisal/types.go
package appraisal

import (
	"time"

	"github.com/luxeval/luxeval-backend/internal/models"
)

// LuxuryItem carries the declared attributes of an item being appraised.
// Enum fields are validated at the request boundary before reaching the engine.
type LuxuryItem struct {
	Brand         string               `json:"brand"`
	Category      string               `json:"category"`
	Model         string               `json:"model,omitempty"`
	OriginalPrice float64              `json:"original_price"`
	Condition     models.ItemCondition `json:"condition"`
	HasTags       bool                 `json:"has_tags"`
	HasBox        bool                 `json:"has_box"`
	DesignTrend   models.DesignTrend   `json:"design_trend"`
	DemandLevel   models.DemandLevel   `json:"demand_level"`
	Images        []string             `json:"images,omitempty"`
}

// Factor is one named contribution to the estimate. Adjustment is a signed
// percentage of the pre-adjustment base, e.g. -15 for a 15% discount.
type Factor struct {
	Name        string              `json:"name"`
	Impact      models.FactorImpact `json:"impact"`
	Description string              `json:"description"`
	Adjustment  float64             `json:"adjustment"`
}

type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Result is immutable once built; persistence stores it verbatim.
type Result struct {
	ID             string     `json:"id"`
	Item           LuxuryItem `json:"item"`
	EstimatedPrice int        `json:"estimated_price"`
	PriceRange     PriceRange `json:"price_range"`
	Factors        []Factor   `json:"factors"`
	Confidence     int        `json:"confidence"`
	CreatedAt      time.Time  `json:"created_at"`
}
