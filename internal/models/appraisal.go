// internal/models/appraisal.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Appraisal is one stored valuation of a luxury item. Rows are written
// best-effort after an appraisal request when the caller is authenticated;
// they are never updated afterwards.
type Appraisal struct {
	BaseModel
	UserID *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`

	// Declared item attributes
	Brand         string         `json:"brand" gorm:"size:100;not null;index"`
	Category      string         `json:"category" gorm:"size:100;not null;index"`
	Model         string         `json:"model,omitempty" gorm:"size:255"`
	OriginalPrice float64        `json:"original_price" gorm:"type:decimal(12,2);default:0"`
	Condition     ItemCondition  `json:"condition" gorm:"type:varchar(20);not null"`
	HasTags       bool           `json:"has_tags" gorm:"default:false"`
	HasBox        bool           `json:"has_box" gorm:"default:false"`
	DesignTrend   DesignTrend    `json:"design_trend" gorm:"type:varchar(20);default:'classic'"`
	DemandLevel   DemandLevel    `json:"demand_level" gorm:"type:varchar(20);default:'medium'"`
	Images        pq.StringArray `json:"images" gorm:"type:text[]"`

	// Valuation output
	EstimatedPrice int        `json:"estimated_price" gorm:"not null"`
	PriceRangeMin  int        `json:"price_range_min"`
	PriceRangeMax  int        `json:"price_range_max"`
	Factors        JSONBArray `json:"factors" gorm:"type:jsonb"`
	Confidence     int        `json:"confidence" gorm:"not null"`

	// AI vision detections (nullable; absent when no images were analyzed)
	AIBrandDetection string   `json:"ai_brand_detection,omitempty" gorm:"size:100"`
	AIModelDetection string   `json:"ai_model_detection,omitempty" gorm:"size:255"`
	AIConditionScore *float64 `json:"ai_condition_score,omitempty" gorm:"type:decimal(4,2)"`

	// Market snapshot at appraisal time
	MarketListings JSONBArray `json:"market_listings" gorm:"type:jsonb"`
	MarketStats    JSONB      `json:"market_stats" gorm:"type:jsonb"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
