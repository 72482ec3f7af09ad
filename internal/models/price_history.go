// internal/models/price_history.go
package models

import "time"

// PriceHistoryPoint is one observed day of resale pricing for a brand/category
// (optionally model) combination.
type PriceHistoryPoint struct {
	BaseModel
	Brand      string    `json:"brand" gorm:"size:100;not null;index:idx_price_history_item"`
	Category   string    `json:"category" gorm:"size:100;not null;index:idx_price_history_item"`
	Model      string    `json:"model,omitempty" gorm:"size:255;index"`
	Price      int       `json:"price" gorm:"not null"`
	MinPrice   int       `json:"min"`
	MaxPrice   int       `json:"max"`
	Volume     int       `json:"volume" gorm:"default:0"`
	RecordedAt time.Time `json:"recorded_at" gorm:"not null;index"`
}
