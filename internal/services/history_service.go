// internal/services/history_service.go
package services

import (
	"errors"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/luxeval/luxeval-backend/internal/models"
)

// Supported history ranges and how far back each one reaches.
var historyRanges = map[string]time.Duration{
	"1M":  30 * 24 * time.Hour,
	"3M":  90 * 24 * time.Hour,
	"6M":  180 * 24 * time.Hour,
	"1Y":  365 * 24 * time.Hour,
	"ALL": 0,
}

// Typical resale baselines per brand for the simulated series.
var historyBasePrices = map[string]int{
	"Louis Vuitton": 2000,
	"Chanel":        4000,
	"Hermès":        10000,
	"Gucci":         1500,
	"Prada":         1200,
	"Dior":          2500,
	"Fendi":         1800,
	"Burberry":      1000,
	"Saint Laurent": 2000,
	"Balenciaga":    1500,
}

const defaultHistoryBasePrice = 800

// HistoryPoint is one chart-ready sample.
type HistoryPoint struct {
	Date   string `json:"date"`
	Price  int    `json:"price"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Volume int    `json:"volume"`
}

// PriceHistory is the response for a history query.
type PriceHistory struct {
	Brand         string         `json:"brand"`
	Category      string         `json:"category"`
	Model         string         `json:"model,omitempty"`
	Range         string         `json:"range"`
	Points        []HistoryPoint `json:"points"`
	SimulatedData bool           `json:"simulated_data,omitempty"`
}

// HistoryService serves resale price history. Recorded observations come from
// the price_history table; brand/category pairs with no observations get a
// deterministic simulated series instead.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Get returns the price series for a brand/category (optionally model) over
// the requested range. Unknown range labels are rejected.
func (s *HistoryService) Get(brand, category, model, rangeLabel string) (*PriceHistory, error) {
	rangeLabel = strings.ToUpper(strings.TrimSpace(rangeLabel))
	if rangeLabel == "" {
		rangeLabel = "6M"
	}
	window, ok := historyRanges[rangeLabel]
	if !ok {
		return nil, errors.New("invalid range")
	}

	history := &PriceHistory{
		Brand:    brand,
		Category: category,
		Model:    model,
		Range:    rangeLabel,
	}

	if s.db != nil {
		points, err := s.queryRecorded(brand, category, model, window)
		if err != nil {
			return nil, err
		}
		if len(points) > 0 {
			history.Points = points
			return history, nil
		}
	}

	history.Points = simulatedHistory(brand, category, model, rangeLabel, window)
	history.SimulatedData = true
	return history, nil
}

func (s *HistoryService) queryRecorded(brand, category, model string, window time.Duration) ([]HistoryPoint, error) {
	query := s.db.Model(&models.PriceHistoryPoint{}).
		Where("brand = ? AND category = ?", brand, category).
		Order("recorded_at ASC")
	if model != "" {
		query = query.Where("model = ?", model)
	}
	if window > 0 {
		query = query.Where("recorded_at >= ?", time.Now().Add(-window))
	}

	var rows []models.PriceHistoryPoint
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	points := make([]HistoryPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, HistoryPoint{
			Date:   row.RecordedAt.Format("2006-01-02"),
			Price:  row.Price,
			Min:    row.MinPrice,
			Max:    row.MaxPrice,
			Volume: row.Volume,
		})
	}
	return points, nil
}

// RecordObservation stores one market observation for later history queries.
// Called after live (non-simulated) market searches.
func (s *HistoryService) RecordObservation(brand, category, model string, avg, min, max, volume int) error {
	if s.db == nil {
		return errors.New("history storage unavailable")
	}
	return s.db.Create(&models.PriceHistoryPoint{
		Brand:      brand,
		Category:   category,
		Model:      model,
		Price:      avg,
		MinPrice:   min,
		MaxPrice:   max,
		Volume:     volume,
		RecordedAt: time.Now(),
	}).Error
}

// simulatedHistory builds a plausible weekly series: a gentle upward drift
// plus a seasonal sine wave plus seeded noise. Seeded by the item identity,
// so repeated queries chart the same curve.
func simulatedHistory(brand, category, model, rangeLabel string, window time.Duration) []HistoryPoint {
	if window == 0 {
		window = 2 * 365 * 24 * time.Hour // "ALL" charts two years
	}

	base := defaultHistoryBasePrice
	if b, ok := historyBasePrices[brand]; ok {
		base = b
	}

	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(brand + "|" + category + "|" + model + "|" + rangeLabel)))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	const samples = 30
	step := window / samples
	start := time.Now().Add(-window)

	points := make([]HistoryPoint, 0, samples)
	for i := 0; i < samples; i++ {
		progress := float64(i) / float64(samples-1)

		drift := 1 + 0.08*progress
		seasonal := 1 + 0.05*math.Sin(progress*4*math.Pi)
		noise := 1 + (rng.Float64()-0.5)*0.06

		price := int(math.Round(float64(base) * drift * seasonal * noise))
		spread := int(math.Round(float64(price) * 0.12))

		points = append(points, HistoryPoint{
			Date:   start.Add(time.Duration(i) * step).Format("2006-01-02"),
			Price:  price,
			Min:    price - spread,
			Max:    price + spread,
			Volume: 5 + rng.Intn(25),
		})
	}
	return points
}
