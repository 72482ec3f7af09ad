// internal/services/appraisal_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/luxeval/luxeval-backend/internal/appraisal"
	"github.com/luxeval/luxeval-backend/internal/config"
	"github.com/luxeval/luxeval-backend/internal/market"
	"github.com/luxeval/luxeval-backend/internal/models"
	"github.com/luxeval/luxeval-backend/internal/utils"
)

// AppraisalResponse is the full appraisal payload: the valuation itself plus
// the AI analysis and market snapshot that informed it.
type AppraisalResponse struct {
	appraisal.Result
	AIAnalysis     *appraisal.VisionAnalysis `json:"ai_analysis,omitempty"`
	MarketListings []market.Listing          `json:"market_listings,omitempty"`
	MarketStats    *market.Statistics        `json:"market_stats,omitempty"`
	SimulatedData  bool                      `json:"simulated_data,omitempty"`
	Saved          bool                      `json:"saved"`
}

// AppraisalService orchestrates the full appraisal flow: vision analysis of
// uploaded photos, market comparable search, pricing, and best-effort
// persistence for authenticated callers.
type AppraisalService struct {
	db        *gorm.DB
	cfg       *config.Config
	engine    *appraisal.Engine
	visionSvc *VisionService
	marketSvc *MarketService
}

func NewAppraisalService(db *gorm.DB, cfg *config.Config, visionSvc *VisionService, marketSvc *MarketService) *AppraisalService {
	return &AppraisalService{
		db:  db,
		cfg: cfg,
		engine: appraisal.NewEngine(appraisal.Options{
			NeutralPresenceFactors: cfg.Appraisal.NeutralPresenceFactors,
			FloorAtZero:            cfg.Appraisal.FloorAtZero,
		}),
		visionSvc: visionSvc,
		marketSvc: marketSvc,
	}
}

// Quick runs the local heuristic only. No external calls, no persistence.
func (s *AppraisalService) Quick(item appraisal.LuxuryItem) appraisal.Result {
	return s.engine.Calculate(item)
}

// Appraise runs the full AI-assisted flow. Vision and market failures degrade
// rather than fail the request; a nil userID skips persistence.
func (s *AppraisalService) Appraise(ctx context.Context, userID *uuid.UUID, item appraisal.LuxuryItem) (*AppraisalResponse, error) {
	var vision *appraisal.VisionAnalysis
	if len(item.Images) > 0 && s.visionSvc.Configured() {
		result, err := s.visionSvc.AnalyzeItemImage(ctx, item.Images[0])
		if err != nil {
			logrus.WithError(err).Warn("Vision analysis unavailable, using declared attributes")
		} else {
			vision = result
		}
	}

	// AI detections override declared attributes when present.
	final := item
	if vision != nil {
		if vision.Brand != "" {
			final.Brand = vision.Brand
		}
		if vision.Model != "" {
			final.Model = vision.Model
		}
		if vision.Category != "" {
			final.Category = vision.Category
		}
		if vision.Condition != "" {
			final.Condition = vision.Condition
		}
	}

	search := s.marketSvc.Search(ctx, final.Brand, final.Model, final.Category)

	result := s.priceItem(final, search.Stats)
	result.Confidence = appraisal.BlendedConfidence(vision, search.Stats)

	resp := &AppraisalResponse{
		Result:         result,
		AIAnalysis:     vision,
		MarketListings: search.Listings,
		MarketStats:    search.Stats,
		SimulatedData:  search.Simulated,
	}

	if userID != nil && s.db != nil {
		if err := s.save(userID, resp); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Error("Failed to save appraisal")
		} else {
			resp.Saved = true
		}
	}

	return resp, nil
}

// priceItem picks the pricing strategy: the local heuristic when an original
// price was declared and no market data arrived, otherwise the market-seeded
// estimate with a ±10% range.
func (s *AppraisalService) priceItem(item appraisal.LuxuryItem, stats *market.Statistics) appraisal.Result {
	if stats == nil && item.OriginalPrice > 0 {
		return s.engine.Calculate(item)
	}

	estimated := appraisal.EstimateFromMarket(item.Brand, item.Category, item.Condition, stats)

	result := s.engine.Calculate(item)
	result.EstimatedPrice = estimated
	result.PriceRange = appraisal.PriceRange{
		Min: int(math.Round(float64(estimated) * 0.9)),
		Max: int(math.Round(float64(estimated) * 1.1)),
	}
	return result
}

func (s *AppraisalService) save(userID *uuid.UUID, resp *AppraisalResponse) error {
	record := &models.Appraisal{
		UserID:         userID,
		Brand:          resp.Item.Brand,
		Category:       resp.Item.Category,
		Model:          resp.Item.Model,
		OriginalPrice:  resp.Item.OriginalPrice,
		Condition:      resp.Item.Condition,
		HasTags:        resp.Item.HasTags,
		HasBox:         resp.Item.HasBox,
		DesignTrend:    resp.Item.DesignTrend,
		DemandLevel:    resp.Item.DemandLevel,
		Images:         pq.StringArray(resp.Item.Images),
		EstimatedPrice: resp.EstimatedPrice,
		PriceRangeMin:  resp.PriceRange.Min,
		PriceRangeMax:  resp.PriceRange.Max,
		Factors:        toJSONBArray(resp.Factors),
		Confidence:     resp.Confidence,
	}

	if resp.AIAnalysis != nil {
		record.AIBrandDetection = resp.AIAnalysis.Brand
		record.AIModelDetection = resp.AIAnalysis.Model
		score := resp.AIAnalysis.ConditionScore
		record.AIConditionScore = &score
	}

	listings := resp.MarketListings
	if max := s.cfg.Appraisal.MaxStoredListings; max > 0 && len(listings) > max {
		listings = listings[:max]
	}
	record.MarketListings = toJSONBArray(listings)
	if resp.MarketStats != nil {
		record.MarketStats = toJSONB(resp.MarketStats)
	}

	if err := s.db.Create(record).Error; err != nil {
		return err
	}
	resp.Result.ID = record.ID.String()
	return nil
}

// ListByUser returns the caller's appraisal history, newest first by default.
// Brand/category filters and the sort parameters come from the query string.
func (s *AppraisalService) ListByUser(userID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	var appraisals []models.Appraisal
	query := s.db.Model(&models.Appraisal{}).Where("user_id = ?", userID)
	query = utils.ApplyFilters(query, params)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	query = utils.ApplySort(query, params, []string{"created_at", "estimated_price", "brand", "confidence"})
	if err := utils.ApplyPagination(query, params).Find(&appraisals).Error; err != nil {
		return nil, err
	}

	result := utils.CreatePaginationResult(appraisals, total, params)
	return &result, nil
}

// GetByID returns one appraisal, enforcing ownership.
func (s *AppraisalService) GetByID(userID, appraisalID uuid.UUID) (*models.Appraisal, error) {
	var record models.Appraisal
	if err := s.db.First(&record, "id = ?", appraisalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("appraisal not found")
		}
		return nil, err
	}
	if record.UserID == nil || *record.UserID != userID {
		return nil, errors.New("access denied")
	}
	return &record, nil
}

// Delete soft-deletes one of the caller's appraisals.
func (s *AppraisalService) Delete(userID, appraisalID uuid.UUID) error {
	record, err := s.GetByID(userID, appraisalID)
	if err != nil {
		return err
	}
	return s.db.Delete(record).Error
}

func toJSONBArray(v interface{}) models.JSONBArray {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out models.JSONBArray
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func toJSONB(v interface{}) models.JSONB {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out models.JSONB
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

// ResultFromRecord rebuilds the response shape from a stored row so history
// reads return the same structure as a fresh appraisal.
func ResultFromRecord(record *models.Appraisal) appraisal.Result {
	factors := make([]appraisal.Factor, 0, len(record.Factors))
	if data, err := json.Marshal(record.Factors); err == nil {
		json.Unmarshal(data, &factors)
	}

	return appraisal.Result{
		ID: record.ID.String(),
		Item: appraisal.LuxuryItem{
			Brand:         record.Brand,
			Category:      record.Category,
			Model:         record.Model,
			OriginalPrice: record.OriginalPrice,
			Condition:     record.Condition,
			HasTags:       record.HasTags,
			HasBox:        record.HasBox,
			DesignTrend:   record.DesignTrend,
			DemandLevel:   record.DemandLevel,
			Images:        []string(record.Images),
		},
		EstimatedPrice: record.EstimatedPrice,
		PriceRange: appraisal.PriceRange{
			Min: record.PriceRangeMin,
			Max: record.PriceRangeMax,
		},
		Factors:    factors,
		Confidence: record.Confidence,
		CreatedAt:  record.CreatedAt,
	}
}
