// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/luxeval/luxeval-backend/internal/appraisal"
	"github.com/luxeval/luxeval-backend/internal/models"
	"github.com/luxeval/luxeval-backend/internal/utils"
)

// CatalogHandler serves the static reference data the appraisal form is
// built from.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// GET /catalog/brands
func (h *CatalogHandler) Brands(c *gin.Context) {
	brands := make([]gin.H, 0, len(appraisal.LuxuryBrands))
	for _, name := range appraisal.LuxuryBrands {
		entry := gin.H{
			"name":        name,
			"price_range": appraisal.PriceRangeForBrand(name),
		}
		if info, ok := appraisal.BrandData[name]; ok {
			entry["average_resale_rate"] = info.AverageResaleRate
			entry["popular_items"] = info.PopularItems
		}
		brands = append(brands, entry)
	}

	utils.SuccessResponse(c, gin.H{
		"brands": brands,
	})
}

// GET /catalog/categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"categories": appraisal.ItemCategories,
	})
}

// GET /catalog/conditions
func (h *CatalogHandler) Conditions(c *gin.Context) {
	conditions := []models.ItemCondition{
		models.ConditionNew,
		models.ConditionExcellent,
		models.ConditionGood,
		models.ConditionFair,
		models.ConditionPoor,
	}

	out := make([]gin.H, 0, len(conditions))
	for _, condition := range conditions {
		out = append(out, gin.H{
			"value":       condition,
			"description": appraisal.ConditionDescription(condition),
		})
	}

	utils.SuccessResponse(c, gin.H{
		"conditions": out,
	})
}
