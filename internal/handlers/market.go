// internal/handlers/market.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/luxeval/luxeval-backend/internal/i18n"
	"github.com/luxeval/luxeval-backend/internal/market"
	"github.com/luxeval/luxeval-backend/internal/services"
	"github.com/luxeval/luxeval-backend/internal/utils"
)

type MarketHandler struct {
	marketService  *services.MarketService
	historyService *services.HistoryService
}

func NewMarketHandler(marketService *services.MarketService, historyService *services.HistoryService) *MarketHandler {
	return &MarketHandler{
		marketService:  marketService,
		historyService: historyService,
	}
}

// GET /market/search?brand=...&model=...&category=...
func (h *MarketHandler) Search(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	brand := c.Query("brand")
	if brand == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "brand"), nil)
		return
	}
	model := c.Query("model")
	category := c.Query("category")

	result := h.marketService.Search(c.Request.Context(), brand, model, category)
	if len(result.Listings) == 0 {
		utils.NotFoundResponse(c, i18n.KeyMarketNoListings)
		return
	}

	data := gin.H{
		"listings": result.Listings,
		"stats":    result.Stats,
	}
	if result.Simulated {
		data["simulated_data"] = true
		data["notice"] = i18n.T(lang, i18n.KeyMarketSimulatedData)
	} else if result.Stats != nil {
		// Live observations feed the price history series
		go func(stats market.Statistics) {
			err := h.historyService.RecordObservation(
				brand, category, model,
				stats.AveragePrice,
				stats.MinPrice,
				stats.MaxPrice,
				stats.TotalListings,
			)
			if err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"brand":    brand,
					"category": category,
				}).Warn("Failed to record market observation")
			}
		}(*result.Stats)
	}

	utils.SuccessResponse(c, data)
}

// GET /market/price-history?brand=...&category=...&model=...&range=6M
func (h *MarketHandler) PriceHistory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	brand := c.Query("brand")
	category := c.Query("category")
	if brand == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "brand"), nil)
		return
	}
	if category == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "category"), nil)
		return
	}

	history, err := h.historyService.Get(brand, category, c.Query("model"), c.Query("range"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "range"), err.Error())
		return
	}

	utils.SuccessResponse(c, history)
}
