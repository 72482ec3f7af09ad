// internal/tests/appraisal_api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/luxeval/luxeval-backend/internal/config"
	"github.com/luxeval/luxeval-backend/internal/handlers"
	"github.com/luxeval/luxeval-backend/internal/middleware"
	"github.com/luxeval/luxeval-backend/internal/services"
)

type AppraisalAPITestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *AppraisalAPITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	// No database and no external API credentials: the endpoints under test
	// run on the local heuristic and simulated market data
	cfg := &config.Config{
		Appraisal: config.AppraisalConfig{FloorAtZero: true, MaxStoredListings: 10},
	}

	visionService := services.NewVisionService(cfg)
	marketService := services.NewMarketService(cfg)
	historyService := services.NewHistoryService(nil)
	appraisalService := services.NewAppraisalService(nil, cfg, visionService, marketService)
	storageService, _ := services.NewStorageService(cfg)

	appraisalHandler := handlers.NewAppraisalHandler(appraisalService, storageService)
	marketHandler := handlers.NewMarketHandler(marketService, historyService)
	catalogHandler := handlers.NewCatalogHandler()

	suite.router = gin.New()
	suite.router.Use(middleware.I18nMiddleware())

	v1 := suite.router.Group("/v1")
	{
		v1.POST("/appraisals", middleware.OptionalAuth(), appraisalHandler.Create)
		v1.POST("/appraisals/quick", middleware.OptionalAuth(), appraisalHandler.Quick)
		v1.GET("/market/search", marketHandler.Search)
		v1.GET("/market/price-history", marketHandler.PriceHistory)
		v1.GET("/catalog/brands", catalogHandler.Brands)
		v1.GET("/catalog/categories", catalogHandler.Categories)
		v1.GET("/catalog/conditions", catalogHandler.Conditions)
	}
}

func (suite *AppraisalAPITestSuite) postJSON(path string, body map[string]interface{}) *httptest.ResponseRecorder {
	jsonData, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AppraisalAPITestSuite) getJSON(path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AppraisalAPITestSuite) TestQuickAppraisal() {
	w := suite.postJSON("/v1/appraisals/quick", map[string]interface{}{
		"brand":          "Louis Vuitton",
		"category":       "Handbags",
		"original_price": 1000,
		"condition":      "good",
		"has_tags":       false,
		"has_box":        false,
		"design_trend":   "classic",
		"demand_level":   "medium",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), response["success"].(bool))

	data := response["data"].(map[string]interface{})
	result := data["appraisal"].(map[string]interface{})
	assert.Equal(suite.T(), float64(436), result["estimated_price"])
	assert.Equal(suite.T(), float64(70), result["confidence"])
	assert.Len(suite.T(), result["factors"], 5)
}

func (suite *AppraisalAPITestSuite) TestQuickAppraisalRequiresOriginalPrice() {
	w := suite.postJSON("/v1/appraisals/quick", map[string]interface{}{
		"brand":     "Louis Vuitton",
		"category":  "Handbags",
		"condition": "good",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *AppraisalAPITestSuite) TestQuickAppraisalRejectsBadCondition() {
	w := suite.postJSON("/v1/appraisals/quick", map[string]interface{}{
		"brand":          "Louis Vuitton",
		"category":       "Handbags",
		"original_price": 1000,
		"condition":      "pristine",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), response["success"].(bool))
}

func (suite *AppraisalAPITestSuite) TestFullAppraisalDegradesToSimulatedData() {
	w := suite.postJSON("/v1/appraisals", map[string]interface{}{
		"brand":          "Chanel",
		"category":       "Handbags",
		"original_price": 5000,
		"condition":      "excellent",
		"has_tags":       true,
		"has_box":        true,
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	data := response["data"].(map[string]interface{})
	result := data["appraisal"].(map[string]interface{})
	assert.Equal(suite.T(), true, result["simulated_data"])
	assert.Equal(suite.T(), false, result["saved"])
	assert.NotEmpty(suite.T(), result["market_listings"])
	assert.Positive(suite.T(), result["estimated_price"].(float64))
}

func (suite *AppraisalAPITestSuite) TestMarketSearchRequiresBrand() {
	w := suite.getJSON("/v1/market/search")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *AppraisalAPITestSuite) TestMarketSearchSimulated() {
	w := suite.getJSON("/v1/market/search?brand=Gucci&category=Handbags")
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), true, data["simulated_data"])
	assert.NotEmpty(suite.T(), data["listings"])
	assert.NotNil(suite.T(), data["stats"])
}

func (suite *AppraisalAPITestSuite) TestPriceHistory() {
	w := suite.getJSON("/v1/market/price-history?brand=Chanel&category=Handbags&range=3M")
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), "3M", data["range"])
	assert.Len(suite.T(), data["points"], 30)
}

func (suite *AppraisalAPITestSuite) TestPriceHistoryRejectsBadRange() {
	w := suite.getJSON("/v1/market/price-history?brand=Chanel&category=Handbags&range=2W")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *AppraisalAPITestSuite) TestCatalogEndpoints() {
	w := suite.getJSON("/v1/catalog/brands")
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(suite.T(), data["brands"])

	w = suite.getJSON("/v1/catalog/categories")
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.getJSON("/v1/catalog/conditions")
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	data = response["data"].(map[string]interface{})
	assert.Len(suite.T(), data["conditions"], 5)
}

func TestAppraisalAPISuite(t *testing.T) {
	suite.Run(t, new(AppraisalAPITestSuite))
}
