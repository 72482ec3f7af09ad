// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luxeval/luxeval-backend/internal/config"
	"github.com/luxeval/luxeval-backend/internal/handlers"
	"github.com/luxeval/luxeval-backend/internal/middleware"
	"github.com/luxeval/luxeval-backend/internal/models"
	"github.com/luxeval/luxeval-backend/internal/services"
	"github.com/luxeval/luxeval-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	visionService := services.NewVisionService(cfg)
	marketService := services.NewMarketService(cfg)
	historyService := services.NewHistoryService(db)

	authService := services.NewAuthService(db, cfg)
	appraisalService := services.NewAppraisalService(db, cfg, visionService, marketService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	appraisalHandler := handlers.NewAppraisalHandler(appraisalService, storageService)
	marketHandler := handlers.NewMarketHandler(marketService, historyService)
	catalogHandler := handlers.NewCatalogHandler()

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/verify-email/:token", authHandler.VerifyEmail)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Appraisal routes
		appraisals := v1.Group("/appraisals")
		{
			// Anonymous callers get a valuation; authenticated callers also
			// get it saved to their history
			appraisals.POST("", middleware.OptionalAuth(), middleware.AppraisalRateLimit(), appraisalHandler.Create)
			appraisals.POST("/quick", middleware.OptionalAuth(), appraisalHandler.Quick)

			protected := appraisals.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("", appraisalHandler.List)
				protected.GET("/:id", appraisalHandler.Get)
				protected.DELETE("/:id", appraisalHandler.Delete)
				protected.POST("/upload-images", middleware.UploadRateLimit(), appraisalHandler.UploadImages)
			}
		}

		// Market data routes (public)
		market := v1.Group("/market")
		{
			market.GET("/search", marketHandler.Search)
			market.GET("/price-history", marketHandler.PriceHistory)
		}

		// Catalog routes (public, static reference data)
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/brands", catalogHandler.Brands)
			catalog.GET("/categories", catalogHandler.Categories)
			catalog.GET("/conditions", catalogHandler.Conditions)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/stats", adminStatsHandler(db))
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}

func adminStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users, appraisals, historyPoints int64
		db.Model(&models.User{}).Count(&users)
		db.Model(&models.Appraisal{}).Count(&appraisals)
		db.Model(&models.PriceHistoryPoint{}).Count(&historyPoints)

		utils.SuccessResponse(c, gin.H{
			"stats": gin.H{
				"total_users":          users,
				"total_appraisals":     appraisals,
				"price_history_points": historyPoints,
			},
		})
	}
}
