package http

import (
	"github.com/gin-gonic/gin"

	"github.com/storelens/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Storefront endpoints
		v1.GET("/search", handler.Search)
		v1.GET("/suggest", handler.Suggest)
		v1.GET("/products", handler.ListProducts)
		v1.GET("/products/:id", handler.GetProduct)

		// Back-office endpoints
		v1.POST("/products", handler.CreateProduct)
		v1.PUT("/products/:id", handler.UpdateProduct)
		v1.DELETE("/products/:id", handler.DeleteProduct)

		admin := v1.Group("/admin")
		{
			admin.GET("/logs", handler.RecentLogs)
		}
	}

	return router
}
