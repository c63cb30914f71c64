package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoyoung/packform/config"
	"github.com/ecoyoung/packform/internal/logger"
)

// SetupRouter creates and configures the Gin router. metrics is mounted at the
// configured metrics path when metrics are enabled and metrics is not nil.
func SetupRouter(cfg *config.Config, handler *Handler, log logger.Logger, metrics http.Handler) *gin.Engine {
	if log == nil {
		log = logger.NewNop()
	}

	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if cfg.Upload.MaxBytes > 0 {
		router.MaxMultipartMemory = cfg.Upload.MaxBytes
	}

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	if cfg.Metrics.Enabled && metrics != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(metrics))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		packforms := v1.Group("/packforms")
		{
			packforms.GET("/categories", handler.ListCategories)
			packforms.GET("/taxonomy", handler.ExportTaxonomy)
			packforms.POST("/standardize", handler.Standardize)
			packforms.POST("/classify", handler.Classify)
			packforms.POST("/label", handler.LabelRows)
			packforms.POST("/label/xlsx", handler.LabelWorkbook)
		}
	}

	return router
}
