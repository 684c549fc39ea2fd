package api

import (
	"github.com/codetone-labs/codetone-api/internal/api/handlers"
	apimiddleware "github.com/codetone-labs/codetone-api/internal/api/middleware"
	"github.com/codetone-labs/codetone-api/internal/config"
	"github.com/codetone-labs/codetone-api/internal/metrics"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, cw *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking())

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Caller identity: self-hosted deployments run open, hosted ones sit
	// behind a gateway that stamps X-User-* headers.
	auth := apimiddleware.NoAuth()
	if cfg.IsGatewayMode() {
		auth = apimiddleware.GatewayAuth()
	}

	v1 := router.Group("/api/v1")
	v1.Use(auth)
	{
		// Sonification endpoints - the analyze/map/encode pipeline
		sonifyHandler := handlers.NewSonifyHandler(cfg, db, cw)
		v1.POST("/analyze", sonifyHandler.Analyze)
		v1.POST("/sonify", sonifyHandler.Sonify)
		v1.POST("/sonify/diff", sonifyHandler.SonifyDiff)
		v1.POST("/sonify/versions", sonifyHandler.SonifyVersions)
		v1.POST("/midi", sonifyHandler.MIDI)
		v1.GET("/styles", sonifyHandler.Styles)

		// History endpoints (postgres-backed, optional)
		historyHandler := handlers.NewHistoryHandler(db)
		v1.GET("/history", historyHandler.List)
	}

	return router
}
