package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fraudlens/docs"
	"fraudlens/internal/config"
	"fraudlens/internal/handler"
	"fraudlens/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	analysisH *handler.AnalysisHandler,
	exportH *handler.ExportHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Analysis routes
	analyses := v1.Group("/analyses")
	analyses.POST("", analysisH.Ingest)
	analyses.GET("", analysisH.List)
	analyses.GET("/:id", analysisH.GetByID)
	analyses.DELETE("/:id", analysisH.Delete)
	analyses.GET("/:id/factors", analysisH.Factors)
	analyses.GET("/:id/download", analysisH.Download)

	// Staged export routes
	analyses.POST("/:id/exports", exportH.Stage)
	analyses.GET("/:id/exports", exportH.List)

	// Stats
	v1.GET("/stats", statsH.GetStats)

	return r
}
