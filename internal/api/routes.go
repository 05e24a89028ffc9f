package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/search"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/pkg/logger"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, searcher search.Searcher, logger *logger.Logger) {
	h := NewHandlers(db, searcher, logger)

	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", h.HealthCheck)

		// Case endpoints
		api.GET("/cases", h.ListCases)
		api.GET("/cases/:case_number", h.GetCase)
		api.POST("/cases/search", h.SearchCases)

		// Run endpoints
		api.GET("/runs/:id", h.GetRun)
	}
}
