// Package api monta as rotas HTTP do serviço do painel.
package api

import (
	"net/http"

	"github.com/mlubs/IM-Intel/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// NewRouter registra as rotas do painel e o health check.
func NewRouter(dashboardHandler *handlers.DashboardHandler) *gin.Engine {
	router := gin.Default()

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/dataset/upload", dashboardHandler.HandleUpload)
		apiV1.POST("/dataset/rows", dashboardHandler.HandleRows)
		apiV1.POST("/dataset/reload", dashboardHandler.HandleReload)
		apiV1.GET("/dataset/records", dashboardHandler.HandleRecords)
		apiV1.PUT("/dataset/range", dashboardHandler.HandleSetRange)
		apiV1.GET("/dataset/summary", dashboardHandler.HandleSummary)
		apiV1.GET("/dataset/series/:column", dashboardHandler.HandleSeries)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "dashboard-service"})
	})

	return router
}
