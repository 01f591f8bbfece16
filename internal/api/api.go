// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kylepratt/flipledger/backend-go/internal/api/handlers"
	"github.com/kylepratt/flipledger/backend-go/internal/api/middleware"
	"github.com/kylepratt/flipledger/backend-go/internal/service"
)

type Services struct {
	AnalyticsService *service.AnalyticsService
	ReportService    *service.ReportService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.AnalyticsService != nil {
			analyticsHandler := handlers.NewAnalyticsHandler(services.AnalyticsService)
			analyticsGroup := apiGroup.Group("/analytics")
			{
				analyticsGroup.GET("/hero", analyticsHandler.GetHeroMetrics)
				analyticsGroup.GET("/pallets", analyticsHandler.GetPalletAnalytics)
				analyticsGroup.GET("/types", analyticsHandler.GetTypeComparison)
				analyticsGroup.GET("/suppliers", analyticsHandler.GetSupplierComparison)
				analyticsGroup.GET("/pallet-types", analyticsHandler.GetPalletTypeComparison)
				analyticsGroup.GET("/stale", analyticsHandler.GetStaleItems)
				analyticsGroup.GET("/trend", analyticsHandler.GetProfitTrend)
				analyticsGroup.GET("/filters", analyticsHandler.GetFilters)
			}
		}

		if services.ReportService != nil {
			reportHandler := handlers.NewReportHandler(services.ReportService)
			reportGroup := apiGroup.Group("/reports")
			{
				reportGroup.GET("/profit-loss", reportHandler.GetProfitLoss)
				reportGroup.GET("/profit-loss/export", reportHandler.ExportProfitLoss)
				reportGroup.POST("/profit-loss/upload", reportHandler.UploadProfitLoss)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
