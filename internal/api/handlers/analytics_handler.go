package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kylepratt/flipledger/backend-go/internal/analytics"
	"github.com/kylepratt/flipledger/backend-go/internal/domain"
	"github.com/kylepratt/flipledger/backend-go/internal/service"
)

const dateParamLayout = "2006-01-02"

type AnalyticsHandler struct {
	service *service.AnalyticsService
}

func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// parseDateRange reads the preset/start/end query params shared by every
// analytics endpoint. Explicit bounds override the preset's bounds. Reports
// false after writing a 400 response when a date is malformed.
func parseDateRange(c *gin.Context) (domain.DateRange, bool) {
	r := domain.DateRange{}

	if preset := strings.TrimSpace(c.Query("preset")); preset != "" {
		r = analytics.ResolvePreset(preset, time.Now())
	}

	if start := strings.TrimSpace(c.Query("start")); start != "" {
		t, err := time.Parse(dateParamLayout, start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
			return domain.DateRange{}, false
		}
		r.Start = &t
	}

	if end := strings.TrimSpace(c.Query("end")); end != "" {
		t, err := time.Parse(dateParamLayout, end)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected YYYY-MM-DD"})
			return domain.DateRange{}, false
		}
		r.End = &t
	}

	return r, true
}

func (h *AnalyticsHandler) GetHeroMetrics(c *gin.Context) {
	r, ok := parseDateRange(c)
	if !ok {
		return
	}

	metrics, err := h.service.GetHeroMetrics(c.Request.Context(), r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch hero metrics", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

func (h *AnalyticsHandler) GetPalletAnalytics(c *gin.Context) {
	r, ok := parseDateRange(c)
	if !ok {
		return
	}

	pallets, err := h.service.GetPalletAnalytics(c.Request.Context(), r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch pallet analytics", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pallets": pallets,
		"total":   len(pallets),
	})
}

func (h *AnalyticsHandler) GetTypeComparison(c *gin.Context) {
	r, ok := parseDateRange(c)
	if !ok {
		return
	}

	types, err := h.service.GetTypeComparison(c.Request.Context(), r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch type comparison", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, types)
}

func (h *AnalyticsHandler) GetSupplierComparison(c *gin.Context) {
	r, ok := parseDateRange(c)
	if !ok {
		return
	}

	suppliers, err := h.service.GetSupplierComparison(c.Request.Context(), r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch supplier comparison", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

func (h *AnalyticsHandler) GetPalletTypeComparison(c *gin.Context) {
	r, ok := parseDateRange(c)
	if !ok {
		return
	}

	types, err := h.service.GetPalletTypeComparison(c.Request.Context(), r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch pallet type comparison", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, types)
}

func (h *AnalyticsHandler) GetStaleItems(c *gin.Context) {
	threshold, _ := strconv.Atoi(c.DefaultQuery("threshold", "0"))

	items, err := h.service.GetStaleItems(c.Request.Context(), threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stale items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

func (h *AnalyticsHandler) GetProfitTrend(c *gin.Context) {
	r, ok := parseDateRange(c)
	if !ok {
		return
	}

	raw := c.DefaultQuery("granularity", string(domain.TrendMonthly))
	granularity, ok := domain.ParseTrendGranularity(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid granularity, expected daily, weekly or monthly"})
		return
	}

	points, err := h.service.GetProfitTrend(c.Request.Context(), granularity, r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profit trend", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"granularity": granularity,
		"points":      points,
	})
}

func (h *AnalyticsHandler) GetFilters(c *gin.Context) {
	facets, err := h.service.GetFacets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch filters", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, facets)
}
