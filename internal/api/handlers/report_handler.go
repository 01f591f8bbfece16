package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kylepratt/flipledger/backend-go/internal/service"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) GetProfitLoss(c *gin.Context) {
	r, ok := parseDateRange(c)
	if !ok {
		return
	}

	stmt, err := h.service.GetProfitLoss(c.Request.Context(), r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build profit loss statement", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stmt)
}

// ExportProfitLoss streams the statement as a CSV attachment.
func (h *ReportHandler) ExportProfitLoss(c *gin.Context) {
	r, ok := parseDateRange(c)
	if !ok {
		return
	}

	data, filename, err := h.service.ExportProfitLossCSV(c.Request.Context(), r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export profit loss statement", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// UploadProfitLoss exports the statement and pushes it to object storage.
func (h *ReportHandler) UploadProfitLoss(c *gin.Context) {
	r, ok := parseDateRange(c)
	if !ok {
		return
	}

	prefix := c.DefaultQuery("prefix", "reports")
	key, err := h.service.UploadProfitLossCSV(c.Request.Context(), r, prefix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload profit loss export", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key})
}
