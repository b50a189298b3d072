package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gerald999876/Fasting-Project/internal/service"
	"github.com/gerald999876/Fasting-Project/pkg/api"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler implements the report export API endpoint
type ReportHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

// GetProgressReport renders the progress report as a PDF download
func (h *ReportHandler) GetProgressReport(c *gin.Context) {
	report, err := h.service.ProgressReport(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrPremiumRequired) {
			c.JSON(http.StatusForbidden, api.ErrorResponse{
				Code:    "PREMIUM_REQUIRED",
				Message: "Progress report export requires a premium subscription",
			})
			return
		}

		h.logger.Error("failed to generate progress report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to generate progress report",
			Details: stringPtr(err.Error()),
		})
		return
	}

	filename := fmt.Sprintf("fasting-progress-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", report)
}
