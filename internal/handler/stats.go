package handler

import (
	"net/http"

	"github.com/gerald999876/Fasting-Project/internal/service"
	"github.com/gerald999876/Fasting-Project/pkg/api"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatsHandler implements the statistics API endpoints
type StatsHandler struct {
	stats  *service.StatsService
	logger *zap.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(stats *service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		stats:  stats,
		logger: logger,
	}
}

// GetSummary returns the aggregate statistics
func (h *StatsHandler) GetSummary(c *gin.Context) {
	summary, err := h.stats.Summary(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to compute statistics summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to compute statistics",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetFrequency returns fast counts bucketed over a range
func (h *StatsHandler) GetFrequency(c *gin.Context) {
	rng, ok := h.bindRange(c)
	if !ok {
		return
	}

	series, err := h.stats.FrequencySeries(c.Request.Context(), rng)
	if err != nil {
		h.logger.Error("failed to compute frequency series", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to compute frequency series",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, api.SeriesResponse{
		Range:  string(rng),
		Labels: series.Labels,
		Data:   series.Data,
	})
}

// GetDuration returns average fast durations bucketed over a range
func (h *StatsHandler) GetDuration(c *gin.Context) {
	rng, ok := h.bindRange(c)
	if !ok {
		return
	}

	series, err := h.stats.DurationSeries(c.Request.Context(), rng)
	if err != nil {
		h.logger.Error("failed to compute duration series", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to compute duration series",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, api.SeriesResponse{
		Range:  string(rng),
		Labels: series.Labels,
		Data:   series.Data,
	})
}

// GetMethodDistribution returns completed fast counts per method
func (h *StatsHandler) GetMethodDistribution(c *gin.Context) {
	distribution, err := h.stats.MethodDistribution(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to compute method distribution", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to compute method distribution",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, distribution)
}

func (h *StatsHandler) bindRange(c *gin.Context) (service.TimeRange, bool) {
	raw := c.DefaultQuery("range", string(service.TimeRangeWeek))
	rng, ok := service.ParseTimeRange(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Range must be week, month or quarter",
		})
		return "", false
	}
	return rng, true
}
