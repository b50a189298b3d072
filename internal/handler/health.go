package handler

import (
	"errors"
	"net/http"

	"github.com/gerald999876/Fasting-Project/internal/service"
	"github.com/gerald999876/Fasting-Project/pkg/api"
	"github.com/gerald999876/Fasting-Project/pkg/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthHandler implements the health metrics API endpoints
type HealthHandler struct {
	service *service.HealthService
	logger  *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(service *service.HealthService, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger,
	}
}

// GetMetrics retrieves the metrics history, newest first
func (h *HealthHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.service.History(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get health metrics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to get health metrics",
			Details: stringPtr(err.Error()),
		})
		return
	}

	response := make([]api.HealthMetricsResponse, 0, len(metrics))
	for _, m := range metrics {
		response = append(response, api.HealthMetricsResponse{
			ID:           m.ID,
			Date:         *timeToDate(m.Date),
			Weight:       m.Weight,
			WaterIntake:  m.WaterIntake,
			EnergyLevel:  m.EnergyLevel,
			Mood:         m.Mood,
			SleepQuality: m.SleepQuality,
		})
	}

	c.JSON(http.StatusOK, response)
}

// PostMetrics records the daily health metrics
func (h *HealthHandler) PostMetrics(c *gin.Context) {
	var req api.HealthMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	metrics := model.HealthMetrics{
		Weight:       req.Weight,
		WaterIntake:  req.WaterIntake,
		EnergyLevel:  req.EnergyLevel,
		Mood:         req.Mood,
		SleepQuality: req.SleepQuality,
	}
	if req.Date != nil {
		metrics.Date = dateToTime(*req.Date)
	}

	saved, err := h.service.Record(c.Request.Context(), metrics)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMetrics) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			})
			return
		}

		h.logger.Error("failed to record health metrics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to record health metrics",
			Details: stringPtr(err.Error()),
		})
		return
	}

	h.logger.Info("health metrics recorded", zap.String("metrics_id", saved.ID))

	c.JSON(http.StatusOK, api.HealthMetricsResponse{
		ID:           saved.ID,
		Date:         *timeToDate(saved.Date),
		Weight:       saved.Weight,
		WaterIntake:  saved.WaterIntake,
		EnergyLevel:  saved.EnergyLevel,
		Mood:         saved.Mood,
		SleepQuality: saved.SleepQuality,
	})
}
