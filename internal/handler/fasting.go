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

// FastingHandler implements the fasting lifecycle API endpoints
type FastingHandler struct {
	fasting *service.FastingService
	stats   *service.StatsService
	logger  *zap.Logger
}

// NewFastingHandler creates a new FastingHandler
func NewFastingHandler(fasting *service.FastingService, stats *service.StatsService, logger *zap.Logger) *FastingHandler {
	return &FastingHandler{
		fasting: fasting,
		stats:   stats,
		logger:  logger,
	}
}

// GetMethods returns the fasting method catalog
func (h *FastingHandler) GetMethods(c *gin.Context) {
	c.JSON(http.StatusOK, model.FastingMethods)
}

// StartFast starts a new fasting session
func (h *FastingHandler) StartFast(c *gin.Context) {
	var req api.StartFastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	session, err := h.fasting.Start(c.Request.Context(), req.MethodID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMethod):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			})
		case errors.Is(err, service.ErrFastAlreadyActive):
			c.JSON(http.StatusConflict, api.ErrorResponse{
				Code:    "FAST_ALREADY_ACTIVE",
				Message: "A fasting session is already active",
			})
		default:
			h.logger.Error("failed to start fasting session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				Code:    "INTERNAL_ERROR",
				Message: "Failed to start fasting session",
				Details: stringPtr(err.Error()),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, session)
}

// StopFast stops the active fasting session early
func (h *FastingHandler) StopFast(c *gin.Context) {
	session, err := h.fasting.Stop(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveFast) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{
				Code:    "NO_ACTIVE_FAST",
				Message: "No active fasting session",
			})
			return
		}

		h.logger.Error("failed to stop fasting session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to stop fasting session",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetStatus returns a snapshot of the fasting state
func (h *FastingHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.fasting.Status())
}

// GetSessions returns the session history, newest first
func (h *FastingHandler) GetSessions(c *gin.Context) {
	sessions, err := h.stats.History(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get session history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to get session history",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, sessions)
}
