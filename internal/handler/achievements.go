package handler

import (
	"net/http"

	"github.com/gerald999876/Fasting-Project/internal/service"
	"github.com/gerald999876/Fasting-Project/pkg/api"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AchievementsHandler implements the achievements API endpoint
type AchievementsHandler struct {
	achievements *service.AchievementService
	logger       *zap.Logger
}

// NewAchievementsHandler creates a new AchievementsHandler
func NewAchievementsHandler(achievements *service.AchievementService, logger *zap.Logger) *AchievementsHandler {
	return &AchievementsHandler{
		achievements: achievements,
		logger:       logger,
	}
}

// List returns every achievement with computed progress
func (h *AchievementsHandler) List(c *gin.Context) {
	achievements, err := h.achievements.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to evaluate achievements", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to evaluate achievements",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, achievements)
}
