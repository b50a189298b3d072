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

// SettingsHandler implements the user settings API endpoints
type SettingsHandler struct {
	service *service.SettingsService
	logger  *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(service *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		logger:  logger,
	}
}

// Get returns the current settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to get settings",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Put replaces the settings record
func (h *SettingsHandler) Put(c *gin.Context) {
	var req api.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	settings, err := h.service.Update(c.Request.Context(), model.UserSettings{
		PreferredMethodID:    req.PreferredMethodID,
		NotificationsEnabled: req.NotificationsEnabled,
		Units:                req.Units,
		IsPremium:            req.IsPremium,
		PremiumExpiryDate:    req.PremiumExpiryDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidSettings) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			})
			return
		}

		h.logger.Error("failed to update settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to update settings",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, settings)
}
