package handler

import (
	"errors"
	"net/http"

	"github.com/gerald999876/Fasting-Project/internal/repository"
	"github.com/gerald999876/Fasting-Project/internal/service"
	"github.com/gerald999876/Fasting-Project/pkg/api"
	"github.com/gerald999876/Fasting-Project/pkg/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JournalHandler implements the journal API endpoints
type JournalHandler struct {
	service *service.JournalService
	logger  *zap.Logger
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(service *service.JournalService, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{
		service: service,
		logger:  logger,
	}
}

// List returns all journal entries
func (h *JournalHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get journal entries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to get journal entries",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Create stores a new journal entry
func (h *JournalHandler) Create(c *gin.Context) {
	entry, ok := h.bindEntry(c)
	if !ok {
		return
	}

	created, err := h.service.Create(c.Request.Context(), entry)
	if err != nil {
		h.respondError(c, err, "Failed to create journal entry")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update replaces the entry with the given ID
func (h *JournalHandler) Update(c *gin.Context) {
	entry, ok := h.bindEntry(c)
	if !ok {
		return
	}
	entry.ID = c.Param("id")

	updated, err := h.service.Update(c.Request.Context(), entry)
	if err != nil {
		h.respondError(c, err, "Failed to update journal entry")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete removes the entry with the given ID
func (h *JournalHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete journal entry")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *JournalHandler) bindEntry(c *gin.Context) (model.JournalEntry, bool) {
	var req api.JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return model.JournalEntry{}, false
	}

	entry := model.JournalEntry{
		Title:   req.Title,
		Content: req.Content,
		Mood:    model.JournalMood(req.Mood),
		Tags:    req.Tags,
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}
	return entry, true
}

func (h *JournalHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidEntry):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
	case errors.Is(err, repository.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Journal entry not found",
		})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: fallback,
			Details: stringPtr(err.Error()),
		})
	}
}
