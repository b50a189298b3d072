package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gerald999876/Fasting-Project/pkg/model"
	"go.uber.org/zap"
)

// ErrInvalidSettings is returned when a settings update fails validation
var ErrInvalidSettings = errors.New("invalid settings")

// SettingsService validates and persists the user settings record
type SettingsService struct {
	repo   SettingsRepositoryInterface
	logger *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo SettingsRepositoryInterface, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repo:   repo,
		logger: logger,
	}
}

// Get returns the current settings
func (s *SettingsService) Get(ctx context.Context) (model.UserSettings, error) {
	return s.repo.Get(ctx)
}

// Update validates and persists the settings record
func (s *SettingsService) Update(ctx context.Context, settings model.UserSettings) (model.UserSettings, error) {
	if _, ok := model.FastingMethodByID(settings.PreferredMethodID); !ok {
		return model.UserSettings{}, fmt.Errorf("%w: unknown preferred method %q", ErrInvalidSettings, settings.PreferredMethodID)
	}
	if settings.Units != "metric" && settings.Units != "imperial" {
		return model.UserSettings{}, fmt.Errorf("%w: units must be metric or imperial", ErrInvalidSettings)
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return model.UserSettings{}, err
	}

	s.logger.Info("user settings updated",
		zap.String("preferred_method", settings.PreferredMethodID),
		zap.Bool("notifications_enabled", settings.NotificationsEnabled),
	)

	return settings, nil
}
