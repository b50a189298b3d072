package service

import (
	"context"
	"time"

	"github.com/gerald999876/Fasting-Project/pkg/model"
	"go.uber.org/zap"
)

// SettingsRepositoryInterface defines the settings access the services
// depend on
type SettingsRepositoryInterface interface {
	Get(ctx context.Context) (model.UserSettings, error)
	Save(ctx context.Context, settings model.UserSettings) error
}

// EntitlementService resolves the premium entitlement from the persisted
// user settings. It only gates display and export; unlock math never
// consults it.
type EntitlementService struct {
	repo   SettingsRepositoryInterface
	logger *zap.Logger
	now    func() time.Time
}

// NewEntitlementService creates a new EntitlementService
func NewEntitlementService(repo SettingsRepositoryInterface, logger *zap.Logger) *EntitlementService {
	return &EntitlementService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// IsPremium reports whether the user currently holds a premium entitlement.
// An expired entitlement counts as free; any read error counts as free.
func (s *EntitlementService) IsPremium(ctx context.Context) (bool, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Warn("failed to read settings for entitlement check", zap.Error(err))
		return false, err
	}

	if !settings.IsPremium {
		return false, nil
	}
	if settings.PremiumExpiryDate != nil && settings.PremiumExpiryDate.Before(s.now()) {
		return false, nil
	}
	return true, nil
}
