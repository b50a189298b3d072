package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gerald999876/Fasting-Project/internal/store"
	"github.com/gerald999876/Fasting-Project/pkg/model"
	"go.uber.org/zap"
)

// SettingsRepository manages the single user settings record
type SettingsRepository struct {
	kv     store.KV
	logger *zap.Logger
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(kv store.KV, logger *zap.Logger) *SettingsRepository {
	return &SettingsRepository{
		kv:     kv,
		logger: logger,
	}
}

// Get returns the stored settings, falling back to defaults when the record
// is absent or unreadable
func (r *SettingsRepository) Get(ctx context.Context) (model.UserSettings, error) {
	data, err := r.kv.Get(ctx, store.KeyUserSettings)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.DefaultUserSettings(), nil
		}
		r.logger.Error("failed to load user settings", zap.Error(err))
		return model.DefaultUserSettings(), fmt.Errorf("failed to load user settings: %w", err)
	}

	var settings model.UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		r.logger.Warn("malformed user settings record, using defaults", zap.Error(err))
		return model.DefaultUserSettings(), nil
	}

	return settings, nil
}

// Save writes the settings record
func (r *SettingsRepository) Save(ctx context.Context, settings model.UserSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode user settings: %w", err)
	}

	if err := r.kv.Set(ctx, store.KeyUserSettings, data); err != nil {
		r.logger.Error("failed to save user settings", zap.Error(err))
		return fmt.Errorf("failed to save user settings: %w", err)
	}

	return nil
}
