package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/gerald999876/Fasting-Project/internal/store"
	"github.com/gerald999876/Fasting-Project/internal/timeutil"
	"github.com/gerald999876/Fasting-Project/pkg/model"
	"go.uber.org/zap"
)

// HealthMetricsRepository manages the daily health metrics records
type HealthMetricsRepository struct {
	kv     store.KV
	logger *zap.Logger
}

// NewHealthMetricsRepository creates a new HealthMetricsRepository
func NewHealthMetricsRepository(kv store.KV, logger *zap.Logger) *HealthMetricsRepository {
	return &HealthMetricsRepository{
		kv:     kv,
		logger: logger,
	}
}

// List returns all health metrics records sorted by date descending
func (r *HealthMetricsRepository) List(ctx context.Context) ([]model.HealthMetrics, error) {
	data, err := r.kv.Get(ctx, store.KeyHealthMetrics)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []model.HealthMetrics{}, nil
		}
		r.logger.Error("failed to load health metrics", zap.Error(err))
		return nil, fmt.Errorf("failed to load health metrics: %w", err)
	}

	var metrics []model.HealthMetrics
	if err := json.Unmarshal(data, &metrics); err != nil {
		r.logger.Warn("malformed health metrics record, treating as empty", zap.Error(err))
		return []model.HealthMetrics{}, nil
	}

	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Date.After(metrics[j].Date)
	})

	return metrics, nil
}

// Upsert writes a metrics record, replacing any existing record for the
// same calendar day. At most one record per date.
func (r *HealthMetricsRepository) Upsert(ctx context.Context, metrics model.HealthMetrics) error {
	existing, err := r.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range existing {
		if timeutil.SameDay(existing[i].Date, metrics.Date) {
			existing[i] = metrics
			replaced = true
			break
		}
	}
	if !replaced {
		existing = append(existing, metrics)
	}

	data, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("failed to encode health metrics: %w", err)
	}

	if err := r.kv.Set(ctx, store.KeyHealthMetrics, data); err != nil {
		r.logger.Error("failed to save health metrics",
			zap.Error(err),
			zap.String("metrics_id", metrics.ID),
		)
		return fmt.Errorf("failed to save health metrics: %w", err)
	}

	return nil
}
