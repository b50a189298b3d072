package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gerald999876/Fasting-Project/pkg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidMetrics is returned when a health metrics record fails validation
var ErrInvalidMetrics = errors.New("invalid health metrics")

// HealthMetricsRepositoryInterface defines the metrics data access the
// health service depends on
type HealthMetricsRepositoryInterface interface {
	List(ctx context.Context) ([]model.HealthMetrics, error)
	Upsert(ctx context.Context, metrics model.HealthMetrics) error
}

// HealthService validates and records the daily health metrics
type HealthService struct {
	repo   HealthMetricsRepositoryInterface
	logger *zap.Logger
	now    func() time.Time
}

// NewHealthService creates a new HealthService
func NewHealthService(repo HealthMetricsRepositoryInterface, logger *zap.Logger) *HealthService {
	return &HealthService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// History returns all recorded metrics, newest first
func (s *HealthService) History(ctx context.Context) ([]model.HealthMetrics, error) {
	return s.repo.List(ctx)
}

// Record validates and upserts a daily metrics record. A record already
// stored for the same calendar day is replaced; its ID is preserved only if
// the caller supplied one, otherwise a fresh ID is assigned.
func (s *HealthService) Record(ctx context.Context, metrics model.HealthMetrics) (model.HealthMetrics, error) {
	if err := validateMetrics(metrics); err != nil {
		return model.HealthMetrics{}, err
	}

	if metrics.ID == "" {
		metrics.ID = uuid.New().String()
	}
	if metrics.Date.IsZero() {
		metrics.Date = s.now()
	}

	if err := s.repo.Upsert(ctx, metrics); err != nil {
		return model.HealthMetrics{}, fmt.Errorf("failed to record health metrics: %w", err)
	}

	s.logger.Info("health metrics recorded",
		zap.String("metrics_id", metrics.ID),
		zap.Time("date", metrics.Date),
	)

	return metrics, nil
}

func validateMetrics(m model.HealthMetrics) error {
	if m.WaterIntake < 0 {
		return fmt.Errorf("%w: water intake must not be negative", ErrInvalidMetrics)
	}
	if m.Weight != nil && *m.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidMetrics)
	}
	for _, scale := range []struct {
		name  string
		value int
	}{
		{"energy level", m.EnergyLevel},
		{"mood", m.Mood},
		{"sleep quality", m.SleepQuality},
	} {
		if scale.value < 1 || scale.value > 5 {
			return fmt.Errorf("%w: %s must be between 1 and 5", ErrInvalidMetrics, scale.name)
		}
	}
	return nil
}
