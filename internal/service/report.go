package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gerald999876/Fasting-Project/pkg/model"
	"go.uber.org/zap"
)

// ErrPremiumRequired is returned when a premium-gated feature is requested
// without an entitlement
var ErrPremiumRequired = errors.New("premium subscription required")

// ReportData contains everything a progress report renders
type ReportData struct {
	GeneratedAt        time.Time
	Summary            StatsSummary
	MethodDistribution map[string]int
	Achievements       []model.Achievement
	RecentSessions     []model.FastingSession
}

// ProgressReportGenerator renders a report document from the assembled data
type ProgressReportGenerator interface {
	Generate(data *ReportData) ([]byte, error)
}

// ReportService assembles the progress report from the statistics engine
// and the achievement evaluator. Export is premium-gated.
type ReportService struct {
	stats        *StatsService
	achievements *AchievementService
	entitlement  *EntitlementService
	generator    ProgressReportGenerator
	logger       *zap.Logger
	now          func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	stats *StatsService,
	achievements *AchievementService,
	entitlement *EntitlementService,
	generator ProgressReportGenerator,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		stats:        stats,
		achievements: achievements,
		entitlement:  entitlement,
		generator:    generator,
		logger:       logger,
		now:          time.Now,
	}
}

// ProgressReport builds and renders the progress report
func (s *ReportService) ProgressReport(ctx context.Context) ([]byte, error) {
	isPremium, err := s.entitlement.IsPremium(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entitlement: %w", err)
	}
	if !isPremium {
		return nil, ErrPremiumRequired
	}

	summary, err := s.stats.Summary(ctx)
	if err != nil {
		return nil, err
	}

	distribution, err := s.stats.MethodDistribution(ctx)
	if err != nil {
		return nil, err
	}

	achievements, err := s.achievements.List(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := s.stats.History(ctx)
	if err != nil {
		return nil, err
	}

	report, err := s.generator.Generate(&ReportData{
		GeneratedAt:        s.now(),
		Summary:            summary,
		MethodDistribution: distribution,
		Achievements:       achievements,
		RecentSessions:     sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render progress report: %w", err)
	}

	s.logger.Info("progress report generated", zap.Int("size_bytes", len(report)))
	return report, nil
}
