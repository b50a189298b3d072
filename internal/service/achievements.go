package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gerald999876/Fasting-Project/pkg/model"
	"go.uber.org/zap"
)

// achievementMetric selects which summary figure an achievement tracks
type achievementMetric int

const (
	metricTotalFasts achievementMetric = iota
	metricCurrentStreak
	metricTotalHours
)

type achievementDef struct {
	id          string
	title       string
	description string
	category    model.AchievementCategory
	metric      achievementMetric
	threshold   int
	premium     bool
}

// achievementCatalog is the fixed milestone catalog, in display order.
// Progress is always recomputed from the session history, never stored.
var achievementCatalog = []achievementDef{
	{"first_fast", "First Steps", "Complete your first fast", model.AchievementCategoryMilestone, metricTotalFasts, 1, false},
	{"streak_3", "Getting Started", "Maintain a 3-day streak", model.AchievementCategoryStreak, metricCurrentStreak, 3, false},
	{"streak_7", "Week Warrior", "Maintain a 7-day streak", model.AchievementCategoryStreak, metricCurrentStreak, 7, false},
	{"streak_30", "Monthly Master", "Maintain a 30-day streak", model.AchievementCategoryStreak, metricCurrentStreak, 30, true},
	{"hours_24", "Day One", "Fast for 24 total hours", model.AchievementCategoryDuration, metricTotalHours, 24, false},
	{"hours_100", "Century Club", "Fast for 100 total hours", model.AchievementCategoryDuration, metricTotalHours, 100, false},
	{"hours_500", "Time Master", "Fast for 500 total hours", model.AchievementCategoryDuration, metricTotalHours, 500, true},
	{"hours_1000", "Fasting Legend", "Fast for 1000 total hours", model.AchievementCategoryDuration, metricTotalHours, 1000, true},
	{"fasts_5", "Getting the Hang of It", "Complete 5 fasts", model.AchievementCategoryConsistency, metricTotalFasts, 5, false},
	{"fasts_10", "Dedicated Faster", "Complete 10 fasts", model.AchievementCategoryConsistency, metricTotalFasts, 10, false},
	{"fasts_25", "Fasting Enthusiast", "Complete 25 fasts", model.AchievementCategoryConsistency, metricTotalFasts, 25, false},
	{"fasts_50", "Fasting Pro", "Complete 50 fasts", model.AchievementCategoryConsistency, metricTotalFasts, 50, true},
	{"fasts_100", "Fasting Legend", "Complete 100 fasts", model.AchievementCategoryConsistency, metricTotalFasts, 100, true},
}

// AchievementService evaluates the milestone catalog against the session
// history and the user's premium entitlement
type AchievementService struct {
	repo        SessionRepositoryInterface
	entitlement *EntitlementService
	logger      *zap.Logger
	now         func() time.Time
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(repo SessionRepositoryInterface, entitlement *EntitlementService, logger *zap.Logger) *AchievementService {
	return &AchievementService{
		repo:        repo,
		entitlement: entitlement,
		logger:      logger,
		now:         time.Now,
	}
}

// List evaluates every achievement in the catalog
func (s *AchievementService) List(ctx context.Context) ([]model.Achievement, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}

	isPremium, err := s.entitlement.IsPremium(ctx)
	if err != nil {
		s.logger.Warn("failed to resolve premium entitlement, treating as free", zap.Error(err))
		isPremium = false
	}

	return EvaluateAchievements(SummarizeSessions(sessions, s.now()), isPremium), nil
}

// EvaluateAchievements joins the static catalog with computed progress.
// Premium-flagged achievements still track progress for free users; the
// PremiumLocked flag only gates how the client displays them. Pure; exposed
// for the property tests.
func EvaluateAchievements(summary StatsSummary, isPremium bool) []model.Achievement {
	out := make([]model.Achievement, 0, len(achievementCatalog))
	for _, def := range achievementCatalog {
		var metric int
		switch def.metric {
		case metricCurrentStreak:
			metric = summary.CurrentStreak
		case metricTotalHours:
			metric = summary.TotalHours
		default:
			metric = summary.TotalFasts
		}

		progress := metric
		if progress > def.threshold {
			progress = def.threshold
		}

		out = append(out, model.Achievement{
			ID:            def.id,
			Title:         def.title,
			Description:   def.description,
			Category:      def.category,
			Unlocked:      metric >= def.threshold,
			Progress:      progress,
			MaxProgress:   def.threshold,
			IsPremium:     def.premium,
			PremiumLocked: def.premium && !isPremium,
		})
	}
	return out
}
