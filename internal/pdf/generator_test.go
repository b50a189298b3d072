package pdf

import (
	"testing"
	"time"

	"github.com/gerald999876/Fasting-Project/internal/service"
	"github.com/gerald999876/Fasting-Project/pkg/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPDFGenerator_Generate_Success(t *testing.T) {
	// Arrange
	logger := zap.NewNop()
	generator := NewPDFGenerator(logger)

	method, _ := model.FastingMethodByID("16_8")
	start := time.Date(2025, 6, 9, 20, 0, 0, 0, time.UTC)

	reportData := &service.ReportData{
		GeneratedAt: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		Summary: service.StatsSummary{
			TotalFasts:      12,
			CompletionRate:  83,
			AverageDuration: 930,
			TotalHours:      186,
			CurrentStreak:   4,
			LongestStreak:   7,
		},
		MethodDistribution: map[string]int{
			"16_8": 9,
			"18_6": 3,
		},
		Achievements: []model.Achievement{
			{
				ID:          "first_fast",
				Title:       "First Steps",
				Description: "Complete your first fast",
				Category:    model.AchievementCategoryMilestone,
				Unlocked:    true,
				Progress:    1,
				MaxProgress: 1,
			},
			{
				ID:          "streak_7",
				Title:       "Week Warrior",
				Description: "Maintain a 7-day fasting streak",
				Category:    model.AchievementCategoryStreak,
				Unlocked:    false,
				Progress:    4,
				MaxProgress: 7,
			},
		},
		RecentSessions: []model.FastingSession{
			{
				ID:        "session-1",
				Method:    method,
				StartTime: start,
				EndTime:   start.Add(16 * time.Hour),
				Completed: true,
				Duration:  960,
			},
		},
	}

	// Act
	pdfBytes, err := generator.Generate(reportData)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, pdfBytes)
	assert.Greater(t, len(pdfBytes), 0, "PDF should have content")

	// PDF files start with %PDF
	assert.Equal(t, "%PDF", string(pdfBytes[:4]), "Should be a valid PDF file")
}

func TestPDFGenerator_Generate_EmptyData(t *testing.T) {
	// Arrange
	logger := zap.NewNop()
	generator := NewPDFGenerator(logger)

	reportData := &service.ReportData{
		GeneratedAt:        time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		Summary:            service.StatsSummary{},
		MethodDistribution: map[string]int{},
		Achievements:       []model.Achievement{},
		RecentSessions:     []model.FastingSession{},
	}

	// Act
	pdfBytes, err := generator.Generate(reportData)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, pdfBytes)
	assert.Greater(t, len(pdfBytes), 0, "PDF should have content even with empty data")

	// PDF files start with %PDF
	assert.Equal(t, "%PDF", string(pdfBytes[:4]), "Should be a valid PDF file")
}

func TestPDFGenerator_Generate_ManySessionsCapped(t *testing.T) {
	// Arrange
	logger := zap.NewNop()
	generator := NewPDFGenerator(logger)

	method, _ := model.FastingMethodByID("18_6")
	sessions := make([]model.FastingSession, 0, 40)
	for i := 0; i < 40; i++ {
		start := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC).AddDate(0, 0, -i)
		sessions = append(sessions, model.FastingSession{
			ID:        "session",
			Method:    method,
			StartTime: start,
			EndTime:   start.Add(18 * time.Hour),
			Completed: true,
			Duration:  1080,
		})
	}

	reportData := &service.ReportData{
		GeneratedAt:        time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		Summary:            service.StatsSummary{TotalFasts: 40, CompletionRate: 100},
		MethodDistribution: map[string]int{"18_6": 40},
		Achievements:       []model.Achievement{},
		RecentSessions:     sessions,
	}

	// Act
	pdfBytes, err := generator.Generate(reportData)

	// Assert
	assert.NoError(t, err)
	assert.Greater(t, len(pdfBytes), 0, "PDF should have content")
	assert.Equal(t, "%PDF", string(pdfBytes[:4]), "Should be a valid PDF file")
}
