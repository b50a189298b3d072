package service

import (
	"testing"
	"time"

	"github.com/gerald999876/Fasting-Project/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var statsNow = time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)

func completedFast(start time.Time, durationMinutes int) model.FastingSession {
	return model.FastingSession{
		ID:        "test-" + start.Format("20060102150405"),
		Method:    model.DefaultFastingMethod(),
		StartTime: start,
		EndTime:   start.Add(time.Duration(durationMinutes) * time.Minute),
		Completed: true,
		Duration:  durationMinutes,
	}
}

func abandonedFast(start time.Time) model.FastingSession {
	s := completedFast(start, 0)
	s.Completed = false
	return s
}

func TestSummarizeSessions_Empty(t *testing.T) {
	summary := SummarizeSessions(nil, statsNow)

	assert.Equal(t, StatsSummary{}, summary)
}

func TestSummarizeSessions_Aggregates(t *testing.T) {
	sessions := []model.FastingSession{
		completedFast(statsNow.Add(-26*time.Hour), 960),
		completedFast(statsNow.Add(-2*time.Hour), 480),
		abandonedFast(statsNow.Add(-50 * time.Hour)),
	}

	summary := SummarizeSessions(sessions, statsNow)

	assert.Equal(t, 2, summary.TotalFasts)
	assert.Equal(t, 67, summary.CompletionRate) // 2 of 3, rounded
	assert.Equal(t, 720, summary.AverageDuration)
	assert.Equal(t, 24, summary.TotalHours)
}

func TestSummarizeSessions_AverageDurationRoundsToNearestMinute(t *testing.T) {
	sessions := []model.FastingSession{
		completedFast(statsNow.Add(-26*time.Hour), 90),
		completedFast(statsNow.Add(-2*time.Hour), 91),
	}

	summary := SummarizeSessions(sessions, statsNow)

	// mean 90.5 rounds up, not truncates
	assert.Equal(t, 91, summary.AverageDuration)
}

func TestCurrentStreak_AnchoredOnToday(t *testing.T) {
	sessions := []model.FastingSession{
		completedFast(statsNow.AddDate(0, 0, -2), 960),
		completedFast(statsNow.AddDate(0, 0, -1), 960),
		completedFast(statsNow, 960),
	}

	assert.Equal(t, 3, CurrentStreak(sessions, statsNow))
}

func TestCurrentStreak_AnchoredOnYesterday(t *testing.T) {
	// No fast yet today; yesterday's fast keeps the streak alive
	sessions := []model.FastingSession{
		completedFast(statsNow.AddDate(0, 0, -2), 960),
		completedFast(statsNow.AddDate(0, 0, -1), 960),
	}

	assert.Equal(t, 2, CurrentStreak(sessions, statsNow))
}

func TestCurrentStreak_BrokenWhenLastFastTooOld(t *testing.T) {
	sessions := []model.FastingSession{
		completedFast(statsNow.AddDate(0, 0, -4), 960),
		completedFast(statsNow.AddDate(0, 0, -3), 960),
		completedFast(statsNow.AddDate(0, 0, -2), 960),
	}

	assert.Equal(t, 0, CurrentStreak(sessions, statsNow))
}

func TestCurrentStreak_MultipleFastsPerDayCountOnce(t *testing.T) {
	sessions := []model.FastingSession{
		completedFast(statsNow.AddDate(0, 0, -1), 480),
		completedFast(statsNow.AddDate(0, 0, -1).Add(-10*time.Hour), 240),
		completedFast(statsNow, 480),
		completedFast(statsNow.Add(-5*time.Hour), 120),
	}

	assert.Equal(t, 2, CurrentStreak(sessions, statsNow))
}

func TestCurrentStreak_IncompleteSessionsIgnored(t *testing.T) {
	sessions := []model.FastingSession{
		completedFast(statsNow.AddDate(0, 0, -1), 960),
		abandonedFast(statsNow),
	}

	assert.Equal(t, 1, CurrentStreak(sessions, statsNow))
}

func TestLongestStreak_GapResets(t *testing.T) {
	// Five fasting days with a gap: 10,9,8 then 5,4 days ago
	var sessions []model.FastingSession
	for _, offset := range []int{-10, -9, -8, -5, -4} {
		sessions = append(sessions, completedFast(statsNow.AddDate(0, 0, offset), 960))
	}

	assert.Equal(t, 3, LongestStreak(sessions))
	assert.Equal(t, 0, CurrentStreak(sessions, statsNow))
}

func TestLongestStreak_AtLeastCurrent(t *testing.T) {
	sessions := []model.FastingSession{
		completedFast(statsNow.AddDate(0, 0, -1), 960),
		completedFast(statsNow, 960),
	}

	current := CurrentStreak(sessions, statsNow)
	longest := LongestStreak(sessions)
	assert.GreaterOrEqual(t, longest, current)
	assert.Equal(t, 2, longest)
}

func TestFrequencySeries_Week(t *testing.T) {
	sessions := []model.FastingSession{
		completedFast(statsNow.Add(-2*time.Hour), 480),
		completedFast(statsNow.AddDate(0, 0, -3), 960),
		completedFast(statsNow.AddDate(0, 0, -3).Add(-6*time.Hour), 480),
		completedFast(statsNow.AddDate(0, 0, -30), 960), // outside the window
		abandonedFast(statsNow),                         // not completed
	}

	series := FrequencySeries(sessions, TimeRangeWeek, statsNow)

	require.Equal(t, []string{"6d", "5d", "4d", "3d", "2d", "1d", "Today"}, series.Labels)
	assert.Equal(t, []int{0, 0, 0, 2, 0, 0, 1}, series.Data)
}

func TestFrequencySeries_MonthBucketCount(t *testing.T) {
	series := FrequencySeries(nil, TimeRangeMonth, statsNow)

	assert.Equal(t, []string{"W4", "W3", "W2", "W1"}, series.Labels)
	assert.Equal(t, []int{0, 0, 0, 0}, series.Data)
}

func TestFrequencySeries_QuarterBucketCount(t *testing.T) {
	series := FrequencySeries(nil, TimeRangeQuarter, statsNow)

	assert.Equal(t, []string{"3mo", "2mo", "1mo", "Now"}, series.Labels)
	assert.Equal(t, []int{0, 0, 0, 0}, series.Data)
}

func TestDurationSeries_WeekAverages(t *testing.T) {
	sessions := []model.FastingSession{
		completedFast(statsNow.AddDate(0, 0, -3), 960),                    // 16h
		completedFast(statsNow.AddDate(0, 0, -3).Add(-8*time.Hour), 480),  // 8h, same day
		completedFast(statsNow.Add(-time.Hour), 1080),                     // 18h today
	}

	series := DurationSeries(sessions, TimeRangeWeek, statsNow)

	// Average of 16h and 8h is 12h; empty buckets stay zero
	assert.Equal(t, []int{0, 0, 0, 12, 0, 0, 18}, series.Data)
}

func TestMethodDistribution(t *testing.T) {
	omad, ok := model.FastingMethodByID("omad")
	require.True(t, ok)

	a := completedFast(statsNow, 960)
	b := completedFast(statsNow.Add(-24*time.Hour), 960)
	c := completedFast(statsNow.Add(-48*time.Hour), 1380)
	c.Method = omad

	dist := MethodDistribution([]model.FastingSession{a, b, c})

	assert.Equal(t, map[string]int{
		model.DefaultFastingMethod().Name: 2,
		omad.Name:                         1,
	}, dist)
}

func TestParseTimeRange(t *testing.T) {
	for raw, want := range map[string]TimeRange{
		"week":    TimeRangeWeek,
		"month":   TimeRangeMonth,
		"quarter": TimeRangeQuarter,
		"3months": TimeRangeQuarter,
	} {
		got, ok := ParseTimeRange(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got)
	}

	_, ok := ParseTimeRange("year")
	assert.False(t, ok)
}
