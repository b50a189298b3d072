package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gerald999876/Fasting-Project/internal/timeutil"
	"github.com/gerald999876/Fasting-Project/pkg/model"
	"go.uber.org/zap"
)

// TimeRange selects the bucketing window for the history series
type TimeRange string

const (
	TimeRangeWeek    TimeRange = "week"
	TimeRangeMonth   TimeRange = "month"
	TimeRangeQuarter TimeRange = "quarter"
)

// ParseTimeRange maps a query value to a TimeRange. "3months" is accepted
// as a legacy alias for quarter.
func ParseTimeRange(s string) (TimeRange, bool) {
	switch TimeRange(s) {
	case TimeRangeWeek, TimeRangeMonth, TimeRangeQuarter:
		return TimeRange(s), true
	case TimeRange("3months"):
		return TimeRangeQuarter, true
	}
	return "", false
}

// StatsSummary aggregates the completed session history
type StatsSummary struct {
	TotalFasts      int `json:"total_fasts"`
	CompletionRate  int `json:"completion_rate"`  // percent, rounded
	AverageDuration int `json:"average_duration"` // minutes
	TotalHours      int `json:"total_hours"`
	CurrentStreak   int `json:"current_streak"`
	LongestStreak   int `json:"longest_streak"`
}

// Series is a labelled bucket sequence for charts
type Series struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// StatsService derives statistics, streaks and chart series from the
// session history. Everything is recomputed on demand; nothing derived is
// persisted.
type StatsService struct {
	repo   SessionRepositoryInterface
	logger *zap.Logger
	now    func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(repo SessionRepositoryInterface, logger *zap.Logger) *StatsService {
	return &StatsService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// History returns the recorded sessions, newest first
func (s *StatsService) History(ctx context.Context) ([]model.FastingSession, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
	return sessions, nil
}

// Summary computes the aggregate statistics over the full history
func (s *StatsService) Summary(ctx context.Context) (StatsSummary, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return StatsSummary{}, fmt.Errorf("failed to load session history: %w", err)
	}
	return SummarizeSessions(sessions, s.now()), nil
}

// FrequencySeries returns fast counts bucketed over the given range
func (s *StatsService) FrequencySeries(ctx context.Context, r TimeRange) (Series, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return Series{}, fmt.Errorf("failed to load session history: %w", err)
	}
	return FrequencySeries(sessions, r, s.now()), nil
}

// DurationSeries returns average fast duration in hours bucketed over the
// given range
func (s *StatsService) DurationSeries(ctx context.Context, r TimeRange) (Series, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return Series{}, fmt.Errorf("failed to load session history: %w", err)
	}
	return DurationSeries(sessions, r, s.now()), nil
}

// MethodDistribution returns completed fast counts per method name
func (s *StatsService) MethodDistribution(ctx context.Context) (map[string]int, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}
	return MethodDistribution(sessions), nil
}

// SummarizeSessions computes the aggregate statistics for the given
// sessions relative to now. Pure; exposed for the property tests.
func SummarizeSessions(sessions []model.FastingSession, now time.Time) StatsSummary {
	completed := completedSessions(sessions)

	summary := StatsSummary{
		TotalFasts:    len(completed),
		CurrentStreak: CurrentStreak(completed, now),
		LongestStreak: LongestStreak(completed),
	}

	if len(sessions) > 0 {
		summary.CompletionRate = int(math.Round(float64(len(completed)) / float64(len(sessions)) * 100))
	}

	if len(completed) > 0 {
		totalMinutes := 0
		for _, s := range completed {
			totalMinutes += s.Duration
		}
		summary.AverageDuration = int(math.Round(float64(totalMinutes) / float64(len(completed))))
		summary.TotalHours = int(math.Round(float64(totalMinutes) / 60))
	}

	return summary
}

// CurrentStreak returns the length of the run of consecutive fasting days
// ending today or yesterday. A day counts once no matter how many fasts it
// holds; a last fast older than yesterday means the streak is broken and
// the result is 0.
func CurrentStreak(sessions []model.FastingSession, now time.Time) int {
	days := fastingDays(sessions, now.Location())
	if len(days) == 0 {
		return 0
	}

	today := timeutil.DayStart(now)
	yesterday := today.AddDate(0, 0, -1)

	last := days[len(days)-1]
	var anchor time.Time
	switch {
	case last.Equal(today):
		anchor = today
	case last.Equal(yesterday):
		anchor = yesterday
	default:
		return 0
	}

	streak := 0
	expected := anchor
	for i := len(days) - 1; i >= 0; i-- {
		if !days[i].Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak returns the longest run of consecutive fasting days
// anywhere in the history
func LongestStreak(sessions []model.FastingSession) int {
	days := fastingDays(sessions, time.Local)
	if len(days) == 0 {
		return 0
	}

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		if timeutil.DaysBetween(days[i-1], days[i]) == 1 {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}

// FrequencySeries buckets completed fast counts over the range: seven daily
// buckets for a week, four weekly buckets for a month, four monthly buckets
// for a quarter. Empty buckets stay at zero.
func FrequencySeries(sessions []model.FastingSession, r TimeRange, now time.Time) Series {
	completed := completedSessions(sessions)
	labels, windows := seriesBuckets(r, now)

	data := make([]int, len(windows))
	for _, s := range completed {
		for i, w := range windows {
			if w.contains(s.StartTime) {
				data[i]++
				break
			}
		}
	}

	return Series{Labels: labels, Data: data}
}

// DurationSeries buckets the average completed fast duration, in whole
// hours, over the same windows as FrequencySeries
func DurationSeries(sessions []model.FastingSession, r TimeRange, now time.Time) Series {
	completed := completedSessions(sessions)
	labels, windows := seriesBuckets(r, now)

	sums := make([]int, len(windows))
	counts := make([]int, len(windows))
	for _, s := range completed {
		for i, w := range windows {
			if w.contains(s.StartTime) {
				sums[i] += s.Duration
				counts[i]++
				break
			}
		}
	}

	data := make([]int, len(windows))
	for i := range windows {
		if counts[i] > 0 {
			data[i] = int(math.Round(float64(sums[i]) / float64(counts[i]) / 60))
		}
	}

	return Series{Labels: labels, Data: data}
}

// MethodDistribution counts completed fasts per method name
func MethodDistribution(sessions []model.FastingSession) map[string]int {
	dist := make(map[string]int)
	for _, s := range completedSessions(sessions) {
		dist[s.Method.Name]++
	}
	return dist
}

type bucketWindow struct {
	day        *time.Time // calendar-day bucket
	start, end time.Time  // half-open [start, end) otherwise
}

func (w bucketWindow) contains(t time.Time) bool {
	if w.day != nil {
		return timeutil.SameDay(t, *w.day)
	}
	return !t.Before(w.start) && t.Before(w.end)
}

func seriesBuckets(r TimeRange, now time.Time) ([]string, []bucketWindow) {
	switch r {
	case TimeRangeMonth:
		labels := []string{"W4", "W3", "W2", "W1"}
		windows := make([]bucketWindow, 4)
		for i := 0; i < 4; i++ {
			start := now.AddDate(0, 0, -(3-i)*7)
			windows[i] = bucketWindow{start: start, end: start.AddDate(0, 0, 7)}
		}
		return labels, windows

	case TimeRangeQuarter:
		labels := []string{"3mo", "2mo", "1mo", "Now"}
		windows := make([]bucketWindow, 4)
		for i := 0; i < 4; i++ {
			start := now.AddDate(0, -(3 - i), 0)
			windows[i] = bucketWindow{start: start, end: start.AddDate(0, 1, 0)}
		}
		return labels, windows

	default: // week
		labels := make([]string, 7)
		windows := make([]bucketWindow, 7)
		for i := 0; i < 7; i++ {
			day := timeutil.DayStart(now.AddDate(0, 0, -(6 - i)))
			labels[i] = fmt.Sprintf("%dd", 6-i)
			windows[i] = bucketWindow{day: &day}
		}
		labels[6] = "Today"
		return labels, windows
	}
}

// completedSessions filters to sessions that finished with a recorded
// duration
func completedSessions(sessions []model.FastingSession) []model.FastingSession {
	out := make([]model.FastingSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Completed && s.Duration > 0 {
			out = append(out, s)
		}
	}
	return out
}

// fastingDays returns the distinct calendar days holding at least one
// completed fast, ascending, normalised to loc
func fastingDays(sessions []model.FastingSession, loc *time.Location) []time.Time {
	seen := make(map[string]time.Time)
	for _, s := range completedSessions(sessions) {
		day := timeutil.DayStart(s.StartTime.In(loc))
		seen[day.Format("2006-01-02")] = day
	}

	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
