package service

import (
	"reflect"
	"testing"
	"time"

	"github.com/gerald999876/Fasting-Project/pkg/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genSessions builds random session histories: each element is (hours
// before now, duration minutes, completed)
func genSessions(now time.Time) gopter.Gen {
	return gen.SliceOf(gen.Struct(reflect.TypeOf(sessionSeed{}), map[string]gopter.Gen{
		"HoursAgo":  gen.IntRange(0, 24*120),
		"Duration":  gen.IntRange(0, 24*60),
		"Completed": gen.Bool(),
	})).Map(func(seeds []sessionSeed) []model.FastingSession {
		sessions := make([]model.FastingSession, 0, len(seeds))
		for _, seed := range seeds {
			start := now.Add(-time.Duration(seed.HoursAgo) * time.Hour)
			sessions = append(sessions, model.FastingSession{
				ID:        "prop",
				Method:    model.DefaultFastingMethod(),
				StartTime: start,
				EndTime:   start.Add(time.Duration(seed.Duration) * time.Minute),
				Completed: seed.Completed,
				Duration:  seed.Duration,
			})
		}
		return sessions
	})
}

type sessionSeed struct {
	HoursAgo  int
	Duration  int
	Completed bool
}

func TestProperty_SummaryInvariants(t *testing.T) {
	now := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Completion rate stays within 0-100 and counts never exceed history", prop.ForAll(
		func(sessions []model.FastingSession) bool {
			summary := SummarizeSessions(sessions, now)

			if summary.CompletionRate < 0 || summary.CompletionRate > 100 {
				return false
			}
			if summary.TotalFasts > len(sessions) {
				return false
			}
			return summary.TotalFasts >= 0 && summary.TotalHours >= 0 && summary.AverageDuration >= 0
		},
		genSessions(now),
	))

	properties.Property("Longest streak is never shorter than the current streak", prop.ForAll(
		func(sessions []model.FastingSession) bool {
			return LongestStreak(sessions) >= CurrentStreak(sessions, now)
		},
		genSessions(now),
	))

	properties.Property("Streaks never exceed the number of distinct fasting days", prop.ForAll(
		func(sessions []model.FastingSession) bool {
			days := make(map[string]bool)
			for _, s := range sessions {
				if s.Completed && s.Duration > 0 {
					days[s.StartTime.In(now.Location()).Format("2006-01-02")] = true
				}
			}
			return LongestStreak(sessions) <= len(days) && CurrentStreak(sessions, now) <= len(days)
		},
		genSessions(now),
	))

	properties.TestingRun(t)
}

func TestProperty_SeriesInvariants(t *testing.T) {
	now := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	ranges := []TimeRange{TimeRangeWeek, TimeRangeMonth, TimeRangeQuarter}

	properties.Property("Series are zero-filled with one value per label", prop.ForAll(
		func(sessions []model.FastingSession, rngIdx int) bool {
			rng := ranges[rngIdx%len(ranges)]

			freq := FrequencySeries(sessions, rng, now)
			dur := DurationSeries(sessions, rng, now)

			if len(freq.Labels) != len(freq.Data) || len(dur.Labels) != len(dur.Data) {
				return false
			}

			total := 0
			for _, v := range freq.Data {
				if v < 0 {
					return false
				}
				total += v
			}
			for _, v := range dur.Data {
				if v < 0 {
					return false
				}
			}
			return total <= len(sessions)
		},
		genSessions(now),
		gen.IntRange(0, len(ranges)-1),
	))

	properties.TestingRun(t)
}

func TestProperty_AchievementInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Progress is clamped to the threshold and unlock agrees with it", prop.ForAll(
		func(totalFasts, totalHours, currentStreak int, isPremium bool) bool {
			summary := StatsSummary{
				TotalFasts:    totalFasts,
				TotalHours:    totalHours,
				CurrentStreak: currentStreak,
			}

			achievements := EvaluateAchievements(summary, isPremium)
			if len(achievements) != len(achievementCatalog) {
				return false
			}

			for _, a := range achievements {
				if a.Progress < 0 || a.Progress > a.MaxProgress {
					return false
				}
				if a.Unlocked != (a.Progress == a.MaxProgress) {
					return false
				}
				if a.PremiumLocked && (!a.IsPremium || isPremium) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 500),
		gen.IntRange(0, 5000),
		gen.IntRange(0, 100),
		gen.Bool(),
	))

	properties.Property("Premium flags never change unlock state", prop.ForAll(
		func(totalFasts, totalHours, currentStreak int) bool {
			summary := StatsSummary{
				TotalFasts:    totalFasts,
				TotalHours:    totalHours,
				CurrentStreak: currentStreak,
			}

			free := EvaluateAchievements(summary, false)
			premium := EvaluateAchievements(summary, true)

			for i := range free {
				if free[i].Unlocked != premium[i].Unlocked || free[i].Progress != premium[i].Progress {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 500),
		gen.IntRange(0, 5000),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
