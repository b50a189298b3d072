// Package timeutil holds the pure time calculations shared by the fasting
// lifecycle and the statistics engine. Everything here is a function of its
// arguments; callers pass the reference "now" explicitly.
package timeutil

import (
	"fmt"
	"time"
)

// FormatTimeRemaining renders the countdown from now until end with
// escalating granularity: seconds only under a minute, minutes and seconds
// under an hour, hours/minutes/seconds above. Clamps to "0s", never negative.
func FormatTimeRemaining(end, now time.Time) string {
	totalSeconds := int(end.Sub(now) / time.Second)
	if totalSeconds <= 0 {
		return "0s"
	}

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatDuration renders a minute count as "Nh Nm" or "Nm"
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// ProgressPercentage returns elapsed-over-total progress as an integer
// 0-100 at minute granularity. Returns 0 at or before start and 100 at or
// after end, regardless of how degenerate the interval is.
func ProgressPercentage(start, end, now time.Time) int {
	totalMinutes := int(end.Sub(start) / time.Minute)
	elapsedMinutes := int(now.Sub(start) / time.Minute)

	if elapsedMinutes <= 0 {
		return 0
	}
	if elapsedMinutes >= totalMinutes {
		return 100
	}

	return int(float64(elapsedMinutes)/float64(totalMinutes)*100 + 0.5)
}

// DayStart truncates t to midnight in its own location
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysBetween returns the number of calendar-day boundaries between a and b
// (b minus a). Negative when b precedes a. DST shifts are absorbed by
// rounding to the nearest whole day.
func DaysBetween(a, b time.Time) int {
	diff := DayStart(b).Sub(DayStart(a))
	days := diff.Hours() / 24
	if days >= 0 {
		return int(days + 0.5)
	}
	return -int(-days + 0.5)
}
