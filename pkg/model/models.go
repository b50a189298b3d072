package model

import "time"

// FastingMethod is an immutable catalog entry describing a fasting protocol
type FastingMethod struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FastingHours int    `json:"fasting_hours"`
	EatingHours  int    `json:"eating_hours"`
	Description  string `json:"description"`
}

// FastingSession represents a completed or in-progress fast.
// Method is a snapshot taken at session start, not a live catalog reference,
// so later catalog edits never alter historical sessions.
type FastingSession struct {
	ID        string        `json:"id"`
	Method    FastingMethod `json:"method"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Completed bool          `json:"completed"`
	Duration  int           `json:"duration"` // minutes; planned at creation, actual once completed
}

// FastingState is the persisted active-session slot. At most one session
// has Completed == false at any time; this record mirrors it for fast lookup.
type FastingState struct {
	IsActive       bool            `json:"is_active"`
	CurrentSession *FastingSession `json:"current_session,omitempty"`
	StartTime      *time.Time      `json:"start_time,omitempty"`
	EndTime        *time.Time      `json:"end_time,omitempty"`
	Method         FastingMethod   `json:"method"`
}

// HealthMetrics is one record per calendar day
type HealthMetrics struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Weight       *float64  `json:"weight,omitempty"` // kg
	WaterIntake  int       `json:"water_intake"`     // ml
	EnergyLevel  int       `json:"energy_level"`     // 1-5 scale
	Mood         int       `json:"mood"`             // 1-5 scale
	SleepQuality int       `json:"sleep_quality"`    // 1-5 scale
}

// JournalMood is the enumerated mood of a journal entry
type JournalMood string

const (
	JournalMoodGreat    JournalMood = "great"
	JournalMoodGood     JournalMood = "good"
	JournalMoodOkay     JournalMood = "okay"
	JournalMoodBad      JournalMood = "bad"
	JournalMoodTerrible JournalMood = "terrible"
)

// ValidJournalMood reports whether m is one of the five enumerated moods
func ValidJournalMood(m JournalMood) bool {
	switch m {
	case JournalMoodGreat, JournalMoodGood, JournalMoodOkay, JournalMoodBad, JournalMoodTerrible:
		return true
	}
	return false
}

// JournalEntry represents a dated journal note
type JournalEntry struct {
	ID      string      `json:"id"`
	Date    time.Time   `json:"date"`
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Mood    JournalMood `json:"mood"`
	Tags    []string    `json:"tags"`
}

// UserSettings is the single persisted settings record
type UserSettings struct {
	PreferredMethodID    string     `json:"preferred_method_id"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	Units                string     `json:"units"` // metric or imperial
	IsPremium            bool       `json:"is_premium"`
	PremiumExpiryDate    *time.Time `json:"premium_expiry_date,omitempty"`
}

// DefaultUserSettings returns the settings applied when no record exists
// or the stored record is unreadable
func DefaultUserSettings() UserSettings {
	return UserSettings{
		PreferredMethodID:    DefaultFastingMethod().ID,
		NotificationsEnabled: true,
		Units:                "metric",
		IsPremium:            false,
	}
}

// AchievementCategory groups achievements for display
type AchievementCategory string

const (
	AchievementCategoryStreak      AchievementCategory = "streak"
	AchievementCategoryDuration    AchievementCategory = "duration"
	AchievementCategoryConsistency AchievementCategory = "consistency"
	AchievementCategoryMilestone   AchievementCategory = "milestone"
)

// Achievement is a static milestone definition joined at read time with
// computed progress. Never persisted; always recomputed from session history.
type Achievement struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Category      AchievementCategory `json:"category"`
	Unlocked      bool                `json:"unlocked"`
	Progress      int                 `json:"progress"`
	MaxProgress   int                 `json:"max_progress"`
	IsPremium     bool                `json:"is_premium"`
	PremiumLocked bool                `json:"premium_locked"`
}
