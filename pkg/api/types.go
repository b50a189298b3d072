// Package api holds the request/response types of the REST surface
package api

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
)

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// StartFastRequest starts a fasting session
type StartFastRequest struct {
	MethodID string `json:"method_id" binding:"required"`
}

// HealthMetricsRequest records the daily health metrics
type HealthMetricsRequest struct {
	Date         *types.Date `json:"date,omitempty"`
	Weight       *float64    `json:"weight,omitempty"`
	WaterIntake  int         `json:"water_intake"`
	EnergyLevel  int         `json:"energy_level" binding:"required"`
	Mood         int         `json:"mood" binding:"required"`
	SleepQuality int         `json:"sleep_quality" binding:"required"`
}

// HealthMetricsResponse is a stored daily metrics record
type HealthMetricsResponse struct {
	ID           string     `json:"id"`
	Date         types.Date `json:"date"`
	Weight       *float64   `json:"weight,omitempty"`
	WaterIntake  int        `json:"water_intake"`
	EnergyLevel  int        `json:"energy_level"`
	Mood         int        `json:"mood"`
	SleepQuality int        `json:"sleep_quality"`
}

// JournalEntryRequest creates or updates a journal entry
type JournalEntryRequest struct {
	Date    *time.Time `json:"date,omitempty"`
	Title   string     `json:"title" binding:"required"`
	Content string     `json:"content"`
	Mood    string     `json:"mood" binding:"required"`
	Tags    []string   `json:"tags,omitempty"`
}

// SettingsRequest replaces the user settings record
type SettingsRequest struct {
	PreferredMethodID    string     `json:"preferred_method_id" binding:"required"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	Units                string     `json:"units" binding:"required"`
	IsPremium            bool       `json:"is_premium"`
	PremiumExpiryDate    *time.Time `json:"premium_expiry_date,omitempty"`
}

// SeriesResponse is a labelled chart series
type SeriesResponse struct {
	Range  string   `json:"range"`
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}
