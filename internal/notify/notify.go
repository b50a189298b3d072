// Package notify defines the reminder notification collaborator. Delivery
// belongs to the mobile client; the backend only records scheduling intent,
// and every call from the fasting service is best-effort.
package notify

import (
	"context"
	"time"
)

// ChannelFastingReminders is the channel used for fasting reminders
const ChannelFastingReminders = "fasting-reminders"

// Notification is a reminder scheduled for a future point in time
type Notification struct {
	ID        string
	Title     string
	Body      string
	TriggerAt time.Time
	Channel   string
}

// Scheduler schedules and cancels reminder notifications
type Scheduler interface {
	// Schedule registers a notification and returns its ID. Implementations
	// may return an empty ID with a nil error when scheduling is unavailable.
	Schedule(ctx context.Context, title, body string, triggerAt time.Time, channel string) (string, error)

	// CancelAll cancels every pending notification
	CancelAll(ctx context.Context) error
}
