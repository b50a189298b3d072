package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogScheduler logs scheduling requests without delivering anything.
// Used when no push transport is configured.
type LogScheduler struct {
	logger *zap.Logger
}

// NewLogScheduler creates a new LogScheduler
func NewLogScheduler(logger *zap.Logger) *LogScheduler {
	return &LogScheduler{
		logger: logger,
	}
}

var _ Scheduler = (*LogScheduler)(nil)

// Schedule logs the notification and returns a generated ID
func (s *LogScheduler) Schedule(ctx context.Context, title, body string, triggerAt time.Time, channel string) (string, error) {
	id := uuid.New().String()

	s.logger.Info("notification scheduled",
		zap.String("notification_id", id),
		zap.String("title", title),
		zap.Time("trigger_at", triggerAt),
		zap.String("channel", channel),
	)

	return id, nil
}

// CancelAll logs the cancellation request
func (s *LogScheduler) CancelAll(ctx context.Context) error {
	s.logger.Info("all pending notifications cancelled")
	return nil
}
