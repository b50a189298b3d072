package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MemoryScheduler keeps pending notifications in memory so tests and the
// memory storage driver can inspect what would have been delivered
type MemoryScheduler struct {
	mu      sync.RWMutex
	pending []Notification
	logger  *zap.Logger
}

// NewMemoryScheduler creates a new MemoryScheduler
func NewMemoryScheduler(logger *zap.Logger) *MemoryScheduler {
	return &MemoryScheduler{
		logger: logger,
	}
}

var _ Scheduler = (*MemoryScheduler)(nil)

// Schedule records the notification and returns its generated ID
func (s *MemoryScheduler) Schedule(ctx context.Context, title, body string, triggerAt time.Time, channel string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := Notification{
		ID:        uuid.New().String(),
		Title:     title,
		Body:      body,
		TriggerAt: triggerAt,
		Channel:   channel,
	}
	s.pending = append(s.pending, n)

	if s.logger != nil {
		s.logger.Debug("notification recorded",
			zap.String("notification_id", n.ID),
			zap.Time("trigger_at", triggerAt),
		)
	}

	return n.ID, nil
}

// CancelAll drops every pending notification
func (s *MemoryScheduler) CancelAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	return nil
}

// Pending returns a snapshot of the recorded notifications
func (s *MemoryScheduler) Pending() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Notification, len(s.pending))
	copy(out, s.pending)
	return out
}
