package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/gerald999876/Fasting-Project/internal/notify"
	"github.com/gerald999876/Fasting-Project/internal/timeutil"
	"github.com/gerald999876/Fasting-Project/pkg/model"
	"go.uber.org/zap"
)

var (
	// ErrInvalidMethod is returned when start is called with an unknown
	// method or one with non-positive fasting hours
	ErrInvalidMethod = errors.New("invalid fasting method")

	// ErrFastAlreadyActive is returned when start is called while a
	// session is running
	ErrFastAlreadyActive = errors.New("a fasting session is already active")

	// ErrNoActiveFast is returned when stop is called with no session running
	ErrNoActiveFast = errors.New("no active fasting session")
)

// SessionRepositoryInterface defines the session data access the fasting
// service depends on
type SessionRepositoryInterface interface {
	List(ctx context.Context) ([]model.FastingSession, error)
	Append(ctx context.Context, session model.FastingSession) error
	ActiveState(ctx context.Context) (*model.FastingState, error)
	SaveActiveState(ctx context.Context, state *model.FastingState) error
	ClearActiveState(ctx context.Context) error
}

// FastingStatus is a point-in-time snapshot of the lifecycle state
type FastingStatus struct {
	IsActive       bool                  `json:"is_active"`
	CurrentSession *model.FastingSession `json:"current_session,omitempty"`
	Method         model.FastingMethod   `json:"method"`
	TimeRemaining  string                `json:"time_remaining"`
	Progress       int                   `json:"progress"`
}

// FastingService is the state machine governing the fast lifecycle:
// Idle -> Active -> (completed | stopped) -> Idle. It owns the single
// active-session slot; no other component writes it.
type FastingService struct {
	repo      SessionRepositoryInterface
	scheduler notify.Scheduler
	logger    *zap.Logger

	now          func() time.Time
	tickInterval time.Duration

	mu         sync.Mutex
	state      model.FastingState
	cancelTick context.CancelFunc
}

// NewFastingService creates a new FastingService
func NewFastingService(repo SessionRepositoryInterface, scheduler notify.Scheduler, logger *zap.Logger) *FastingService {
	return &FastingService{
		repo:         repo,
		scheduler:    scheduler,
		logger:       logger,
		now:          time.Now,
		tickInterval: time.Second,
		state: model.FastingState{
			Method: model.DefaultFastingMethod(),
		},
	}
}

// Reconcile restores the lifecycle state from the persisted active-session
// slot. Called once at process start. A session whose end time passed while
// the process was down is finalised with its planned duration, because the
// fast ran its full course unobserved. Idempotent: with an empty slot this
// reads and changes nothing.
func (s *FastingService) Reconcile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	persisted, err := s.repo.ActiveState(ctx)
	if err != nil {
		return fmt.Errorf("failed to reconcile fasting state: %w", err)
	}
	if persisted == nil {
		return nil
	}

	now := s.now()
	if now.Before(*persisted.EndTime) {
		s.state = *persisted
		s.startTickLocked()

		s.logger.Info("active fasting session restored",
			zap.String("session_id", persisted.CurrentSession.ID),
			zap.Time("end_time", *persisted.EndTime),
		)
		return nil
	}

	// The end boundary was crossed while the app was closed
	s.state = *persisted
	if err := s.completeLocked(ctx, false); err != nil {
		return err
	}

	return nil
}

// Start begins a new fast with the given catalog method. Fails with
// ErrFastAlreadyActive when a session is running; at most one session is
// active at any time.
func (s *FastingService) Start(ctx context.Context, methodID string) (*model.FastingSession, error) {
	method, ok := model.FastingMethodByID(methodID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown method %q", ErrInvalidMethod, methodID)
	}
	if method.FastingHours <= 0 {
		return nil, fmt.Errorf("%w: fasting hours must be positive", ErrInvalidMethod)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsActive {
		return nil, ErrFastAlreadyActive
	}

	startTime := s.now()
	endTime := startTime.Add(time.Duration(method.FastingHours) * time.Hour)

	session := model.FastingSession{
		ID:        newSessionID(startTime),
		Method:    method,
		StartTime: startTime,
		EndTime:   endTime,
		Completed: false,
		Duration:  method.FastingHours * 60,
	}

	s.state = model.FastingState{
		IsActive:       true,
		CurrentSession: &session,
		StartTime:      &startTime,
		EndTime:        &endTime,
		Method:         method,
	}

	// The in-memory state is kept even if the write fails; the caller sees
	// the error and may retry
	if err := s.repo.SaveActiveState(ctx, &s.state); err != nil {
		s.logger.Error("failed to persist active fasting state",
			zap.Error(err),
			zap.String("session_id", session.ID),
		)
		return nil, fmt.Errorf("failed to persist fasting state: %w", err)
	}

	s.scheduleRemindersLocked(ctx, method, startTime, endTime)
	s.startTickLocked()

	s.logger.Info("fasting session started",
		zap.String("session_id", session.ID),
		zap.String("method", method.Name),
		zap.Time("end_time", endTime),
	)

	return &session, nil
}

// Stop terminates the active fast early. The session is recorded with the
// actual elapsed duration and the end time set to now.
func (s *FastingService) Stop(ctx context.Context) (*model.FastingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsActive {
		return nil, ErrNoActiveFast
	}

	now := s.now()
	session := *s.state.CurrentSession
	session.EndTime = now
	session.Completed = true
	session.Duration = elapsedMinutes(session.StartTime, now)

	if err := s.repo.Append(ctx, session); err != nil {
		s.logger.Error("failed to save stopped fasting session",
			zap.Error(err),
			zap.String("session_id", session.ID),
		)
	}
	if err := s.repo.ClearActiveState(ctx); err != nil {
		s.logger.Error("failed to clear fasting state", zap.Error(err))
	}

	s.resetLocked()

	if err := s.scheduler.CancelAll(ctx); err != nil {
		s.logger.Warn("failed to cancel pending notifications", zap.Error(err))
	}

	s.logger.Info("fasting session stopped",
		zap.String("session_id", session.ID),
		zap.Int("duration_minutes", session.Duration),
	)

	return &session, nil
}

// Tick advances the countdown once. When the end boundary has been crossed
// the session is finalised exactly as on natural timeout, with the actual
// elapsed duration since the process was live to observe the boundary.
// Returns true when the session completed on this tick. Safe to call
// concurrently with the periodic refresh: a second attempt after completion
// is a no-op.
func (s *FastingService) Tick(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsActive {
		return false, nil
	}
	if s.now().Before(*s.state.EndTime) {
		return false, nil
	}

	if err := s.completeLocked(ctx, true); err != nil {
		return true, err
	}
	return true, nil
}

// Status returns a snapshot of the current lifecycle state
func (s *FastingService) Status() FastingStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := FastingStatus{
		IsActive:      s.state.IsActive,
		Method:        s.state.Method,
		TimeRemaining: "0s",
	}

	if s.state.IsActive {
		session := *s.state.CurrentSession
		status.CurrentSession = &session

		now := s.now()
		status.TimeRemaining = timeutil.FormatTimeRemaining(*s.state.EndTime, now)
		status.Progress = timeutil.ProgressPercentage(*s.state.StartTime, *s.state.EndTime, now)
	}

	return status
}

// Close stops the countdown task, if any
func (s *FastingService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTickLocked()
}

// completeLocked finalises the active session. live reports whether the
// process observed the end boundary: a live completion records the actual
// elapsed minutes, while a completion discovered at reconcile records the
// planned duration. No-op when no session is active, so the tick-driven and
// refresh-driven paths cannot both finalise the same session.
func (s *FastingService) completeLocked(ctx context.Context, live bool) error {
	if !s.state.IsActive && s.state.CurrentSession == nil {
		return nil
	}

	session := *s.state.CurrentSession
	session.EndTime = *s.state.EndTime
	session.Completed = true
	if live {
		session.Duration = elapsedMinutes(session.StartTime, session.EndTime)
	} else {
		session.Duration = s.state.Method.FastingHours * 60
	}

	var persistErr error
	if err := s.repo.Append(ctx, session); err != nil {
		s.logger.Error("failed to save completed fasting session",
			zap.Error(err),
			zap.String("session_id", session.ID),
		)
		persistErr = fmt.Errorf("failed to save completed session: %w", err)
	}
	if err := s.repo.ClearActiveState(ctx); err != nil {
		s.logger.Error("failed to clear fasting state", zap.Error(err))
		if persistErr == nil {
			persistErr = fmt.Errorf("failed to clear fasting state: %w", err)
		}
	}

	s.resetLocked()

	s.logger.Info("fasting session completed",
		zap.String("session_id", session.ID),
		zap.Bool("observed_live", live),
		zap.Int("duration_minutes", session.Duration),
	)

	return persistErr
}

// resetLocked folds the state machine back to Idle, keeping the last method
// as the default for the next start
func (s *FastingService) resetLocked() {
	s.stopTickLocked()
	s.state = model.FastingState{
		Method: s.state.Method,
	}
}

// startTickLocked launches the countdown task: one cancellable repeating
// task per active fast, stopped on any transition out of Active
func (s *FastingService) startTickLocked() {
	s.stopTickLocked()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelTick = cancel

	go func() {
		ticker := time.NewTicker(s.tickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				completed, err := s.Tick(context.Background())
				if err != nil {
					s.logger.Error("countdown tick failed", zap.Error(err))
				}
				if completed {
					return
				}
			}
		}
	}()
}

func (s *FastingService) stopTickLocked() {
	if s.cancelTick != nil {
		s.cancelTick()
		s.cancelTick = nil
	}
}

// scheduleRemindersLocked schedules the completion, 30-minutes-before and
// halfway reminders. Best-effort: a scheduling failure never fails the
// start transition.
func (s *FastingService) scheduleRemindersLocked(ctx context.Context, method model.FastingMethod, startTime, endTime time.Time) {
	schedule := func(title, body string, at time.Time) {
		if _, err := s.scheduler.Schedule(ctx, title, body, at, notify.ChannelFastingReminders); err != nil {
			s.logger.Warn("failed to schedule notification",
				zap.Error(err),
				zap.String("title", title),
			)
		}
	}

	schedule(
		"Fasting Complete!",
		fmt.Sprintf("Your %s fasting period has ended. You can now eat!", method.Name),
		endTime,
	)

	now := s.now()
	reminderTime := endTime.Add(-30 * time.Minute)
	if reminderTime.After(now) {
		schedule(
			"Fasting Almost Complete!",
			fmt.Sprintf("Your %s fast ends in 30 minutes. Get ready to break your fast!", method.Name),
			reminderTime,
		)
	}

	halfwayTime := startTime.Add(endTime.Sub(startTime) / 2)
	if halfwayTime.After(now) && halfwayTime.Before(endTime) {
		schedule(
			"You're Halfway There!",
			fmt.Sprintf("Great job! You're halfway through your %s fast. Keep going!", method.Name),
			halfwayTime,
		)
	}
}

// elapsedMinutes returns the whole minutes between start and end, rounded,
// never negative
func elapsedMinutes(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Round(time.Minute) / time.Minute)
}

// newSessionID builds the session ID in the historical format: creation
// time in unix milliseconds plus a random base36 suffix
func newSessionID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10) + "-" + strconv.FormatInt(rand.Int63n(1<<48), 36)
}
