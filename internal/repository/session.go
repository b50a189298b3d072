package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gerald999876/Fasting-Project/internal/store"
	"github.com/gerald999876/Fasting-Project/pkg/model"
	"go.uber.org/zap"
)

// SessionRepository owns the canonical fasting session history and the
// single active-session slot. Only the fasting service writes the slot.
type SessionRepository struct {
	kv     store.KV
	logger *zap.Logger
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(kv store.KV, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{
		kv:     kv,
		logger: logger,
	}
}

// List returns the full session history, oldest first. A missing record
// yields an empty list; a malformed record is logged and treated as empty
// so a corrupt write never makes history unreadable.
func (r *SessionRepository) List(ctx context.Context) ([]model.FastingSession, error) {
	data, err := r.kv.Get(ctx, store.KeyFastingSessions)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []model.FastingSession{}, nil
		}
		r.logger.Error("failed to load fasting sessions", zap.Error(err))
		return nil, fmt.Errorf("failed to load fasting sessions: %w", err)
	}

	var sessions []model.FastingSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		r.logger.Warn("malformed fasting sessions record, treating as empty", zap.Error(err))
		return []model.FastingSession{}, nil
	}

	return sessions, nil
}

// Append adds a session to the history. History is append-only; past
// sessions are never edited in place.
func (r *SessionRepository) Append(ctx context.Context, session model.FastingSession) error {
	sessions, err := r.List(ctx)
	if err != nil {
		return err
	}

	sessions = append(sessions, session)

	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode fasting sessions: %w", err)
	}

	if err := r.kv.Set(ctx, store.KeyFastingSessions, data); err != nil {
		r.logger.Error("failed to save fasting session",
			zap.Error(err),
			zap.String("session_id", session.ID),
		)
		return fmt.Errorf("failed to save fasting session: %w", err)
	}

	return nil
}

// ActiveState reads the persisted active-session slot. Returns (nil, nil)
// when the slot is empty or its contents cannot be parsed.
func (r *SessionRepository) ActiveState(ctx context.Context) (*model.FastingState, error) {
	data, err := r.kv.Get(ctx, store.KeyFastingState)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to load fasting state", zap.Error(err))
		return nil, fmt.Errorf("failed to load fasting state: %w", err)
	}

	var state model.FastingState
	if err := json.Unmarshal(data, &state); err != nil {
		r.logger.Warn("malformed fasting state record, treating as absent", zap.Error(err))
		return nil, nil
	}

	// A slot without a session or times is unusable; treat as absent
	if state.CurrentSession == nil || state.StartTime == nil || state.EndTime == nil {
		r.logger.Warn("incomplete fasting state record, treating as absent")
		return nil, nil
	}

	return &state, nil
}

// SaveActiveState writes the active-session slot
func (r *SessionRepository) SaveActiveState(ctx context.Context, state *model.FastingState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode fasting state: %w", err)
	}

	if err := r.kv.Set(ctx, store.KeyFastingState, data); err != nil {
		r.logger.Error("failed to save fasting state", zap.Error(err))
		return fmt.Errorf("failed to save fasting state: %w", err)
	}

	return nil
}

// ClearActiveState empties the active-session slot. Clearing an already
// empty slot is a no-op, which makes the completion write safe to attempt
// twice.
func (r *SessionRepository) ClearActiveState(ctx context.Context) error {
	if err := r.kv.Remove(ctx, store.KeyFastingState); err != nil {
		r.logger.Error("failed to clear fasting state", zap.Error(err))
		return fmt.Errorf("failed to clear fasting state: %w", err)
	}

	return nil
}
