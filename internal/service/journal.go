package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gerald999876/Fasting-Project/pkg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidEntry is returned when a journal entry fails validation
var ErrInvalidEntry = errors.New("invalid journal entry")

// JournalRepositoryInterface defines the journal data access the journal
// service depends on
type JournalRepositoryInterface interface {
	List(ctx context.Context) ([]model.JournalEntry, error)
	Create(ctx context.Context, entry model.JournalEntry) error
	Update(ctx context.Context, entry model.JournalEntry) error
	Delete(ctx context.Context, entryID string) error
}

// JournalService validates and manages journal entries
type JournalService struct {
	repo   JournalRepositoryInterface
	logger *zap.Logger
	now    func() time.Time
}

// NewJournalService creates a new JournalService
func NewJournalService(repo JournalRepositoryInterface, logger *zap.Logger) *JournalService {
	return &JournalService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// List returns all entries in insertion order
func (s *JournalService) List(ctx context.Context) ([]model.JournalEntry, error) {
	return s.repo.List(ctx)
}

// Create validates and stores a new entry, assigning its ID and defaulting
// the date to now
func (s *JournalService) Create(ctx context.Context, entry model.JournalEntry) (model.JournalEntry, error) {
	if err := validateEntry(entry); err != nil {
		return model.JournalEntry{}, err
	}

	entry.ID = uuid.New().String()
	if entry.Date.IsZero() {
		entry.Date = s.now()
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return model.JournalEntry{}, fmt.Errorf("failed to create journal entry: %w", err)
	}

	s.logger.Info("journal entry created", zap.String("entry_id", entry.ID))
	return entry, nil
}

// Update validates and replaces the entry with the given ID
func (s *JournalService) Update(ctx context.Context, entry model.JournalEntry) (model.JournalEntry, error) {
	if entry.ID == "" {
		return model.JournalEntry{}, fmt.Errorf("%w: missing entry id", ErrInvalidEntry)
	}
	if err := validateEntry(entry); err != nil {
		return model.JournalEntry{}, err
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return model.JournalEntry{}, err
	}

	s.logger.Info("journal entry updated", zap.String("entry_id", entry.ID))
	return entry, nil
}

// Delete removes the entry with the given ID
func (s *JournalService) Delete(ctx context.Context, entryID string) error {
	if err := s.repo.Delete(ctx, entryID); err != nil {
		return err
	}

	s.logger.Info("journal entry deleted", zap.String("entry_id", entryID))
	return nil
}

func validateEntry(e model.JournalEntry) error {
	if e.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidEntry)
	}
	if !model.ValidJournalMood(e.Mood) {
		return fmt.Errorf("%w: unknown mood %q", ErrInvalidEntry, e.Mood)
	}
	return nil
}
