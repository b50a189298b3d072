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

// ErrEntryNotFound is returned when a journal entry ID does not exist
var ErrEntryNotFound = errors.New("journal entry not found")

// JournalRepository manages journal entries
type JournalRepository struct {
	kv     store.KV
	logger *zap.Logger
}

// NewJournalRepository creates a new JournalRepository
func NewJournalRepository(kv store.KV, logger *zap.Logger) *JournalRepository {
	return &JournalRepository{
		kv:     kv,
		logger: logger,
	}
}

// List returns all journal entries in insertion order
func (r *JournalRepository) List(ctx context.Context) ([]model.JournalEntry, error) {
	data, err := r.kv.Get(ctx, store.KeyJournalEntries)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []model.JournalEntry{}, nil
		}
		r.logger.Error("failed to load journal entries", zap.Error(err))
		return nil, fmt.Errorf("failed to load journal entries: %w", err)
	}

	var entries []model.JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		r.logger.Warn("malformed journal entries record, treating as empty", zap.Error(err))
		return []model.JournalEntry{}, nil
	}

	return entries, nil
}

// Create appends a new journal entry
func (r *JournalRepository) Create(ctx context.Context, entry model.JournalEntry) error {
	entries, err := r.List(ctx)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	return r.save(ctx, entries)
}

// Update replaces the entry with the same ID in place
func (r *JournalRepository) Update(ctx context.Context, entry model.JournalEntry) error {
	entries, err := r.List(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry
			found = true
			break
		}
	}
	if !found {
		return ErrEntryNotFound
	}

	return r.save(ctx, entries)
}

// Delete removes the entry with the given ID
func (r *JournalRepository) Delete(ctx context.Context, entryID string) error {
	entries, err := r.List(ctx)
	if err != nil {
		return err
	}

	filtered := entries[:0]
	found := false
	for _, e := range entries {
		if e.ID == entryID {
			found = true
			continue
		}
		filtered = append(filtered, e)
	}
	if !found {
		return ErrEntryNotFound
	}

	return r.save(ctx, filtered)
}

func (r *JournalRepository) save(ctx context.Context, entries []model.JournalEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode journal entries: %w", err)
	}

	if err := r.kv.Set(ctx, store.KeyJournalEntries, data); err != nil {
		r.logger.Error("failed to save journal entries", zap.Error(err))
		return fmt.Errorf("failed to save journal entries: %w", err)
	}

	return nil
}
