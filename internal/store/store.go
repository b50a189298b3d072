// Package store provides the durable key-value store the tracker persists
// into: string keys, JSON document values, no transactions and no schema.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no record exists for the key
var ErrNotFound = errors.New("record not found")

// Storage keys used by the repositories
const (
	KeyFastingSessions = "fasting_sessions"
	KeyFastingState    = "fasting_state"
	KeyHealthMetrics   = "health_metrics"
	KeyJournalEntries  = "journal_entries"
	KeyUserSettings    = "user_settings"
)

// KV is the durable store contract: get/set/remove for named JSON records.
// Implementations must be safe for concurrent use.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
