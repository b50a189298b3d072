package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Postgres is a KV implementation over a single kv_records table
type Postgres struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres creates a Postgres-backed KV store
func NewPostgres(db *pgxpool.Pool, logger *zap.Logger) *Postgres {
	return &Postgres{
		db:     db,
		logger: logger,
	}
}

var _ KV = (*Postgres)(nil)

// Migrate creates the kv_records table if it does not exist
func (s *Postgres) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_records (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`

	if _, err := s.db.Exec(ctx, query); err != nil {
		s.logger.Error("failed to create kv_records table", zap.Error(err))
		return fmt.Errorf("failed to create kv_records table: %w", err)
	}

	return nil
}

// Get retrieves the JSON value stored under key
func (s *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_records WHERE key = $1`

	var value []byte
	err := s.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Error("failed to get record", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("failed to get record %q: %w", key, err)
	}

	return value, nil
}

// Set stores value under key, replacing any existing record
func (s *Postgres) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_records (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.Exec(ctx, query, key, value); err != nil {
		s.logger.Error("failed to set record", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to set record %q: %w", key, err)
	}

	return nil
}

// Remove deletes the record under key. Removing an absent key is not an error.
func (s *Postgres) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM kv_records WHERE key = $1`

	if _, err := s.db.Exec(ctx, query, key); err != nil {
		s.logger.Error("failed to remove record", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to remove record %q: %w", key, err)
	}

	return nil
}
