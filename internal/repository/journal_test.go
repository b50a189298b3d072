package repository

import (
	"context"
	"testing"
	"time"

	"github.com/gerald999876/Fasting-Project/internal/store"
	"github.com/gerald999876/Fasting-Project/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testEntry(id, title string) model.JournalEntry {
	return model.JournalEntry{
		ID:      id,
		Date:    time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
		Title:   title,
		Content: "day went fine",
		Mood:    model.JournalMoodGood,
		Tags:    []string{"16:8"},
	}
}

func TestJournalCRUD(t *testing.T) {
	repo := NewJournalRepository(store.NewMemory(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testEntry("e1", "first")))
	require.NoError(t, repo.Create(ctx, testEntry("e2", "second")))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Title)
	assert.Equal(t, "second", entries[1].Title)

	// Update in place keeps ordering
	updated := testEntry("e1", "first, revised")
	updated.Mood = model.JournalMoodOkay
	require.NoError(t, repo.Update(ctx, updated))

	entries, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first, revised", entries[0].Title)
	assert.Equal(t, model.JournalMoodOkay, entries[0].Mood)

	require.NoError(t, repo.Delete(ctx, "e1"))

	entries, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "e2", entries[0].ID)
}

func TestJournalUpdate_UnknownID(t *testing.T) {
	repo := NewJournalRepository(store.NewMemory(), zap.NewNop())

	err := repo.Update(context.Background(), testEntry("missing", "nope"))

	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestJournalDelete_UnknownID(t *testing.T) {
	repo := NewJournalRepository(store.NewMemory(), zap.NewNop())

	err := repo.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrEntryNotFound)
}
