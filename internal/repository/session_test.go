package repository

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/gerald999876/Fasting-Project/internal/store"
	"github.com/gerald999876/Fasting-Project/pkg/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSessionRepo() (*SessionRepository, *store.Memory) {
	kv := store.NewMemory()
	return NewSessionRepository(kv, zap.NewNop()), kv
}

func testSession(id string, start time.Time) model.FastingSession {
	return model.FastingSession{
		ID:        id,
		Method:    model.DefaultFastingMethod(),
		StartTime: start,
		EndTime:   start.Add(16 * time.Hour),
		Completed: true,
		Duration:  960,
	}
}

func TestSessionList_EmptyWhenAbsent(t *testing.T) {
	repo, _ := newSessionRepo()

	sessions, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSessionList_MalformedRecordTreatedAsEmpty(t *testing.T) {
	repo, kv := newSessionRepo()
	require.NoError(t, kv.Set(context.Background(), store.KeyFastingSessions, []byte("{not json")))

	sessions, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSessionAppend_PreservesOrder(t *testing.T) {
	repo, _ := newSessionRepo()
	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Append(context.Background(), testSession(id, start.AddDate(0, 0, i))))
	}

	sessions, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "a", sessions[0].ID)
	assert.Equal(t, "b", sessions[1].ID)
	assert.Equal(t, "c", sessions[2].ID)
}

func TestActiveState_RoundTrip(t *testing.T) {
	repo, _ := newSessionRepo()

	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	session := testSession("s1", start)
	session.Completed = false
	end := session.EndTime

	state := &model.FastingState{
		IsActive:       true,
		CurrentSession: &session,
		StartTime:      &start,
		EndTime:        &end,
		Method:         session.Method,
	}

	require.NoError(t, repo.SaveActiveState(context.Background(), state))

	loaded, err := repo.ActiveState(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.IsActive)
	assert.Equal(t, session.ID, loaded.CurrentSession.ID)
	assert.True(t, loaded.StartTime.Equal(start))
	assert.True(t, loaded.EndTime.Equal(end))
}

func TestActiveState_AbsentAndClear(t *testing.T) {
	repo, _ := newSessionRepo()
	ctx := context.Background()

	state, err := repo.ActiveState(ctx)
	require.NoError(t, err)
	assert.Nil(t, state)

	// Clearing an empty slot is a no-op
	require.NoError(t, repo.ClearActiveState(ctx))
	require.NoError(t, repo.ClearActiveState(ctx))
}

func TestActiveState_IncompleteSlotTreatedAsAbsent(t *testing.T) {
	repo, kv := newSessionRepo()
	require.NoError(t, kv.Set(context.Background(), store.KeyFastingState, []byte(`{"is_active":true}`)))

	state, err := repo.ActiveState(context.Background())

	require.NoError(t, err)
	assert.Nil(t, state)
}

type sessionFields struct {
	ID        string
	HoursAgo  int
	Duration  int
	Completed bool
}

func TestProperty_SessionRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	base := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)

	properties.Property("Appending then listing returns the same sessions", prop.ForAll(
		func(fields []sessionFields) bool {
			repo, _ := newSessionRepo()
			ctx := context.Background()

			written := make([]model.FastingSession, 0, len(fields))
			for _, f := range fields {
				start := base.Add(-time.Duration(f.HoursAgo) * time.Hour)
				session := model.FastingSession{
					ID:        f.ID,
					Method:    model.DefaultFastingMethod(),
					StartTime: start,
					EndTime:   start.Add(time.Duration(f.Duration) * time.Minute),
					Completed: f.Completed,
					Duration:  f.Duration,
				}
				if err := repo.Append(ctx, session); err != nil {
					return false
				}
				written = append(written, session)
			}

			loaded, err := repo.List(ctx)
			if err != nil || len(loaded) != len(written) {
				return false
			}
			for i := range written {
				if loaded[i].ID != written[i].ID ||
					loaded[i].Duration != written[i].Duration ||
					loaded[i].Completed != written[i].Completed ||
					!loaded[i].StartTime.Equal(written[i].StartTime) ||
					!loaded[i].EndTime.Equal(written[i].EndTime) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Struct(reflect.TypeOf(sessionFields{}), map[string]gopter.Gen{
			"ID":        gen.Identifier(),
			"HoursAgo":  gen.IntRange(0, 24*365),
			"Duration":  gen.IntRange(0, 24*60),
			"Completed": gen.Bool(),
		})),
	))

	properties.TestingRun(t)
}
