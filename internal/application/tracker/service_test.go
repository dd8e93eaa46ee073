package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/goal"
	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/shared"
)

// fakeRepo is an in-memory goal.Repository with a failure switch.
type fakeRepo struct {
	mu        sync.Mutex
	saved     *goal.Goal
	saveCount int
	failSaves bool
}

func (r *fakeRepo) Load(ctx context.Context) (*goal.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saved == nil {
		return nil, shared.ErrNoActiveGoal
	}
	return r.saved.Clone(), nil
}

func (r *fakeRepo) Save(ctx context.Context, g *goal.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveCount++
	if r.failSaves {
		return errors.New("disk on fire")
	}
	r.saved = g.Clone()
	return nil
}

func (r *fakeRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = nil
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{}
	store := NewStore(repo, nil)
	return NewService(store, nil), repo
}

func createTestGoal(t *testing.T, svc *Service) {
	t.Helper()
	_, err := svc.CreateGoal(context.Background(), CreateParams{
		Name:      "spring",
		Exercises: map[string]float64{"situps": 100},
		Weeks:     1,
		Creator:   "u1",
		ChatID:    42,
	})
	require.NoError(t, err)
}

func TestService_CreateGoal(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	g, err := svc.CreateGoal(ctx, CreateParams{
		Name:      "spring",
		Exercises: map[string]float64{"situps": 100},
		Weeks:     2,
		Creator:   "u1",
		ChatID:    42,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, g.EffectiveDays)
	assert.Equal(t, int64(42), g.ChatID)
	assert.NotNil(t, repo.saved)

	// Only one goal at a time.
	_, err = svc.CreateGoal(ctx, CreateParams{
		Name:      "another",
		Exercises: map[string]float64{"situps": 1},
		Weeks:     1,
		Creator:   "u1",
	})
	assert.ErrorIs(t, err, shared.ErrGoalAlreadyExists)

	// Delete frees the slot.
	require.NoError(t, svc.DeleteGoal(ctx))
	assert.False(t, svc.Exists())
	_, err = svc.Snapshot()
	assert.ErrorIs(t, err, shared.ErrNoActiveGoal)
}

func TestService_CommandFlow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	createTestGoal(t, svc)

	_, err := svc.JoinGoal(ctx, "u2")
	require.NoError(t, err)

	rec, err := svc.RecordWorkout(ctx, "u2", "situps", 60)
	require.NoError(t, err)
	assert.Equal(t, 60.0, rec.Outcome.NewDaily)
	assert.Equal(t, "spring", rec.Info.Name)
	assert.Equal(t, []string{"u1", "u2"}, rec.Info.Participants)

	// Completing the only exercise auto-promotes.
	rec, err = svc.RecordWorkout(ctx, "u2", "situps", 50)
	require.NoError(t, err)
	require.NotNil(t, rec.Outcome.Credit)
	assert.Equal(t, 1.0, rec.Outcome.Credit.CompletedDays)

	// Credit grants and rest for the other participant.
	half, err := svc.CompleteHalf(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0.5, half.Outcome.CompletedDays)

	full, err := svc.CompleteFull(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, full.Outcome.CompletedDays)

	rest, err := svc.ClaimRest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, rest.Outcome.Used)

	// Fix moves daily and lifetime down together.
	fix, err := svc.FixProgress(ctx, "u2", "situps", 30)
	require.NoError(t, err)
	assert.Equal(t, 30.0, fix.Outcome.AdjustedDaily)

	// Change targets reports old and new values.
	change, err := svc.ChangeTargets(ctx, map[string]float64{"situps": 80})
	require.NoError(t, err)
	assert.Equal(t, goal.TargetChange{Old: 100, New: 80}, change.Changes["situps"])
}

func TestService_PersistenceFailureKeepsState(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	createTestGoal(t, svc)

	repo.failSaves = true

	res, err := svc.RecordWorkout(ctx, "u1", "situps", 60)
	assert.ErrorIs(t, err, shared.ErrPersistenceFailure)
	assert.ErrorIs(t, err, shared.ErrPersistence)
	// The outcome is still returned so the caller can report success.
	assert.Equal(t, 60.0, res.Outcome.NewDaily)

	// The in-memory state stays authoritative.
	repo.failSaves = false
	g, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 60.0, g.Daily["u1"]["situps"])
}

func TestService_ResetDaily(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	createTestGoal(t, svc)

	_, err := svc.RecordWorkout(ctx, "u1", "situps", 100)
	require.NoError(t, err)

	reset, err := svc.ResetDaily(ctx, "2026-08-31")
	require.NoError(t, err)
	assert.True(t, reset)

	g, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 0.0, g.Daily["u1"]["situps"])
	assert.Equal(t, 100.0, g.Lifetime["u1"]["situps"])
	assert.Equal(t, "2026-08-31", g.LastResetDate)

	// Re-running for the same date does not touch storage again.
	saves := repo.saveCount
	reset, err = svc.ResetDaily(ctx, "2026-08-31")
	require.NoError(t, err)
	assert.False(t, reset)
	assert.Equal(t, saves, repo.saveCount)
}

func TestService_ConcurrentRecords(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	createTestGoal(t, svc)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordWorkout(ctx, "u1", "situps", 30)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	g, err := svc.Snapshot()
	require.NoError(t, err)
	// Both recordings land: no lost update.
	assert.Equal(t, 60.0, g.Daily["u1"]["situps"])
	assert.Equal(t, 60.0, g.Lifetime["u1"]["situps"])
}

func TestStore_LoadRoundTrip(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	createTestGoal(t, svc)
	_, err := svc.RecordWorkout(ctx, "u1", "situps", 60)
	require.NoError(t, err)

	// A fresh store over the same repository sees the persisted state.
	store2 := NewStore(repo, nil)
	require.NoError(t, store2.Load(ctx))
	g, err := store2.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 60.0, g.Daily["u1"]["situps"])
	assert.Equal(t, "spring", g.Name)
}
