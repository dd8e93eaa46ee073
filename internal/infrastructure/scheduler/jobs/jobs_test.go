package jobs

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcrew-hub/fitcrew-bot/internal/application/tracker"
	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/goal"
	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/shared"
)

// fixedClock returns a settable instant.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// memRepo is a minimal in-memory goal.Repository.
type memRepo struct {
	mu    sync.Mutex
	saved *goal.Goal
}

func (r *memRepo) Load(ctx context.Context) (*goal.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saved == nil {
		return nil, shared.ErrNoActiveGoal
	}
	return r.saved.Clone(), nil
}

func (r *memRepo) Save(ctx context.Context, g *goal.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = g.Clone()
	return nil
}

func (r *memRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = nil
	return nil
}

// recordingNotifier captures broadcasts.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	chatIDs  []int64
}

func (n *recordingNotifier) Broadcast(ctx context.Context, chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	n.chatIDs = append(n.chatIDs, chatID)
	return nil
}

// staticDirectory resolves every participant to a fixed name.
type staticDirectory struct{}

func (staticDirectory) DisplayName(ctx context.Context, chatID int64, userID string) (string, error) {
	return "User " + userID, nil
}

func newJobService(t *testing.T) *tracker.Service {
	t.Helper()
	store := tracker.NewStore(&memRepo{}, nil)
	svc := tracker.NewService(store, nil)
	_, err := svc.CreateGoal(context.Background(), tracker.CreateParams{
		Name:      "spring",
		Exercises: map[string]float64{"situps": 100},
		Weeks:     1,
		Creator:   "100",
		ChatID:    42,
	})
	require.NoError(t, err)
	return svc
}

func TestDailyResetJob(t *testing.T) {
	svc := newJobService(t)
	ctx := context.Background()

	_, err := svc.RecordWorkout(ctx, "100", "situps", 60)
	require.NoError(t, err)

	clock := &fixedClock{now: time.Date(2026, 8, 31, 0, 0, 30, 0, time.UTC)}
	job := NewDailyResetJob(svc, clock, time.UTC, nil)

	require.NoError(t, job.Run(ctx))

	g, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 0.0, g.Daily["100"]["situps"])
	assert.Equal(t, 60.0, g.Lifetime["100"]["situps"])
	assert.Equal(t, "2026-08-31", g.LastResetDate)

	// Later ticks on the same date are no-ops.
	_, err = svc.RecordWorkout(ctx, "100", "situps", 10)
	require.NoError(t, err)
	clock.Set(time.Date(2026, 8, 31, 0, 5, 30, 0, time.UTC))
	require.NoError(t, job.Run(ctx))

	g, err = svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 10.0, g.Daily["100"]["situps"])

	// The next date resets again.
	clock.Set(time.Date(2026, 9, 1, 0, 0, 30, 0, time.UTC))
	require.NoError(t, job.Run(ctx))
	g, err = svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 0.0, g.Daily["100"]["situps"])
}

func TestDailyResetJob_NoGoal(t *testing.T) {
	store := tracker.NewStore(&memRepo{}, nil)
	svc := tracker.NewService(store, nil)

	job := NewDailyResetJob(svc, &fixedClock{now: time.Now()}, time.UTC, nil)
	assert.NoError(t, job.Run(context.Background()))
}

func TestProgressBroadcastJob_FiresOnSlot(t *testing.T) {
	svc := newJobService(t)
	notifier := &recordingNotifier{}
	clock := &fixedClock{now: time.Date(2026, 8, 31, 12, 0, 10, 0, time.UTC)}

	job := NewProgressBroadcastJob(svc, staticDirectory{}, notifier, clock, time.UTC, []int{12, 20}, nil)

	require.NoError(t, job.Run(context.Background()))
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, int64(42), notifier.chatIDs[0])
	assert.True(t, strings.HasPrefix(notifier.messages[0], "Progress Update:\n"))
	assert.Contains(t, notifier.messages[0], "User 100")
	assert.Contains(t, notifier.messages[0], "situps: 0/100")
}

func TestProgressBroadcastJob_SkipsOffSlotMinutes(t *testing.T) {
	svc := newJobService(t)
	notifier := &recordingNotifier{}
	clock := &fixedClock{}
	job := NewProgressBroadcastJob(svc, staticDirectory{}, notifier, clock, time.UTC, []int{12, 20}, nil)

	// Wrong minute within a broadcast hour.
	clock.Set(time.Date(2026, 8, 31, 12, 5, 0, 0, time.UTC))
	require.NoError(t, job.Run(context.Background()))

	// Wrong hour on the minute.
	clock.Set(time.Date(2026, 8, 31, 13, 0, 0, 0, time.UTC))
	require.NoError(t, job.Run(context.Background()))

	assert.Empty(t, notifier.messages)

	// Second configured hour fires.
	clock.Set(time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC))
	require.NoError(t, job.Run(context.Background()))
	assert.Len(t, notifier.messages, 1)
}

func TestProgressBroadcastJob_NoGoal(t *testing.T) {
	store := tracker.NewStore(&memRepo{}, nil)
	svc := tracker.NewService(store, nil)
	notifier := &recordingNotifier{}
	clock := &fixedClock{now: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)}

	job := NewProgressBroadcastJob(svc, staticDirectory{}, notifier, clock, time.UTC, []int{12}, nil)
	assert.NoError(t, job.Run(context.Background()))
	assert.Empty(t, notifier.messages)
}
