package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalSchedule(t *testing.T) {
	s := NewIntervalSchedule(5 * time.Minute)
	now := time.Date(2026, 8, 31, 12, 3, 17, 0, time.UTC)

	assert.Equal(t, now.Add(5*time.Minute), s.Next(now))
	assert.Equal(t, "@every 5m0s", s.String())
}

func TestMinuteSchedule_AlignsToBoundary(t *testing.T) {
	s := NewMinuteSchedule()

	now := time.Date(2026, 8, 31, 12, 3, 17, 500, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 31, 12, 4, 0, 0, time.UTC), s.Next(now))

	// Already on a boundary: next fires a full minute later.
	boundary := time.Date(2026, 8, 31, 12, 4, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 31, 12, 5, 0, 0, time.UTC), s.Next(boundary))
}

func TestScheduler_RegisterRejectsDuplicates(t *testing.T) {
	s := NewScheduler(SchedulerConfig{})

	job := &stubJob{name: "digest"}
	assert.NoError(t, s.Register(job, NewMinuteSchedule()))
	assert.ErrorIs(t, s.Register(job, NewMinuteSchedule()), ErrJobAlreadyExists)

	assert.ErrorIs(t, s.Register(nil, NewMinuteSchedule()), ErrNilJob)
	assert.ErrorIs(t, s.Register(&stubJob{name: "other"}, nil), ErrNilSchedule)

	infos := s.ListJobs()
	assert.Len(t, infos, 1)
	assert.Equal(t, "digest", infos[0].Name)
}

func TestScheduler_Lifecycle(t *testing.T) {
	s := NewScheduler(SchedulerConfig{})
	job := &stubJob{name: "digest"}
	require.NoError(t, s.Register(job, NewMinuteSchedule()))

	assert.False(t, s.IsRunning())
	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.ErrorIs(t, s.Start(context.Background()), ErrSchedulerAlreadyRunning)

	// Manual execution runs the job immediately, ignoring its schedule.
	require.NoError(t, s.RunNow(context.Background(), "digest"))
	assert.Equal(t, 1, job.runs)
	assert.ErrorIs(t, s.RunNow(context.Background(), "missing"), ErrJobNotFound)

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.ErrorIs(t, s.Stop(), ErrSchedulerNotRunning)
}

type stubJob struct {
	name string
	runs int
}

func (j *stubJob) Name() string        { return j.name }
func (j *stubJob) Description() string { return "stub" }
func (j *stubJob) Run(_ context.Context) error {
	j.runs++
	return nil
}
