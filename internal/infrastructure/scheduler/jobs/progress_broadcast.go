package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fitcrew-hub/fitcrew-bot/internal/application/tracker"
	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/shared"
	"github.com/fitcrew-hub/fitcrew-bot/internal/interface/telegram/presenter"
	"github.com/fitcrew-hub/fitcrew-bot/pkg/timeutil"
)

// ProgressBroadcastJob posts everyone's daily progress to the goal chat at
// fixed local hours. The check is exact (hour matches, minute is zero): a slot
// the process slept through is skipped, never replayed late.
type ProgressBroadcastJob struct {
	service   *tracker.Service
	directory tracker.Directory
	notifier  tracker.Notifier
	clock     Clock
	timezone  *time.Location
	hours     map[int]bool
	logger    *slog.Logger
}

// NewProgressBroadcastJob creates the broadcast job for the given local hours.
func NewProgressBroadcastJob(
	service *tracker.Service,
	directory tracker.Directory,
	notifier tracker.Notifier,
	clock Clock,
	timezone *time.Location,
	hours []int,
	logger *slog.Logger,
) *ProgressBroadcastJob {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	hourSet := make(map[int]bool, len(hours))
	for _, h := range hours {
		hourSet[h] = true
	}

	return &ProgressBroadcastJob{
		service:   service,
		directory: directory,
		notifier:  notifier,
		clock:     clock,
		timezone:  timezone,
		hours:     hourSet,
		logger:    logger.With("job", "progress_broadcast"),
	}
}

// Name returns the unique name of the job.
func (j *ProgressBroadcastJob) Name() string { return "progress_broadcast" }

// Description returns a human-readable description of the job.
func (j *ProgressBroadcastJob) Description() string {
	return "Posts everyone's daily progress to the goal chat at fixed hours"
}

// Run broadcasts the progress digest when the current minute is a slot.
func (j *ProgressBroadcastJob) Run(ctx context.Context) error {
	hour, minute := timeutil.LocalHourMinute(j.clock.Now(), j.timezone)
	if minute != 0 || !j.hours[hour] {
		return nil
	}

	g, err := j.service.Snapshot()
	if err != nil {
		if errors.Is(err, shared.ErrNoActiveGoal) {
			return nil
		}
		return err
	}

	names := tracker.ResolveNames(ctx, j.directory, g.ChatID, g.Participants)
	text := "Progress Update:\n" + presenter.BuildEveryoneProgress(g, names)

	if err := j.notifier.Broadcast(ctx, g.ChatID, text); err != nil {
		return err
	}

	j.logger.Info("progress broadcast sent", "hour", hour, "participants", len(g.Participants))
	return nil
}
