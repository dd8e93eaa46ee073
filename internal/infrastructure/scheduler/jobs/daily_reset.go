// Package jobs contains the scheduled jobs for the fitness bot: the midnight
// daily reset and the fixed-hour progress broadcast. Both run once per
// wall-clock minute and decide from the current local time whether to act,
// so a restart never replays a missed slot.
package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fitcrew-hub/fitcrew-bot/internal/application/tracker"
	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/shared"
	"github.com/fitcrew-hub/fitcrew-bot/pkg/timeutil"
)

// Clock abstracts time.Now so jobs can be tested at fixed instants.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// ══════════════════════════════════════════════════════════════════════════════
// DAILY RESET JOB
// ══════════════════════════════════════════════════════════════════════════════

// DailyResetJob zeroes daily progress and credit once per local calendar day.
// The reset is keyed by date, not by catching the midnight minute: the first
// tick of a new day applies it, however late that tick comes.
type DailyResetJob struct {
	service  *tracker.Service
	clock    Clock
	timezone *time.Location
	logger   *slog.Logger
}

// NewDailyResetJob creates the daily reset job.
func NewDailyResetJob(service *tracker.Service, clock Clock, timezone *time.Location, logger *slog.Logger) *DailyResetJob {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DailyResetJob{
		service:  service,
		clock:    clock,
		timezone: timezone,
		logger:   logger.With("job", "daily_reset"),
	}
}

// Name returns the unique name of the job.
func (j *DailyResetJob) Name() string { return "daily_reset" }

// Description returns a human-readable description of the job.
func (j *DailyResetJob) Description() string {
	return "Resets daily progress and credit at the start of each local day"
}

// Run applies the reset for today's local date if it has not happened yet.
func (j *DailyResetJob) Run(ctx context.Context) error {
	date := timeutil.DateKey(j.clock.Now(), j.timezone)

	reset, err := j.service.ResetDaily(ctx, date)
	if err != nil {
		if errors.Is(err, shared.ErrNoActiveGoal) {
			return nil
		}
		// The in-memory reset stands even when persistence failed.
		if errors.Is(err, shared.ErrPersistence) {
			j.logger.Warn("daily reset applied but not persisted", "date", date, "error", err)
			return nil
		}
		return err
	}

	if reset {
		j.logger.Info("daily reset applied", "date", date)
	}
	return nil
}
