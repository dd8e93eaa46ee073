package scheduler

import (
	"fmt"
	"time"
)

// IntervalSchedule schedules a job to run at a fixed interval.
type IntervalSchedule struct {
	Interval time.Duration
}

// NewIntervalSchedule creates a new IntervalSchedule.
func NewIntervalSchedule(interval time.Duration) *IntervalSchedule {
	return &IntervalSchedule{
		Interval: interval,
	}
}

// Next returns the next scheduled time.
func (s *IntervalSchedule) Next(t time.Time) time.Time {
	return t.Add(s.Interval)
}

// String returns the string representation of the schedule.
func (s *IntervalSchedule) String() string {
	return fmt.Sprintf("@every %s", s.Interval.String())
}

// MinuteSchedule fires once per wall-clock minute, aligned to minute
// boundaries. Jobs decide per tick whether the current minute is one they
// act on (midnight for the reset, broadcast hours for the digest), so firing
// on the boundary rather than a drifting interval keeps those checks exact.
type MinuteSchedule struct{}

// NewMinuteSchedule creates a schedule aligned to wall-clock minutes.
func NewMinuteSchedule() *MinuteSchedule {
	return &MinuteSchedule{}
}

// Next returns the start of the minute after t.
func (s *MinuteSchedule) Next(t time.Time) time.Time {
	return t.Truncate(time.Minute).Add(time.Minute)
}

// String returns the string representation of the schedule.
func (s *MinuteSchedule) String() string {
	return "@every minute (aligned)"
}
