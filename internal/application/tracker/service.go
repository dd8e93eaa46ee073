package tracker

import (
	"context"
	"log/slog"

	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/goal"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMMAND OPERATIONS
// One method per user-issued command. Validation errors are returned before
// any mutation; a shared.ErrPersistenceFailure is returned after the mutation
// has taken effect, together with the outcome, so callers can still report
// success to the participant.
// ══════════════════════════════════════════════════════════════════════════════

// Service exposes the goal commands to the chat surface and the scheduler.
type Service struct {
	store  *Store
	logger *slog.Logger
}

// NewService creates the command service.
func NewService(store *Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		logger: logger.With("component", "tracker"),
	}
}

// GoalInfo carries goal context needed to render replies and announcements.
type GoalInfo struct {
	Name         string
	ChatID       int64
	Participants []string
}

func info(g *goal.Goal) GoalInfo {
	return GoalInfo{
		Name:         g.Name,
		ChatID:       g.ChatID,
		Participants: append([]string(nil), g.Participants...),
	}
}

// CreateParams describes a goal to create.
type CreateParams struct {
	Name      string
	Exercises map[string]float64
	Weeks     int
	Creator   string
	ChatID    int64
}

// CreateGoal creates the singleton goal; the creator joins automatically.
func (s *Service) CreateGoal(ctx context.Context, p CreateParams) (*goal.Goal, error) {
	g, err := s.store.Create(ctx, goal.Spec{
		Name:         p.Name,
		DailyTargets: p.Exercises,
		Weeks:        p.Weeks,
		Creator:      p.Creator,
		ChatID:       p.ChatID,
	})
	if g != nil {
		s.logger.Info("goal created",
			"goal", g.Name,
			"weeks", p.Weeks,
			"effective_days", g.EffectiveDays,
			"exercises", len(g.DailyTargets),
		)
	}
	return g, err
}

// DeleteGoal clears the singleton goal.
func (s *Service) DeleteGoal(ctx context.Context) error {
	err := s.store.Delete(ctx)
	if err == nil {
		s.logger.Info("goal deleted")
	}
	return err
}

// Exists reports whether a goal is active.
func (s *Service) Exists() bool {
	return s.store.Exists()
}

// Snapshot returns a deep copy of the goal for rendering.
func (s *Service) Snapshot() (*goal.Goal, error) {
	return s.store.Snapshot()
}

// JoinResult describes a successful join.
type JoinResult struct {
	Info GoalInfo
}

// JoinGoal adds the participant with zeroed progress.
func (s *Service) JoinGoal(ctx context.Context, participant string) (JoinResult, error) {
	var res JoinResult
	err := s.store.WithGoal(ctx, func(g *goal.Goal) error {
		if err := g.Join(participant); err != nil {
			return err
		}
		res.Info = info(g)
		return nil
	})
	return res, err
}

// RecordResult describes the effect of recording a workout.
type RecordResult struct {
	Info    GoalInfo
	Outcome goal.RecordOutcome
}

// RecordWorkout applies the two-stage clamp for one exercise amount. The
// outcome carries the auto-promotion credit when the recording completed the
// participant's day.
func (s *Service) RecordWorkout(ctx context.Context, participant, exercise string, amount float64) (RecordResult, error) {
	var res RecordResult
	err := s.store.WithGoal(ctx, func(g *goal.Goal) error {
		out, err := g.Record(participant, exercise, amount)
		if err != nil {
			return err
		}
		res.Info = info(g)
		res.Outcome = out
		return nil
	})
	return res, err
}

// FixResult describes a daily progress correction.
type FixResult struct {
	Info    GoalInfo
	Outcome goal.FixOutcome
}

// FixProgress replaces the participant's daily amount for an exercise,
// adjusting lifetime progress by the signed difference.
func (s *Service) FixProgress(ctx context.Context, participant, exercise string, newDaily float64) (FixResult, error) {
	var res FixResult
	err := s.store.WithGoal(ctx, func(g *goal.Goal) error {
		out, err := g.Fix(participant, exercise, newDaily)
		if err != nil {
			return err
		}
		res.Info = info(g)
		res.Outcome = out
		return nil
	})
	return res, err
}

// CreditResult describes an explicit credit grant.
type CreditResult struct {
	Info    GoalInfo
	Outcome goal.CreditOutcome
}

// CompleteFull credits a full workout day.
func (s *Service) CompleteFull(ctx context.Context, participant string) (CreditResult, error) {
	return s.grantCredit(ctx, participant, (*goal.Goal).GrantFull)
}

// CompleteHalf credits half a workout day.
func (s *Service) CompleteHalf(ctx context.Context, participant string) (CreditResult, error) {
	return s.grantCredit(ctx, participant, (*goal.Goal).GrantHalf)
}

func (s *Service) grantCredit(ctx context.Context, participant string, grant func(*goal.Goal, string) (goal.CreditOutcome, error)) (CreditResult, error) {
	var res CreditResult
	err := s.store.WithGoal(ctx, func(g *goal.Goal) error {
		out, err := grant(g, participant)
		if err != nil {
			return err
		}
		res.Info = info(g)
		res.Outcome = out
		return nil
	})
	return res, err
}

// RestResult describes a rest-day claim.
type RestResult struct {
	Info    GoalInfo
	Outcome goal.RestOutcome
}

// ClaimRest consumes one rest day from the participant's quota.
func (s *Service) ClaimRest(ctx context.Context, participant string) (RestResult, error) {
	var res RestResult
	err := s.store.WithGoal(ctx, func(g *goal.Goal) error {
		out, err := g.ClaimRest(participant)
		if err != nil {
			return err
		}
		res.Info = info(g)
		res.Outcome = out
		return nil
	})
	return res, err
}

// ChangeResult describes a daily target change.
type ChangeResult struct {
	Info    GoalInfo
	Changes map[string]goal.TargetChange
}

// ChangeTargets updates daily targets and re-clamps current daily progress.
// Lifetime targets and progress are untouched.
func (s *Service) ChangeTargets(ctx context.Context, newTargets map[string]float64) (ChangeResult, error) {
	var res ChangeResult
	err := s.store.WithGoal(ctx, func(g *goal.Goal) error {
		changes, err := g.ChangeTargets(newTargets)
		if err != nil {
			return err
		}
		res.Info = info(g)
		res.Changes = changes
		return nil
	})
	return res, err
}

// ResetDaily zeroes all participants' daily progress and credit for the given
// local calendar date. Returns false without touching storage when the date
// has already been reset (the scheduler calls this every minute).
func (s *Service) ResetDaily(ctx context.Context, date string) (bool, error) {
	needsReset := false
	if err := s.store.View(func(g *goal.Goal) {
		needsReset = g.LastResetDate != date
	}); err != nil {
		return false, err
	}
	if !needsReset {
		return false, nil
	}

	reset := false
	err := s.store.WithGoal(ctx, func(g *goal.Goal) error {
		reset = g.ResetDaily(date)
		return nil
	})
	if reset {
		s.logger.Info("daily progress reset", "date", date)
	}
	return reset, err
}
