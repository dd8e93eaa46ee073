package goal

import "github.com/fitcrew-hub/fitcrew-bot/internal/domain/shared"

// ══════════════════════════════════════════════════════════════════════════════
// DAILY CREDIT STATE MACHINE
// Per participant per calendar day, over {none, half, full}. The credit only
// moves forward within a day; the midnight reset moves it back to none.
// ══════════════════════════════════════════════════════════════════════════════

// Daily credit states.
const (
	CreditNone = 0.0
	CreditHalf = 0.5
	CreditFull = 1.0
)

// CreditOutcome describes a credit grant.
type CreditOutcome struct {
	// NewCredit is the credit state after the grant (half or full).
	NewCredit float64

	// CreditAdded is the fraction added to CompletedDays by this grant.
	CreditAdded float64

	// CompletedDays is the participant's accumulated day credit after the
	// grant.
	CompletedDays float64

	// EffectiveDays is the goal's workout-day count, for rendering.
	EffectiveDays int

	// GoalCompleted is true when CompletedDays has reached EffectiveDays.
	// CompletedDays is never capped, so this keeps firing on every grant
	// once the threshold is crossed.
	GoalCompleted bool
}

// GrantFull credits a full day: every exercise's daily progress is raised to
// its target (the absorbed remainder flows into lifetime progress via the
// two-stage clamp) and the participant receives the remaining day credit.
func (g *Goal) GrantFull(participant string) (CreditOutcome, error) {
	if !g.HasParticipant(participant) {
		return CreditOutcome{}, shared.ErrNotJoined
	}
	if g.DailyCredit[participant] >= CreditFull {
		return CreditOutcome{}, shared.ErrAlreadyFull
	}

	for ex, dailyTarget := range g.DailyTargets {
		addedToDaily := dailyTarget - g.Daily[participant][ex]
		g.Daily[participant][ex] = dailyTarget

		lifetimeTarget := g.LifetimeTargets[ex]
		newLifetime, _ := ApplyDelta(g.Lifetime[participant][ex], lifetimeTarget, addedToDaily)
		g.Lifetime[participant][ex] = newLifetime
	}

	return g.grantCredit(participant, CreditFull), nil
}

// GrantHalf credits half a day: half of each exercise's daily target is added
// to daily progress (clamped) and absorbed into lifetime progress. Rejected
// once the participant already holds a half or full credit.
func (g *Goal) GrantHalf(participant string) (CreditOutcome, error) {
	if !g.HasParticipant(participant) {
		return CreditOutcome{}, shared.ErrNotJoined
	}
	if g.DailyCredit[participant] >= CreditHalf {
		return CreditOutcome{}, shared.ErrAlreadyHalf
	}

	for ex, dailyTarget := range g.DailyTargets {
		newDaily, _ := ApplyDelta(g.Daily[participant][ex], dailyTarget, dailyTarget/2)
		addedToDaily := newDaily - g.Daily[participant][ex]
		g.Daily[participant][ex] = newDaily

		lifetimeTarget := g.LifetimeTargets[ex]
		newLifetime, _ := ApplyDelta(g.Lifetime[participant][ex], lifetimeTarget, addedToDaily)
		g.Lifetime[participant][ex] = newLifetime
	}

	return g.grantCredit(participant, CreditHalf), nil
}

// autoPromote grants a full credit when every exercise's daily progress has
// reached its target and the participant is not yet at full. This is the same
// transition as GrantFull, triggered as a side effect of Record.
func (g *Goal) autoPromote(participant string) (CreditOutcome, bool) {
	if g.DailyCredit[participant] >= CreditFull || !g.allDailyMet(participant) {
		return CreditOutcome{}, false
	}
	return g.grantCredit(participant, CreditFull), true
}

// grantCredit moves the participant to newCredit, accumulating the difference
// into CompletedDays.
func (g *Goal) grantCredit(participant string, newCredit float64) CreditOutcome {
	added := newCredit - g.DailyCredit[participant]
	g.DailyCredit[participant] = newCredit
	g.CompletedDays[participant] += added

	return CreditOutcome{
		NewCredit:     newCredit,
		CreditAdded:   added,
		CompletedDays: g.CompletedDays[participant],
		EffectiveDays: g.EffectiveDays,
		GoalCompleted: g.CompletedDays[participant] >= float64(g.EffectiveDays),
	}
}

// allDailyMet reports whether every exercise's daily progress has reached its
// daily target.
func (g *Goal) allDailyMet(participant string) bool {
	for ex, dailyTarget := range g.DailyTargets {
		if g.Daily[participant][ex] < dailyTarget {
			return false
		}
	}
	return true
}

// ══════════════════════════════════════════════════════════════════════════════
// REST LEDGER
// Independent of the credit state machine: a rest day does not set any credit.
// ══════════════════════════════════════════════════════════════════════════════

// RestOutcome describes a rest-day claim.
type RestOutcome struct {
	Used  int
	Quota int
}

// ClaimRest consumes one rest day from the participant's quota.
func (g *Goal) ClaimRest(participant string) (RestOutcome, error) {
	if !g.HasParticipant(participant) {
		return RestOutcome{}, shared.ErrNotJoined
	}
	if g.RestUsed[participant] >= g.RestQuota {
		return RestOutcome{}, shared.ErrRestExhausted
	}

	g.RestUsed[participant]++

	return RestOutcome{Used: g.RestUsed[participant], Quota: g.RestQuota}, nil
}
