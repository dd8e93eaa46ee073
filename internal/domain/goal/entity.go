// Package goal contains the shared fitness goal aggregate and its rules:
// per-exercise daily targets, lifetime totals, the daily completion-credit
// state machine and the rest-day ledger. All mutation methods assume the
// caller holds the store's exclusive lock; the package itself has no
// synchronisation.
package goal

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/shared"
)

// A goal week is 5 workout days plus 2 rest days.
const (
	WorkoutDaysPerWeek = 5
	RestDaysPerWeek    = 2
)

// Spec describes a goal to be created.
type Spec struct {
	// Name is the display name of the goal.
	Name string

	// DailyTargets maps exercise name to the per-day target amount.
	DailyTargets map[string]float64

	// Weeks is the goal duration; must be at least 1.
	Weeks int

	// Creator is the participant ID of the goal creator, who joins
	// automatically.
	Creator string

	// ChatID is the chat where broadcasts for this goal are sent.
	ChatID int64
}

// Goal is the singleton aggregate. All per-participant maps are keyed by the
// string form of the platform user ID and gain an entry on join; entries are
// never removed while the goal exists.
type Goal struct {
	ID   uuid.UUID
	Name string

	// DailyTargets may drift from LifetimeTargets/EffectiveDays via
	// ChangeTargets; LifetimeTargets are fixed at creation.
	DailyTargets    map[string]float64
	LifetimeTargets map[string]float64

	EffectiveDays int
	RestQuota     int

	// Participants preserves join order for rendering.
	Participants []string

	Lifetime      map[string]map[string]float64
	Daily         map[string]map[string]float64
	DailyCredit   map[string]float64
	CompletedDays map[string]float64
	RestUsed      map[string]int

	// LastResetDate is the local calendar date (YYYY-MM-DD, goal timezone)
	// of the most recent daily reset; empty if none has happened yet.
	LastResetDate string

	// ChatID is the broadcast destination bound at creation time.
	ChatID int64

	CreatedAt time.Time
}

// New creates a goal from a spec. The creator joins immediately.
func New(spec Spec) (*Goal, error) {
	if spec.Weeks < 1 {
		return nil, shared.ErrInvalidWeeks
	}
	if len(spec.DailyTargets) == 0 {
		return nil, shared.ErrInvalidExerciseSpec
	}
	for _, amount := range spec.DailyTargets {
		if amount <= 0 {
			return nil, shared.ErrInvalidExerciseSpec
		}
	}

	effectiveDays := spec.Weeks * WorkoutDaysPerWeek
	daily := make(map[string]float64, len(spec.DailyTargets))
	lifetime := make(map[string]float64, len(spec.DailyTargets))
	for ex, amount := range spec.DailyTargets {
		daily[ex] = amount
		lifetime[ex] = amount * float64(effectiveDays)
	}

	g := &Goal{
		ID:              uuid.New(),
		Name:            spec.Name,
		DailyTargets:    daily,
		LifetimeTargets: lifetime,
		EffectiveDays:   effectiveDays,
		RestQuota:       spec.Weeks * RestDaysPerWeek,
		Participants:    make([]string, 0, 1),
		Lifetime:        make(map[string]map[string]float64),
		Daily:           make(map[string]map[string]float64),
		DailyCredit:     make(map[string]float64),
		CompletedDays:   make(map[string]float64),
		RestUsed:        make(map[string]int),
		ChatID:          spec.ChatID,
		CreatedAt:       time.Now().UTC(),
	}

	if spec.Creator != "" {
		if err := g.Join(spec.Creator); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Join adds a participant with zeroed progress.
func (g *Goal) Join(participant string) error {
	if g.HasParticipant(participant) {
		return shared.ErrAlreadyJoined
	}

	g.Participants = append(g.Participants, participant)
	g.Lifetime[participant] = zeroedProgress(g.LifetimeTargets)
	g.Daily[participant] = zeroedProgress(g.LifetimeTargets)
	g.DailyCredit[participant] = CreditNone
	g.CompletedDays[participant] = 0
	g.RestUsed[participant] = 0

	return nil
}

// HasParticipant reports whether the participant has joined.
func (g *Goal) HasParticipant(participant string) bool {
	_, ok := g.Lifetime[participant]
	return ok
}

// HasExercise reports whether the exercise is part of the goal.
func (g *Goal) HasExercise(exercise string) bool {
	_, ok := g.LifetimeTargets[exercise]
	return ok
}

// Exercises returns the exercise names in stable (sorted) order.
func (g *Goal) Exercises() []string {
	names := make([]string, 0, len(g.DailyTargets))
	for ex := range g.DailyTargets {
		names = append(names, ex)
	}
	sort.Strings(names)
	return names
}

// RecordOutcome describes the effect of recording a workout.
type RecordOutcome struct {
	Exercise       string
	AddedToDaily   float64
	NewDaily       float64
	DailyTarget    float64
	NewLifetime    float64
	LifetimeTarget float64

	// Credit is set when the recording auto-promoted the participant to a
	// full daily credit.
	Credit *CreditOutcome
}

// Record applies an exercise amount using the two-stage clamp: the daily
// bucket absorbs at most its remaining headroom, and lifetime progress
// advances by exactly the absorbed amount, clamped against the lifetime
// target. A recording that brings every exercise to its daily target
// auto-promotes the participant to a full daily credit.
func (g *Goal) Record(participant, exercise string, amount float64) (RecordOutcome, error) {
	if !g.HasParticipant(participant) {
		return RecordOutcome{}, shared.ErrNotJoined
	}
	if !g.HasExercise(exercise) {
		return RecordOutcome{}, shared.ErrUnknownExercise
	}

	dailyTarget := g.DailyTargets[exercise]
	newDaily, err := ApplyDelta(g.Daily[participant][exercise], dailyTarget, amount)
	if err != nil {
		return RecordOutcome{}, err
	}

	addedToDaily := newDaily - g.Daily[participant][exercise]
	g.Daily[participant][exercise] = newDaily

	lifetimeTarget := g.LifetimeTargets[exercise]
	newLifetime, _ := ApplyDelta(g.Lifetime[participant][exercise], lifetimeTarget, addedToDaily)
	g.Lifetime[participant][exercise] = newLifetime

	out := RecordOutcome{
		Exercise:       exercise,
		AddedToDaily:   addedToDaily,
		NewDaily:       newDaily,
		DailyTarget:    dailyTarget,
		NewLifetime:    newLifetime,
		LifetimeTarget: lifetimeTarget,
	}

	if credit, promoted := g.autoPromote(participant); promoted {
		out.Credit = &credit
	}

	return out, nil
}

// FixOutcome describes the effect of a daily progress correction.
type FixOutcome struct {
	Exercise       string
	AdjustedDaily  float64
	DailyTarget    float64
	NewLifetime    float64
	LifetimeTarget float64
}

// Fix replaces the participant's daily amount for an exercise and applies the
// signed delta to lifetime progress with its own clamp. Unlike Record this
// can move lifetime progress downward.
func (g *Goal) Fix(participant, exercise string, newDaily float64) (FixOutcome, error) {
	if !g.HasParticipant(participant) {
		return FixOutcome{}, shared.ErrNotJoined
	}
	if !g.HasExercise(exercise) {
		return FixOutcome{}, shared.ErrUnknownExercise
	}
	if newDaily < 0 {
		return FixOutcome{}, shared.ErrInvalidAmount
	}

	dailyTarget := g.DailyTargets[exercise]
	adjusted, delta := FixDaily(g.Daily[participant][exercise], dailyTarget, newDaily)
	g.Daily[participant][exercise] = adjusted

	lifetimeTarget := g.LifetimeTargets[exercise]
	newLifetime := clamp(g.Lifetime[participant][exercise]+delta, 0, lifetimeTarget)
	g.Lifetime[participant][exercise] = newLifetime

	return FixOutcome{
		Exercise:       exercise,
		AdjustedDaily:  adjusted,
		DailyTarget:    dailyTarget,
		NewLifetime:    newLifetime,
		LifetimeTarget: lifetimeTarget,
	}, nil
}

// TargetChange records one daily target update.
type TargetChange struct {
	Old float64
	New float64
}

// ChangeTargets updates daily targets for known exercises whose new value
// actually differs, and re-clamps every participant's current daily progress
// downward where it now exceeds the new target. Lifetime targets and lifetime
// progress are never touched.
func (g *Goal) ChangeTargets(newTargets map[string]float64) (map[string]TargetChange, error) {
	changes := make(map[string]TargetChange)
	for ex, newDaily := range newTargets {
		old, ok := g.DailyTargets[ex]
		if !ok || newDaily == old {
			continue
		}
		changes[ex] = TargetChange{Old: old, New: newDaily}
	}
	if len(changes) == 0 {
		return nil, shared.ErrNoValidChanges
	}

	for ex, change := range changes {
		g.DailyTargets[ex] = change.New
	}
	for _, participant := range g.Participants {
		for ex := range changes {
			if g.Daily[participant][ex] > g.DailyTargets[ex] {
				g.Daily[participant][ex] = g.DailyTargets[ex]
			}
		}
	}

	return changes, nil
}

// ResetDaily zeroes every participant's daily progress and credit for a new
// local calendar day. It is idempotent per date: a second call with the same
// date is a no-op and returns false. Lifetime progress, completed days and
// rest usage are untouched.
func (g *Goal) ResetDaily(date string) bool {
	if g.LastResetDate == date {
		return false
	}

	for _, participant := range g.Participants {
		g.Daily[participant] = zeroedProgress(g.LifetimeTargets)
		g.DailyCredit[participant] = CreditNone
	}
	g.LastResetDate = date

	return true
}

// Clone returns a deep copy, used to render views outside the store lock.
func (g *Goal) Clone() *Goal {
	c := *g
	c.DailyTargets = cloneAmounts(g.DailyTargets)
	c.LifetimeTargets = cloneAmounts(g.LifetimeTargets)
	c.Participants = append([]string(nil), g.Participants...)
	c.Lifetime = cloneProgress(g.Lifetime)
	c.Daily = cloneProgress(g.Daily)
	c.DailyCredit = cloneAmounts(g.DailyCredit)
	c.CompletedDays = cloneAmounts(g.CompletedDays)
	c.RestUsed = make(map[string]int, len(g.RestUsed))
	for p, used := range g.RestUsed {
		c.RestUsed[p] = used
	}
	return &c
}

// ══════════════════════════════════════════════════════════════════════════════
// EXERCISE SPEC PARSING
// ══════════════════════════════════════════════════════════════════════════════

// ParseExerciseSpec parses a comma-separated "exercise:amount" list, e.g.
// "situps:100,pushups:50". Every pair must be well formed with a positive
// amount.
func ParseExerciseSpec(s string) (map[string]float64, error) {
	targets := make(map[string]float64)

	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, shared.ErrInvalidExerciseSpec
		}
		name = strings.TrimSpace(name)
		amount, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if name == "" || err != nil || amount <= 0 {
			return nil, shared.ErrInvalidExerciseSpec
		}
		targets[name] = amount
	}

	if len(targets) == 0 {
		return nil, shared.ErrInvalidExerciseSpec
	}

	return targets, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

func zeroedProgress(targets map[string]float64) map[string]float64 {
	zeroed := make(map[string]float64, len(targets))
	for ex := range targets {
		zeroed[ex] = 0
	}
	return zeroed
}

func cloneAmounts(m map[string]float64) map[string]float64 {
	c := make(map[string]float64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneProgress(m map[string]map[string]float64) map[string]map[string]float64 {
	c := make(map[string]map[string]float64, len(m))
	for p, amounts := range m {
		c[p] = cloneAmounts(amounts)
	}
	return c
}
