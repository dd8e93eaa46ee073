package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/goal"
	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/shared"
)

// GoalRepository persists the singleton goal as a JSONB document.
type GoalRepository struct {
	conn *Connection
}

// NewGoalRepository creates a repository over the given connection.
func NewGoalRepository(conn *Connection) *GoalRepository {
	return &GoalRepository{conn: conn}
}

// goalDocument is the persisted form of the goal. Per-participant maps are
// keyed by the string form of the platform user ID; the document must
// round-trip losslessly across restarts.
type goalDocument struct {
	ID              uuid.UUID                     `json:"id"`
	Name            string                        `json:"name"`
	DailyTargets    map[string]float64            `json:"daily_targets"`
	LifetimeTargets map[string]float64            `json:"lifetime_targets"`
	EffectiveDays   int                           `json:"effective_days"`
	RestQuota       int                           `json:"rest_quota"`
	Participants    []string                      `json:"participants"`
	Lifetime        map[string]map[string]float64 `json:"total_progress"`
	Daily           map[string]map[string]float64 `json:"daily_progress"`
	DailyCredit     map[string]float64            `json:"daily_credit"`
	CompletedDays   map[string]float64            `json:"completed_days"`
	RestUsed        map[string]int                `json:"rest_used"`
	LastResetDate   string                        `json:"last_reset,omitempty"`
	ChatID          int64                         `json:"chat_id"`
	CreatedAt       time.Time                     `json:"created_at"`
}

func toDocument(g *goal.Goal) goalDocument {
	return goalDocument{
		ID:              g.ID,
		Name:            g.Name,
		DailyTargets:    g.DailyTargets,
		LifetimeTargets: g.LifetimeTargets,
		EffectiveDays:   g.EffectiveDays,
		RestQuota:       g.RestQuota,
		Participants:    g.Participants,
		Lifetime:        g.Lifetime,
		Daily:           g.Daily,
		DailyCredit:     g.DailyCredit,
		CompletedDays:   g.CompletedDays,
		RestUsed:        g.RestUsed,
		LastResetDate:   g.LastResetDate,
		ChatID:          g.ChatID,
		CreatedAt:       g.CreatedAt,
	}
}

func (d goalDocument) toGoal() *goal.Goal {
	return &goal.Goal{
		ID:              d.ID,
		Name:            d.Name,
		DailyTargets:    d.DailyTargets,
		LifetimeTargets: d.LifetimeTargets,
		EffectiveDays:   d.EffectiveDays,
		RestQuota:       d.RestQuota,
		Participants:    d.Participants,
		Lifetime:        d.Lifetime,
		Daily:           d.Daily,
		DailyCredit:     d.DailyCredit,
		CompletedDays:   d.CompletedDays,
		RestUsed:        d.RestUsed,
		LastResetDate:   d.LastResetDate,
		ChatID:          d.ChatID,
		CreatedAt:       d.CreatedAt,
	}
}

// Load returns the persisted goal, or shared.ErrNoActiveGoal when the slot is
// empty.
func (r *GoalRepository) Load(ctx context.Context) (*goal.Goal, error) {
	var raw []byte
	err := r.conn.Pool().QueryRow(ctx,
		`SELECT document FROM goal_state WHERE slot = 1`,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNoActiveGoal
		}
		return nil, fmt.Errorf("postgres: load goal: %w", err)
	}

	var doc goalDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("postgres: decode goal document: %w", err)
	}

	return doc.toGoal(), nil
}

// Save upserts the goal document into the single slot.
func (r *GoalRepository) Save(ctx context.Context, g *goal.Goal) error {
	raw, err := json.Marshal(toDocument(g))
	if err != nil {
		return fmt.Errorf("postgres: encode goal document: %w", err)
	}

	_, err = r.conn.Pool().Exec(ctx, `
		INSERT INTO goal_state (slot, document, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (slot) DO UPDATE SET document = $1, updated_at = NOW()
	`, raw)
	if err != nil {
		return fmt.Errorf("postgres: save goal: %w", err)
	}
	return nil
}

// Clear empties the goal slot.
func (r *GoalRepository) Clear(ctx context.Context) error {
	if _, err := r.conn.Pool().Exec(ctx, `DELETE FROM goal_state WHERE slot = 1`); err != nil {
		return fmt.Errorf("postgres: clear goal: %w", err)
	}
	return nil
}
