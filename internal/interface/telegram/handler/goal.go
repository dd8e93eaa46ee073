package handler

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/fitcrew-hub/fitcrew-bot/internal/application/tracker"
	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/goal"
	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/shared"
	"github.com/fitcrew-hub/fitcrew-bot/internal/interface/telegram/presenter"
)

// DefaultWeeks is the goal duration used when /create_goal omits the weeks
// argument.
const DefaultWeeks = 2

// ══════════════════════════════════════════════════════════════════════════════
// /create_goal
// ══════════════════════════════════════════════════════════════════════════════

// CreateGoalHandler handles /create_goal <name> <exercise:daily,...> [weeks].
type CreateGoalHandler struct {
	Base
}

// NewCreateGoalHandler creates the handler.
func NewCreateGoalHandler(base Base) *CreateGoalHandler {
	return &CreateGoalHandler{Base: base}
}

// Handle creates the singleton goal; the creator joins automatically.
func (h *CreateGoalHandler) Handle(ctx context.Context, req Request) error {
	fields := strings.Fields(req.Args)
	if len(fields) < 2 {
		return req.Reply(ctx, "Usage: /create_goal <name> <exercise:daily_amount,...> [weeks]\nExample: /create_goal spring situps:100,pushups:50 2")
	}

	name := fields[0]
	targets, err := goal.ParseExerciseSpec(fields[1])
	if err != nil {
		return h.replyError(ctx, req, err)
	}

	weeks := DefaultWeeks
	if len(fields) >= 3 {
		weeks, err = strconv.Atoi(fields[2])
		if err != nil {
			return h.replyError(ctx, req, shared.ErrInvalidWeeks)
		}
	}

	g, err := h.Service.CreateGoal(ctx, tracker.CreateParams{
		Name:      name,
		Exercises: targets,
		Weeks:     weeks,
		Creator:   req.UserID,
		ChatID:    req.ChatID,
	})
	if err != nil && !isPersistenceOnly(err) {
		return h.replyError(ctx, req, err)
	}

	return req.Reply(ctx, h.persistWarning(presenter.BuildGoalCreated(g, weeks), err))
}

// ══════════════════════════════════════════════════════════════════════════════
// /delete_goal
// ══════════════════════════════════════════════════════════════════════════════

// DeleteGoalHandler handles /delete_goal.
type DeleteGoalHandler struct {
	Base
}

// NewDeleteGoalHandler creates the handler.
func NewDeleteGoalHandler(base Base) *DeleteGoalHandler {
	return &DeleteGoalHandler{Base: base}
}

// Handle clears the singleton goal.
func (h *DeleteGoalHandler) Handle(ctx context.Context, req Request) error {
	err := h.Service.DeleteGoal(ctx)
	if err != nil && !isPersistenceOnly(err) {
		if errors.Is(err, shared.ErrNoActiveGoal) {
			return req.Reply(ctx, "No active goal to delete!")
		}
		return h.replyError(ctx, req, err)
	}

	return req.Reply(ctx, h.persistWarning("Goal deleted!", err))
}

// ══════════════════════════════════════════════════════════════════════════════
// /view_goal
// ══════════════════════════════════════════════════════════════════════════════

// ViewGoalHandler handles /view_goal.
type ViewGoalHandler struct {
	Base
}

// NewViewGoalHandler creates the handler.
func NewViewGoalHandler(base Base) *ViewGoalHandler {
	return &ViewGoalHandler{Base: base}
}

// Handle renders the current daily targets.
func (h *ViewGoalHandler) Handle(ctx context.Context, req Request) error {
	g, err := h.Service.Snapshot()
	if err != nil {
		return h.replyError(ctx, req, err)
	}
	return req.Reply(ctx, presenter.BuildGoalView(g))
}

// ══════════════════════════════════════════════════════════════════════════════
// /change_goal
// ══════════════════════════════════════════════════════════════════════════════

// ChangeGoalHandler handles /change_goal <exercise:new_daily,...>.
type ChangeGoalHandler struct {
	Base
}

// NewChangeGoalHandler creates the handler.
func NewChangeGoalHandler(base Base) *ChangeGoalHandler {
	return &ChangeGoalHandler{Base: base}
}

// Handle updates daily targets from today onward and announces the change to
// every participant.
func (h *ChangeGoalHandler) Handle(ctx context.Context, req Request) error {
	if !h.Service.Exists() {
		return req.Reply(ctx, "No active goal to modify!")
	}

	newTargets, err := goal.ParseExerciseSpec(req.Args)
	if err != nil {
		return h.replyError(ctx, req, shared.ErrNoValidChanges)
	}

	res, err := h.Service.ChangeTargets(ctx, newTargets)
	if err != nil && !isPersistenceOnly(err) {
		return h.replyError(ctx, req, err)
	}

	changed := make([]string, 0, len(res.Changes))
	for ex := range res.Changes {
		changed = append(changed, ex)
	}
	sort.Strings(changed)

	if replyErr := req.Reply(ctx, h.persistWarning(presenter.BuildChangeReply(res.Changes, changed), err)); replyErr != nil {
		return replyErr
	}

	names := make([]string, 0, len(res.Info.Participants))
	for _, id := range res.Info.Participants {
		names = append(names, tracker.ResolveName(ctx, h.Directory, res.Info.ChatID, id))
	}
	h.announce(ctx, res.Info.ChatID,
		presenter.BuildChangeAnnouncement(res.Info.Name, res.Changes, changed, names))
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// SHARED COMPLETION ANNOUNCEMENT
// ══════════════════════════════════════════════════════════════════════════════

// announceCompletion congratulates a participant who just reached the goal's
// effective days. Fires on every grant at or past the threshold.
func (b Base) announceCompletion(ctx context.Context, chatID int64, actor string, out goal.CreditOutcome) {
	if !out.GoalCompleted {
		return
	}
	b.announce(ctx, chatID, presenter.BuildGoalCompletedAnnouncement(actor, out.CompletedDays))
}
