package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fitcrew-hub/fitcrew-bot/internal/application/tracker"
	"github.com/fitcrew-hub/fitcrew-bot/internal/interface/telegram/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// /record_workout
// ══════════════════════════════════════════════════════════════════════════════

// RecordWorkoutHandler handles /record_workout <exercise> <amount>.
type RecordWorkoutHandler struct {
	Base
}

// NewRecordWorkoutHandler creates the handler.
func NewRecordWorkoutHandler(base Base) *RecordWorkoutHandler {
	return &RecordWorkoutHandler{Base: base}
}

// Handle records an exercise amount and announces the lifetime status. When
// the recording completes the sender's full day, that is announced too.
func (h *RecordWorkoutHandler) Handle(ctx context.Context, req Request) error {
	fields := strings.Fields(req.Args)
	if len(fields) != 2 {
		return req.Reply(ctx, "Usage: /record_workout <exercise> <amount>")
	}
	exercise := fields[0]
	amount, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return req.Reply(ctx, "Usage: /record_workout <exercise> <amount>")
	}

	res, err := h.Service.RecordWorkout(ctx, req.UserID, exercise, amount)
	if err != nil && !isPersistenceOnly(err) {
		return h.replyError(ctx, req, err)
	}

	if replyErr := req.Reply(ctx, h.persistWarning("Workout recorded!", err)); replyErr != nil {
		return replyErr
	}

	others := h.otherNames(ctx, res.Info, req.UserID)
	h.announce(ctx, res.Info.ChatID,
		presenter.BuildRecordAnnouncement(req.ActorName, res.Info.Name, res.Outcome, others))

	if res.Outcome.Credit != nil {
		h.announce(ctx, res.Info.ChatID,
			presenter.BuildAutoPromoteAnnouncement(req.ActorName, others))
		h.announceCompletion(ctx, res.Info.ChatID, req.ActorName, *res.Outcome.Credit)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// /fix_progress
// ══════════════════════════════════════════════════════════════════════════════

// FixProgressHandler handles /fix_progress <exercise> <new_daily>.
type FixProgressHandler struct {
	Base
}

// NewFixProgressHandler creates the handler.
func NewFixProgressHandler(base Base) *FixProgressHandler {
	return &FixProgressHandler{Base: base}
}

// Handle replaces the sender's daily amount for an exercise, moving lifetime
// progress by the signed difference.
func (h *FixProgressHandler) Handle(ctx context.Context, req Request) error {
	fields := strings.Fields(req.Args)
	if len(fields) != 2 {
		return req.Reply(ctx, "Usage: /fix_progress <exercise> <new_daily>")
	}
	exercise := fields[0]
	newDaily, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return req.Reply(ctx, "Usage: /fix_progress <exercise> <new_daily>")
	}

	res, err := h.Service.FixProgress(ctx, req.UserID, exercise, newDaily)
	if err != nil && !isPersistenceOnly(err) {
		return h.replyError(ctx, req, err)
	}

	text := fmt.Sprintf("Fixed %s daily to %s. New total: %s",
		res.Outcome.Exercise,
		presenter.FormatAmount(res.Outcome.AdjustedDaily),
		presenter.FormatTotalStatus(res.Outcome.NewLifetime, res.Outcome.LifetimeTarget),
	)
	return req.Reply(ctx, h.persistWarning(text, err))
}

// ══════════════════════════════════════════════════════════════════════════════
// /view_progress
// ══════════════════════════════════════════════════════════════════════════════

// ViewProgressHandler handles /view_progress me|everyone.
type ViewProgressHandler struct {
	Base
}

// NewViewProgressHandler creates the handler.
func NewViewProgressHandler(base Base) *ViewProgressHandler {
	return &ViewProgressHandler{Base: base}
}

// Handle renders either the sender's progress or everyone's.
func (h *ViewProgressHandler) Handle(ctx context.Context, req Request) error {
	scope := strings.ToLower(strings.TrimSpace(req.Args))

	g, err := h.Service.Snapshot()
	if err != nil {
		return h.replyError(ctx, req, err)
	}

	switch scope {
	case "me":
		if !g.HasParticipant(req.UserID) {
			return req.Reply(ctx, "Not joined!")
		}
		return req.Reply(ctx, presenter.BuildMyProgress(g, req.UserID))
	case "everyone":
		names := tracker.ResolveNames(ctx, h.Directory, g.ChatID, g.Participants)
		return req.Reply(ctx, presenter.BuildEveryoneProgress(g, names))
	default:
		return req.Reply(ctx, "Invalid scope! Use me or everyone.")
	}
}
