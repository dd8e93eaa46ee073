package handler

import (
	"context"
	"fmt"

	"github.com/fitcrew-hub/fitcrew-bot/internal/application/tracker"
	"github.com/fitcrew-hub/fitcrew-bot/internal/interface/telegram/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// /join_goal
// ══════════════════════════════════════════════════════════════════════════════

// JoinGoalHandler handles /join_goal.
type JoinGoalHandler struct {
	Base
}

// NewJoinGoalHandler creates the handler.
func NewJoinGoalHandler(base Base) *JoinGoalHandler {
	return &JoinGoalHandler{Base: base}
}

// Handle adds the sender as a participant with zeroed progress.
func (h *JoinGoalHandler) Handle(ctx context.Context, req Request) error {
	res, err := h.Service.JoinGoal(ctx, req.UserID)
	if err != nil && !isPersistenceOnly(err) {
		return h.replyError(ctx, req, err)
	}

	return req.Reply(ctx, h.persistWarning(fmt.Sprintf("Joined %q!", res.Info.Name), err))
}

// ══════════════════════════════════════════════════════════════════════════════
// /list_participants
// ══════════════════════════════════════════════════════════════════════════════

// ListParticipantsHandler handles /list_participants.
type ListParticipantsHandler struct {
	Base
}

// NewListParticipantsHandler creates the handler.
func NewListParticipantsHandler(base Base) *ListParticipantsHandler {
	return &ListParticipantsHandler{Base: base}
}

// Handle lists everyone who has joined, in join order.
func (h *ListParticipantsHandler) Handle(ctx context.Context, req Request) error {
	g, err := h.Service.Snapshot()
	if err != nil {
		return h.replyError(ctx, req, err)
	}

	names := tracker.ResolveNames(ctx, h.Directory, g.ChatID, g.Participants)
	return req.Reply(ctx, presenter.BuildParticipantList(g, names))
}
