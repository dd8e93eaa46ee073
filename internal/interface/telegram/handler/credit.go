package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/shared"
	"github.com/fitcrew-hub/fitcrew-bot/internal/interface/telegram/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// /completed_full
// ══════════════════════════════════════════════════════════════════════════════

// CompletedFullHandler handles /completed_full.
type CompletedFullHandler struct {
	Base
}

// NewCompletedFullHandler creates the handler.
func NewCompletedFullHandler(base Base) *CompletedFullHandler {
	return &CompletedFullHandler{Base: base}
}

// Handle credits a full workout day, raising every daily amount to its target.
func (h *CompletedFullHandler) Handle(ctx context.Context, req Request) error {
	res, err := h.Service.CompleteFull(ctx, req.UserID)
	if err != nil && !isPersistenceOnly(err) {
		return h.replyError(ctx, req, err)
	}

	if replyErr := req.Reply(ctx, h.persistWarning("Full workout recorded!", err)); replyErr != nil {
		return replyErr
	}

	others := h.otherNames(ctx, res.Info, req.UserID)
	h.announce(ctx, res.Info.ChatID, presenter.BuildFullCreditAnnouncement(req.ActorName, others))
	h.announceCompletion(ctx, res.Info.ChatID, req.ActorName, res.Outcome)
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// /completed_half
// ══════════════════════════════════════════════════════════════════════════════

// CompletedHalfHandler handles /completed_half.
type CompletedHalfHandler struct {
	Base
}

// NewCompletedHalfHandler creates the handler.
func NewCompletedHalfHandler(base Base) *CompletedHalfHandler {
	return &CompletedHalfHandler{Base: base}
}

// Handle credits half a workout day, adding half of every daily target.
func (h *CompletedHalfHandler) Handle(ctx context.Context, req Request) error {
	res, err := h.Service.CompleteHalf(ctx, req.UserID)
	if err != nil && !isPersistenceOnly(err) {
		return h.replyError(ctx, req, err)
	}

	if replyErr := req.Reply(ctx, h.persistWarning("Half workout recorded!", err)); replyErr != nil {
		return replyErr
	}

	others := h.otherNames(ctx, res.Info, req.UserID)
	h.announce(ctx, res.Info.ChatID, presenter.BuildHalfCreditAnnouncement(req.ActorName, others))
	h.announceCompletion(ctx, res.Info.ChatID, req.ActorName, res.Outcome)
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// /claim_rest
// ══════════════════════════════════════════════════════════════════════════════

// ClaimRestHandler handles /claim_rest.
type ClaimRestHandler struct {
	Base
}

// NewClaimRestHandler creates the handler.
func NewClaimRestHandler(base Base) *ClaimRestHandler {
	return &ClaimRestHandler{Base: base}
}

// Handle consumes one rest day from the sender's quota.
func (h *ClaimRestHandler) Handle(ctx context.Context, req Request) error {
	res, err := h.Service.ClaimRest(ctx, req.UserID)
	if err != nil && !isPersistenceOnly(err) {
		if errors.Is(err, shared.ErrRestExhausted) {
			return req.Reply(ctx, h.restExhaustedReply(req.UserID))
		}
		return h.replyError(ctx, req, err)
	}

	if replyErr := req.Reply(ctx, h.persistWarning("Rest day claimed!", err)); replyErr != nil {
		return replyErr
	}

	others := h.otherNames(ctx, res.Info, req.UserID)
	h.announce(ctx, res.Info.ChatID,
		presenter.BuildRestAnnouncement(req.ActorName, res.Outcome, others))
	return nil
}

// restExhaustedReply renders the exhaustion message with the sender's actual
// usage when the goal is still readable.
func (h *ClaimRestHandler) restExhaustedReply(userID string) string {
	g, err := h.Service.Snapshot()
	if err != nil {
		return "No more rest days available for you!"
	}
	return fmt.Sprintf("No more rest days available for you! You have used %d out of %d.",
		g.RestUsed[userID], g.RestQuota)
}
