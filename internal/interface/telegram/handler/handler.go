// Package handler contains the Telegram command handlers. Each handler
// follows the same pattern: parse arguments, call the application layer, map
// domain errors to reply texts, and announce multi-participant activity to
// the goal chat.
package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fitcrew-hub/fitcrew-bot/internal/application/tracker"
	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/shared"
)

// Request carries one parsed command invocation. The router builds it from
// the incoming update; handlers never see transport types.
type Request struct {
	// UserID is the sender's platform user ID in string form, the key used
	// throughout the goal's per-participant maps.
	UserID string

	// ChatID is the chat the command was sent in.
	ChatID int64

	// Args is the text after the command.
	Args string

	// ActorName is the sender's display name taken from the message itself.
	ActorName string

	// Reply sends a text response back to the originating chat.
	Reply func(ctx context.Context, text string) error
}

// Handler processes one command invocation.
type Handler interface {
	Handle(ctx context.Context, req Request) error
}

// Base bundles the dependencies shared by every handler.
type Base struct {
	Service   *tracker.Service
	Directory tracker.Directory
	Notifier  tracker.Notifier
	Logger    *slog.Logger
}

func (b Base) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR → REPLY TEXT MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// errorReplies maps each command-failure error to the text sent back to the
// participant.
var errorReplies = []struct {
	err  error
	text string
}{
	{shared.ErrGoalAlreadyExists, "A goal already exists! Delete it first with /delete_goal."},
	{shared.ErrNoActiveGoal, "No active goal!"},
	{shared.ErrInvalidWeeks, "Weeks must be at least 1!"},
	{shared.ErrInvalidExerciseSpec, "Add at least one valid exercise:daily_amount pair!"},
	{shared.ErrAlreadyJoined, "Already joined!"},
	{shared.ErrNotJoined, "Not joined!"},
	{shared.ErrUnknownExercise, "Not joined or invalid exercise!"},
	{shared.ErrInvalidAmount, "Amount must be positive!"},
	{shared.ErrAlreadyFull, "You have already completed a full day today!"},
	{shared.ErrAlreadyHalf, "You have already completed at least half today! Use /completed_full if upgrading."},
	{shared.ErrRestExhausted, "No more rest days available for you!"},
	{shared.ErrNoValidChanges, "No valid changes detected! Use format exercise:new_daily_target."},
}

// replyForError returns the reply text for a known command failure, or ""
// when the error is not a user-facing one.
func replyForError(err error) string {
	for _, mapping := range errorReplies {
		if errors.Is(err, mapping.err) {
			return mapping.text
		}
	}
	return ""
}

// replyError maps a command failure to its reply text and sends it. Unknown
// errors get a generic reply and are logged.
func (b Base) replyError(ctx context.Context, req Request, err error) error {
	text := replyForError(err)
	if text == "" {
		b.logger().Error("command failed", "error", err)
		text = "Something went wrong, please try again."
	}
	return req.Reply(ctx, text)
}

// persistWarning appends a storage warning when the command succeeded in
// memory but could not be saved. The outcome stands either way.
func (b Base) persistWarning(text string, err error) string {
	if err != nil && errors.Is(err, shared.ErrPersistence) {
		b.logger().Warn("command applied but not persisted", "error", err)
		return text + "\n(Warning: progress could not be saved to storage.)"
	}
	return text
}

// isPersistenceOnly reports whether the command itself succeeded and only the
// save failed.
func isPersistenceOnly(err error) bool {
	return err != nil && errors.Is(err, shared.ErrPersistence)
}

// ══════════════════════════════════════════════════════════════════════════════
// ANNOUNCEMENT HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// announce posts to the goal chat. Announcement failures never fail the
// command; the sender already got their reply.
func (b Base) announce(ctx context.Context, chatID int64, text string) {
	if err := b.Notifier.Broadcast(ctx, chatID, text); err != nil {
		b.logger().Warn("announcement failed", "chat_id", chatID, "error", err)
	}
}

// otherNames resolves display names of all participants except the actor,
// preserving join order.
func (b Base) otherNames(ctx context.Context, info tracker.GoalInfo, actorID string) []string {
	names := make([]string, 0, len(info.Participants))
	for _, id := range info.Participants {
		if id == actorID {
			continue
		}
		names = append(names, tracker.ResolveName(ctx, b.Directory, info.ChatID, id))
	}
	return names
}
