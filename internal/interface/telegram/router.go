// Package telegram implements the Telegram command surface of the fitness bot.
package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/fitcrew-hub/fitcrew-bot/internal/infrastructure/external/telegram"
	"github.com/fitcrew-hub/fitcrew-bot/internal/interface/telegram/handler"
)

// Router routes Telegram updates to command handlers.
type Router struct {
	logger *slog.Logger

	mu       sync.RWMutex
	handlers map[string]handler.Handler
}

// NewRouter creates a new router.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		logger:   logger.With("component", "router"),
		handlers: make(map[string]handler.Handler),
	}
}

// Register registers a handler for a command (without the leading "/").
func (r *Router) Register(command string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[command] = h
}

// Dispatch routes an update carrying a command message to its handler.
// Non-command messages and unknown commands are ignored.
func (r *Router) Dispatch(ctx context.Context, client *telegram.Client, update *telegram.Update) error {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return nil
	}

	command := telegram.ExtractCommand(msg)
	if command == "" {
		return nil
	}

	r.mu.RLock()
	h, ok := r.handlers[command]
	r.mu.RUnlock()

	if !ok {
		r.logger.Debug("no handler for command", "command", command)
		return nil
	}

	chatID := msg.Chat.ID
	req := handler.Request{
		UserID:    strconv.FormatInt(msg.From.ID, 10),
		ChatID:    chatID,
		Args:      telegram.ExtractCommandArgs(msg),
		ActorName: msg.From.FullName(),
		Reply: func(ctx context.Context, text string) error {
			_, err := client.SendText(ctx, chatID, text)
			return err
		},
	}

	r.logger.Debug("dispatching command",
		"command", command,
		"user_id", req.UserID,
		"chat_id", req.ChatID,
	)

	return h.Handle(ctx, req)
}
