package telegram

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/fitcrew-hub/fitcrew-bot/internal/application/tracker"
	"github.com/fitcrew-hub/fitcrew-bot/internal/infrastructure/external/telegram"
	"github.com/fitcrew-hub/fitcrew-bot/internal/interface/telegram/handler"
)

// ══════════════════════════════════════════════════════════════════════════════
// BOT
// Orchestrates the command surface: wires handlers, runs long polling and
// dispatches each update through the router.
// ══════════════════════════════════════════════════════════════════════════════

// Dependencies contains everything the command handlers need.
type Dependencies struct {
	Service   *tracker.Service
	Directory tracker.Directory
	Notifier  tracker.Notifier
	Logger    *slog.Logger
}

// Bot is the main Telegram bot controller.
type Bot struct {
	client *telegram.Client
	router *Router
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewBot creates the bot and registers all command handlers.
func NewBot(client *telegram.Client, deps Dependencies) *Bot {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := NewRouter(logger)
	registerHandlers(router, deps)

	return &Bot{
		client: client,
		router: router,
		logger: logger.With("component", "bot"),
	}
}

// registerHandlers binds every goal command to its handler.
func registerHandlers(router *Router, deps Dependencies) {
	base := handler.Base{
		Service:   deps.Service,
		Directory: deps.Directory,
		Notifier:  deps.Notifier,
		Logger:    deps.Logger,
	}

	router.Register("create_goal", handler.NewCreateGoalHandler(base))
	router.Register("delete_goal", handler.NewDeleteGoalHandler(base))
	router.Register("view_goal", handler.NewViewGoalHandler(base))
	router.Register("change_goal", handler.NewChangeGoalHandler(base))
	router.Register("join_goal", handler.NewJoinGoalHandler(base))
	router.Register("list_participants", handler.NewListParticipantsHandler(base))
	router.Register("record_workout", handler.NewRecordWorkoutHandler(base))
	router.Register("fix_progress", handler.NewFixProgressHandler(base))
	router.Register("view_progress", handler.NewViewProgressHandler(base))
	router.Register("completed_full", handler.NewCompletedFullHandler(base))
	router.Register("completed_half", handler.NewCompletedHalfHandler(base))
	router.Register("claim_rest", handler.NewClaimRestHandler(base))
}

// Start verifies the token and begins long polling. It blocks until the
// context is cancelled or Stop is called.
func (b *Bot) Start(ctx context.Context) error {
	me, err := b.client.GetMe(ctx)
	if err != nil {
		return err
	}
	b.logger.Info("bot authorized", "username", me.Username, "id", me.ID)

	pollCtx, cancel := context.WithCancel(ctx)

	b.mu.Lock()
	b.running = true
	b.cancel = cancel
	b.done = make(chan struct{})
	done := b.done
	b.mu.Unlock()

	defer close(done)

	err = b.client.StartPolling(pollCtx, func(ctx context.Context, update *telegram.Update) error {
		return b.router.Dispatch(ctx, b.client, update)
	})
	if err != nil && !isCancellation(err) {
		return err
	}
	return nil
}

// Stop cancels the polling loop and waits for it to exit.
func (b *Bot) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	cancel := b.cancel
	done := b.done
	b.mu.Unlock()

	cancel()
	<-done
	b.logger.Info("bot stopped")
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
