// Package main is the entry point of the fitness goal tracking bot.
//
// The bot keeps one shared workout goal per community: participants record
// exercise amounts against daily targets, claim rest days, and get progress
// digests posted to the goal chat at fixed hours. Daily progress resets at
// local midnight; lifetime totals run for the whole goal.
//
// Layout follows Clean Architecture:
//   - Domain: goal aggregate and its rules, no external dependencies
//   - Application: the goal store and command service
//   - Infrastructure: Postgres, Redis, Telegram API, scheduler
//   - Interface: Telegram command handlers and presenters
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fitcrew-hub/fitcrew-bot/config"
	"github.com/fitcrew-hub/fitcrew-bot/internal/application/tracker"
	exttelegram "github.com/fitcrew-hub/fitcrew-bot/internal/infrastructure/external/telegram"
	"github.com/fitcrew-hub/fitcrew-bot/internal/infrastructure/persistence/postgres"
	"github.com/fitcrew-hub/fitcrew-bot/internal/infrastructure/persistence/redis"
	"github.com/fitcrew-hub/fitcrew-bot/internal/infrastructure/scheduler"
	"github.com/fitcrew-hub/fitcrew-bot/internal/infrastructure/scheduler/jobs"
	"github.com/fitcrew-hub/fitcrew-bot/internal/interface/telegram"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg)
	log.Info("starting fitcrew bot",
		"env", cfg.App.Environment,
		"debug", cfg.App.Debug,
		"timezone", cfg.App.Timezone,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 2. DATABASE
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("database connection established")

	log.Info("running database migrations...")
	if err := postgres.NewMigrator(dbConn).Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 3. TELEGRAM CLIENT & GATEWAY
	// ─────────────────────────────────────────────────────────────────────────
	clientConfig := exttelegram.DefaultClientConfig(cfg.Telegram.Token)
	clientConfig.Logger = log
	clientConfig.Debug = cfg.App.Debug
	clientConfig.PollingTimeout = int(cfg.Telegram.PollingTimeout.Seconds())
	client := exttelegram.NewClient(clientConfig)
	gateway := exttelegram.NewGateway(client)

	// ─────────────────────────────────────────────────────────────────────────
	// 4. DISPLAY-NAME DIRECTORY (optionally cached in Redis)
	// ─────────────────────────────────────────────────────────────────────────
	var directory tracker.Directory = gateway
	if !cfg.Redis.Disabled && cfg.Redis.URL != "" {
		log.Info("connecting to Redis...")
		redisClient, err := redis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn("failed to connect to Redis, name caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			directory = redis.NewNameCache(gateway, redisClient, log)
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. APPLICATION LAYER
	// ─────────────────────────────────────────────────────────────────────────
	repo := postgres.NewGoalRepository(dbConn)
	store := tracker.NewStore(repo, log)
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load goal state: %w", err)
	}
	service := tracker.NewService(store, log)

	// ─────────────────────────────────────────────────────────────────────────
	// 6. SCHEDULER
	// ─────────────────────────────────────────────────────────────────────────
	sched := scheduler.NewScheduler(scheduler.SchedulerConfig{
		Logger:   log,
		Timezone: cfg.App.Location,
	})

	resetJob := jobs.NewDailyResetJob(service, nil, cfg.App.Location, log)
	broadcastJob := jobs.NewProgressBroadcastJob(
		service, directory, gateway, nil,
		cfg.App.Location, cfg.Scheduler.BroadcastHours, log,
	)

	if err := sched.Register(resetJob, scheduler.NewMinuteSchedule()); err != nil {
		return fmt.Errorf("failed to register reset job: %w", err)
	}
	if err := sched.Register(broadcastJob, scheduler.NewMinuteSchedule()); err != nil {
		return fmt.Errorf("failed to register broadcast job: %w", err)
	}

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer func() {
		if !sched.IsRunning() {
			return
		}
		if err := sched.Stop(); err != nil {
			log.Warn("scheduler stop failed", "error", err)
		}
	}()

	// A reset may be pending from downtime across midnight; apply it now
	// instead of waiting for the first minute tick.
	if err := sched.RunNow(ctx, resetJob.Name()); err != nil {
		log.Warn("startup daily reset failed", "error", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. BOT
	// ─────────────────────────────────────────────────────────────────────────
	bot := telegram.NewBot(client, telegram.Dependencies{
		Service:   service,
		Directory: directory,
		Notifier:  gateway,
		Logger:    log,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Start(ctx)
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 8. WAIT FOR SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("bot stopped unexpectedly: %w", err)
		}
		log.Info("bot stopped")
		return nil
	}

	log.Info("shutting down...", "timeout", cfg.App.ShutdownTimeout.String())
	bot.Stop()
	return nil
}

// setupLogger builds the slog logger: JSON in production, text elsewhere.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.App.Debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
