package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AsgerObel/Hoff/internal/config"
	"github.com/AsgerObel/Hoff/internal/contact"
	"github.com/AsgerObel/Hoff/internal/health"
	"github.com/AsgerObel/Hoff/internal/metrics"
	"github.com/AsgerObel/Hoff/internal/notification"
	"github.com/AsgerObel/Hoff/internal/seed"
	"github.com/AsgerObel/Hoff/internal/server"
	"github.com/AsgerObel/Hoff/internal/task"
	"github.com/AsgerObel/Hoff/internal/user"
)

func main() {
	// Setup structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	if os.Getenv("ENVIRONMENT") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Logger = logger

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err == nil {
		zerolog.SetGlobalLevel(level)
	}

	logger.Info().
		Str("environment", cfg.Environment).
		Str("listen_addr", cfg.ListenAddr).
		Msg("starting portal")

	// Context with graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Seed in-memory state. Everything resets on restart.
	seedTasks, err := seed.Tasks()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load seed tasks")
	}
	seedUsers, currentID, err := seed.Users()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load seed users")
	}

	store := task.NewStore(seedTasks, logger)
	directory := user.NewDirectory(seedUsers, currentID)
	prefs := user.DefaultPreferences()

	inbox := notification.NewInbox(currentID, logger)
	inbox.SeedInitial(store.List())

	mailbox := contact.NewMailbox(cfg.ContactQueueSize, cfg.ContactLatency, logger)
	mailbox.Start(ctx)
	defer mailbox.Stop()

	// Health checker
	checker := health.NewChecker(logger)
	checker.Register("task_store", func(ctx context.Context) health.Status {
		if len(store.List()) == 0 {
			return health.StatusDegraded
		}
		return health.StatusOK
	})

	collector := metrics.New()

	handlers := server.NewHandlers(store, inbox, directory, prefs, mailbox, checker, collector, logger)
	srv := server.New(server.Config{
		ListenAddr:  cfg.ListenAddr,
		CORSOrigins: cfg.CORSOrigins,
		RateLimit: server.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		},
	}, handlers, collector, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info().
		Int("tasks", len(seedTasks)).
		Int("users", len(seedUsers)).
		Str("current_user", currentID).
		Msg("portal ready")

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server stopped")
		}
	}

	if err := srv.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
}
