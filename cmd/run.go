package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"gachabot/bot"
	"gachabot/config"
	"gachabot/database"
	"gachabot/models"
	"gachabot/repository"
	"gachabot/service"
	"gachabot/sheets"
	"gachabot/web"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	setupLogging(cfg)

	log.Info("Starting gacha bot...")

	// Storage backend
	ledgerRepo, counterRepo, cleanup, err := buildRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// Services
	ledgerService := service.NewLedgerService(ledgerRepo)
	counterService := service.NewCounterService(counterRepo)
	topUpService := service.NewTopUpService(cfg.PendingTopUpTTL)
	gachaService := service.NewGachaService(ledgerService, counterService, models.DefaultRewards, cfg.SpinLimit)

	// Spin counters survive restarts; load them before accepting spins
	log.Info("Hydrating spin counters...")
	if err := counterService.Hydrate(ctx); err != nil {
		return fmt.Errorf("failed to hydrate spin counters: %w", err)
	}

	// Discord bot
	log.Info("Connecting to Discord...")
	discordBot, err := bot.New(bot.Config{
		Token:          cfg.DiscordToken,
		OwnerID:        cfg.OwnerID,
		AdminChannelID: cfg.AdminChannelID,
		SpinLimit:      cfg.SpinLimit,
		Rewards:        models.DefaultRewards,
		IsPrivileged:   cfg.IsPrivilegedUser,
	}, gachaService, ledgerService, counterService, topUpService)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	// Health endpoint for the hosting platform
	healthServer := web.NewServer(cfg.HealthAddr)
	go func() {
		if err := healthServer.Start(); err != nil {
			log.WithError(err).Error("Health server stopped")
		}
	}()

	// Sweep abandoned top-up flows in the background
	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every 5m", func() {
		if removed := topUpService.ExpireStale(); removed > 0 {
			log.WithField("removed", removed).Info("Expired stale top-up flows")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule top-up sweep: %w", err)
	}
	sweeper.Start()

	log.WithFields(log.Fields{
		"backend":     cfg.StorageBackend,
		"environment": cfg.Environment,
	}).Info("Bot is running")
	<-ctx.Done()

	log.Info("Shutting down...")
	sweeper.Stop()

	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord connection")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down health server")
	}

	log.Info("Shutdown completed")
	return nil
}

// buildRepositories wires the configured storage backend behind the
// repository interfaces. The returned cleanup closes whatever the backend
// holds open.
func buildRepositories(ctx context.Context, cfg *config.Config) (service.LedgerRepository, service.CounterRepository, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendSheets:
		log.Info("Using Google Sheets storage")
		client, err := sheets.NewClient(ctx, cfg.SheetID, cfg.ServiceAccountEmail, cfg.ServiceAccountKey)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create Sheets client: %w", err)
		}
		ledgerRepo, err := sheets.NewLedgerRepository(ctx, client)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to prepare ledger worksheet: %w", err)
		}
		counterRepo, err := sheets.NewCounterRepository(ctx, client)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to prepare counter worksheet: %w", err)
		}
		return ledgerRepo, counterRepo, func() {}, nil

	case config.BackendPostgres:
		log.Info("Connecting to database...")
		db, err := database.NewConnection(ctx, database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return repository.NewLedgerRepository(db), repository.NewCounterRepository(db), db.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// setupLogging sends logs to stdout and a rotated file
func setupLogging(cfg *config.Config) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if cfg.Environment == "production" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   "logs/gachabot.log",
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}))
		log.SetLevel(log.InfoLevel)
		return
	}

	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
