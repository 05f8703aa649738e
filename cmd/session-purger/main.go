package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Apurer/retail-inventory-api/internal/app/api"
	userpostgres "github.com/Apurer/retail-inventory-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/Apurer/retail-inventory-api/internal/domains/users/application"
	platformobservability "github.com/Apurer/retail-inventory-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/retail-inventory-api/internal/platform/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	level, err := platformobservability.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	logger := platformobservability.NewLogger(os.Stdout, level)

	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		logger.Error("POSTGRES_DSN not set or connection failed; cannot purge sessions")
		os.Exit(1)
	}
	service := usersapp.NewService(userpostgres.NewRepository(db), userpostgres.NewSessionStore(db))

	purge := func() {
		purgeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		removed, err := service.PurgeExpiredSessions(purgeCtx)
		if err != nil {
			logger.Error("failed to purge sessions", slog.String("error", err.Error()))
			return
		}
		logger.Info("session purge completed", slog.Int64("removed", removed))
	}

	purge()
	if cfg.SessionPurgeInterval <= 0 {
		return
	}
	ticker := time.NewTicker(cfg.SessionPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purge()
		}
	}
}
