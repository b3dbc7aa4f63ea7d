package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"clubbot/config"
	"clubbot/pkg/bot"
	"clubbot/pkg/logger"
	"clubbot/service"
	"clubbot/storage/postgres"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.ServiceName)

	pgStore, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("Failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pgStore.Close()

	svc := service.New(pgStore, log)

	// Operator-side bootstrap: the roster has no self-service path to the
	// first administrator.
	if cfg.AdminID != 0 {
		if err := svc.Admin().Add(context.Background(), cfg.AdminID, cfg.AdminUsername, cfg.AdminID); err != nil {
			log.Error("Failed to bootstrap admin", logger.Int64("admin_id", cfg.AdminID), logger.Error(err))
			os.Exit(1)
		}
		log.Info("Bootstrap admin ensured", logger.Int64("admin_id", cfg.AdminID))
	}

	clubBot, err := bot.New(&cfg, svc, log)
	if err != nil {
		log.Error("Failed to initialize bot", logger.Error(err))
		os.Exit(1)
	}

	go clubBot.Start()

	log.Info("🚀 Club bot is now running.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("Stopping bot and shutting down...")
	clubBot.Stop()
}
