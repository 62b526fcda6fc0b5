// Package main — bot entry point.
// Loads configuration, assembles the application, and runs it.
// Supports graceful shutdown on SIGINT/SIGTERM: the pool close and
// scheduler stop are deferred so every exit path releases them.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"ledgerbot/internal/app"
	"ledgerbot/internal/config"
)

func main() {
	setupLogging()

	log.Info("=== Ledger bot starting ===")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := log.ParseLevel(cfg.AppLogLevel)
	if err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Assemble the application (DB, gateway, services, handlers).
	// Any failure here is fatal: the bot must not poll for reactions
	// without a working ledger store behind it.
	application, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer application.DB.Close()

	if cfg.FeatureDailySummary {
		if err := application.Scheduler.Start(ctx); err != nil {
			log.WithError(err).Fatal("Failed to start scheduler")
		}
		defer application.Scheduler.Stop()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := application.Bot.Start(ctx); err != nil {
			log.WithError(err).Error("Bot stopped with error")
			quit <- syscall.SIGTERM
		}
	}()

	log.Info("=== Ledger bot ready ===")

	sig := <-quit
	log.Infof("Received signal %s, shutting down...", sig)

	cancel()

	log.Info("=== Ledger bot stopped ===")
}

// setupLogging configures the log format.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
