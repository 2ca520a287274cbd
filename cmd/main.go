package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatrelay/internal/app/hub"
	"chatrelay/internal/app/server"
	"chatrelay/internal/config"
	"chatrelay/internal/core/domain"
	"chatrelay/internal/core/services"
	"chatrelay/internal/platform/logger"
	"chatrelay/internal/platform/telemetry"
	"chatrelay/internal/plugins/memory"
	"chatrelay/internal/plugins/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ./config.json if present)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New(config.Config{}).Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(*cfg)
	log.Info("starting application")

	otelShutdown, err := telemetry.Init(ctx, *cfg)
	if err != nil {
		log.Error("failed to initialize telemetry", "err", err)
		otelShutdown = func(context.Context) error { return nil }
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			log.Error("telemetry shutdown failed", "err", err)
		}
	}()

	// Store selection happens exactly once: probe connectivity, fall
	// back to the ephemeral adapter, never re-evaluate.
	var store domain.Store
	if db, err := postgres.New(ctx, cfg.Database); err != nil {
		log.Warn("store unavailable, running in ephemeral mode", "host", cfg.Database.Host, "err", err)
		store = memory.NewStore()
	} else {
		log.Info("store connected", "host", cfg.Database.Host, "database", cfg.Database.Name)
		defer db.Close()
		store = postgres.NewStore(db)
	}

	broadcast := hub.New()
	users := services.NewUserService(log, store)
	messages := services.NewMessageService(log, store)
	sessions := services.NewSessionDirectory()
	calls := services.NewCallRegistry()
	gateway := services.NewGateway(log, broadcast, sessions, calls, messages)

	srv := server.New(log, *cfg, users, messages, gateway, broadcast)
	if err := srv.Start(ctx); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
