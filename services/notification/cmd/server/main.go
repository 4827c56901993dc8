package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/logger"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/notification/internal/app"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/services/notification/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("notification-service", cfg.LogLevel)
	log.Info("starting notification service",
		slog.String("environment", cfg.Environment),
		slog.Int("http_port", cfg.HTTP.Port),
		slog.String("whatsapp_driver", cfg.WhatsAppDriver),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application, err := app.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("notification service stopped")
}
