package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-todo-keeper/internal/app"
	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("go-todo-server", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("go-todo-server", cfg.App.LogLevel)
	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("rate_limit_backend", cfg.RateLimit.Backend).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	serverApp, err := app.NewServerApp(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server app")
	}

	if err = serverApp.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}
