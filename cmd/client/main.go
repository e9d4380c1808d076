package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-todo-keeper/internal/adapter"
	"github.com/MKhiriev/go-todo-keeper/internal/client"
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
	os.Exit(run())
}

func run() int {
	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		return 2
	}

	var (
		showBuild bool
		logLevel  string
	)
	flag.StringVar(&cfg.Adapter.HTTPAddress, "address", cfg.Adapter.HTTPAddress, "server address (env ADAPTER_ADDRESS)")
	flag.StringVar(&cfg.Token, "token", cfg.Token, "bearer token (env TODO_TOKEN)")
	flag.StringVar(&logLevel, "log-level", "warn", "client log level")
	flag.BoolVar(&showBuild, "build-info", false, "print build information and exit")
	flag.Parse()

	if showBuild {
		fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return 0
	}

	log := logger.NewClientLogger("go-todo-client", logLevel)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Error().Err(err).Msg("create server adapter")
		return 2
	}
	serverAdapter.SetToken(cfg.Token)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = client.NewApp(serverAdapter, os.Stdout, log).Run(ctx, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
