package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/handler"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/server"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/workers"
)

// ServerApp is a fully wired server process.
type ServerApp struct {
	db      *store.DB
	server  server.Server
	workers *workers.Workers
	closers []io.Closer

	logger *logger.Logger
}

// NewServerApp connects and migrates the database, builds the rate limiter
// and wires services, handlers and the HTTP server. Everything opened so far
// is released when a later step fails.
func NewServerApp(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (_ *ServerApp, err error) {
	app := &ServerApp{logger: log}
	defer func() {
		if err != nil {
			_ = app.Close()
		}
	}()

	app.db, err = store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	app.closers = append(app.closers, app.db)

	if err = app.db.Migrate(); err != nil {
		return nil, err
	}

	limiter, err := newLimiter(ctx, cfg.RateLimit, log)
	if err != nil {
		return nil, fmt.Errorf("error creating rate limiter: %w", err)
	}
	if limiter.closer != nil {
		app.closers = append(app.closers, limiter.closer)
	}
	app.workers = workers.NewWorkers(limiter.workers...)

	services, err := service.NewServices(store.NewRepositories(app.db, log), *cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, limiter.limiter, *cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error creating handlers: %w", err)
	}

	app.server, err = server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("error creating server: %w", err)
	}

	return app, nil
}

// Run serves until ctx is cancelled, then stops the workers and releases
// every resource.
func (a *ServerApp) Run(ctx context.Context) error {
	workerCtx, stopWorkers := context.WithCancel(ctx)
	a.workers.Run(workerCtx)

	runErr := a.server.RunServer(ctx)

	stopWorkers()
	a.workers.Wait()

	return errors.Join(runErr, a.Close())
}

// Close releases the database and limiter connections in reverse order of
// opening.
func (a *ServerApp) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil

	if len(errs) > 0 {
		a.logger.Err(errors.Join(errs...)).Msg("error releasing resources")
	}
	return errors.Join(errs...)
}
