package handler

import (
	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/handler/http"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/ratelimit"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, limiter ratelimit.Limiter, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}
	if limiter == nil {
		return nil, errNoRateLimiter
	}

	return &Handlers{
		HTTP: http.NewHandler(services, limiter, cfg, logger),
	}, nil
}
