package http

import (
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/ratelimit"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
)

type Handler struct {
	services *service.Services
	limiter  ratelimit.Limiter

	quotas         config.RateLimit
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter ratelimit.Limiter, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		limiter:        limiter,
		quotas:         cfg.RateLimit,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
