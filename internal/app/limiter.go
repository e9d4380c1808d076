package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/ratelimit"
	"github.com/MKhiriev/go-todo-keeper/internal/workers"
)

// limiterSetup is a configured limiter with its background work and the
// resources it holds.
type limiterSetup struct {
	limiter ratelimit.Limiter
	workers []workers.Worker
	closer  io.Closer
}

// newLimiter builds the backend selected by cfg.Backend. The memory backend
// gets a sweeper that drops expired windows.
func newLimiter(ctx context.Context, cfg config.RateLimit, log *logger.Logger) (limiterSetup, error) {
	switch cfg.Backend {
	case config.RateLimitBackendRedis:
		client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return limiterSetup{}, err
		}
		log.Info().Msg("rate limiter uses redis")
		return limiterSetup{limiter: ratelimit.NewRedisLimiter(client), closer: client}, nil

	case config.RateLimitBackendMemory, "":
		limiter := ratelimit.NewMemoryLimiter()
		sweeper := workers.NewTickerWorker("ratelimit-sweeper", cfg.SweepInterval,
			func(_ context.Context, now time.Time) {
				if n := limiter.Sweep(now); n > 0 {
					log.Debug().Int("removed", n).Int("left", limiter.Len()).Msg("rate limit windows swept")
				}
			}, log)
		log.Info().Msg("rate limiter uses process memory")
		return limiterSetup{limiter: limiter, workers: []workers.Worker{sweeper}}, nil

	default:
		return limiterSetup{}, fmt.Errorf("%w: unknown rate limit backend %q", config.ErrInvalidRateLimitConfigs, cfg.Backend)
	}
}
