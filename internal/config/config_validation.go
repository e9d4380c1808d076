// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenIssuer == "" {
		return fmt.Errorf("%w: token issuer is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.BcryptCost < minBcryptCost || cfg.App.BcryptCost > maxBcryptCost {
		return fmt.Errorf("%w: bcrypt cost must be in [%d, %d]", ErrInvalidAppConfigs, minBcryptCost, maxBcryptCost)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}
	if cfg.Server.RequestTimeout <= 0 || cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	return cfg.RateLimit.validate()
}

func (rl RateLimit) validate() error {
	switch rl.Backend {
	case RateLimitBackendMemory:
		if rl.SweepInterval <= 0 {
			return fmt.Errorf("%w: sweep interval must be positive", ErrInvalidRateLimitConfigs)
		}
	case RateLimitBackendRedis:
		if rl.RedisURL == "" {
			return fmt.Errorf("%w: redis url is required for the redis backend", ErrInvalidRateLimitConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidRateLimitConfigs, rl.Backend)
	}

	for name, q := range map[string]Quota{"register": rl.Register, "login": rl.Login, "protected": rl.Protected} {
		if q.Requests <= 0 || q.Window <= 0 {
			return fmt.Errorf("%w: %s quota must be positive", ErrInvalidRateLimitConfigs, name)
		}
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
