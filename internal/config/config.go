// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-todo-keeper server. It aggregates all sub-configurations and is
// populated by merging built-in defaults, environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the token signing key,
	// token parameters, password hashing cost and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// RateLimit holds the limiter backend selection and the per-route quotas.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values that control security,
// token lifecycle, logging and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential. Loaded once at startup and never mutated.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// It is validated on every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an access token remains valid after
	// issuance (e.g. "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// BcryptCost is the work factor used when hashing passwords. Stored
	// digests with a different cost are transparently rehashed on login.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the minimal zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels its context (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the database connection string. A "postgres://" or
	// "postgresql://" DSN selects PostgreSQL through pgx; a "sqlite:" prefix
	// selects SQLite (e.g. "sqlite:./todos.db" or "sqlite::memory:").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Quota is a number of requests admitted per fixed window.
type Quota struct {
	Requests int           `env:"REQUESTS"`
	Window   time.Duration `env:"WINDOW"`
}

// RateLimit configures the request quota guard.
type RateLimit struct {
	// Backend selects the counting store: "memory" or "redis".
	// Env: RATE_LIMIT_BACKEND
	Backend string `env:"BACKEND"`

	// RedisURL is the redis connection URL used by the "redis" backend
	// (e.g. "redis://localhost:6379/0").
	// Env: RATE_LIMIT_REDIS_URL
	RedisURL string `env:"REDIS_URL"`

	// SweepInterval is how often the "memory" backend drops expired windows.
	// Env: RATE_LIMIT_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`

	// Register is the quota of POST /auth/.
	// Env: RATE_LIMIT_REGISTER_REQUESTS, RATE_LIMIT_REGISTER_WINDOW
	Register Quota `envPrefix:"REGISTER_"`

	// Login is the quota of POST /auth/token.
	// Env: RATE_LIMIT_LOGIN_REQUESTS, RATE_LIMIT_LOGIN_WINDOW
	Login Quota `envPrefix:"LOGIN_"`

	// Protected is the quota shared by every route behind bearer
	// authentication.
	// Env: RATE_LIMIT_PROTECTED_REQUESTS, RATE_LIMIT_PROTECTED_WINDOW
	Protected Quota `envPrefix:"PROTECTED_"`
}

// Rate limiter backends.
const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

// defaultConfig returns the values used for every field no other source sets.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-todo-keeper",
			TokenDuration: 30 * time.Minute,
			BcryptCost:    10,
			Version:       "0.1.0",
			LogLevel:      "debug",
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		RateLimit: RateLimit{
			Backend:       RateLimitBackendMemory,
			SweepInterval: time.Minute,
			Register:      Quota{Requests: 5, Window: time.Hour},
			Login:         Quota{Requests: 10, Window: time.Minute},
			Protected:     Quota{Requests: 100, Window: time.Minute},
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
