package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the CLI client transport.
type ClientAdapter struct {
	// HTTPAddress is the base address of the server (e.g. "localhost:8080"
	// or "https://todo.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout is the timeout of each outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the configuration of the CLI client.
type ClientConfig struct {
	// Adapter contains the server address and request timeout.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`
	// Token is the bearer token attached to authenticated requests.
	// Env: TODO_TOKEN
	Token string `env:"TODO_TOKEN"`
}

// GetClientConfig loads the client configuration from environment variables
// on top of client defaults and validates it.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
	}

	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	return cfg, cfg.validate()
}
