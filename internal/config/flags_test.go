package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		errorMsg string
		want     NetAddress
	}{
		{name: "localhost", input: "localhost:8080", want: NetAddress{Host: "localhost", Port: 8080}},
		{name: "IPv4", input: "127.0.0.1:9090", want: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "all interfaces", input: ":8080", want: NetAddress{Port: 8080}},
		{name: "missing colon", input: "localhost8080", errorMsg: "need address in a form `host:port`"},
		{name: "too many colons", input: "host:port:extra", errorMsg: "need address in a form `host:port`"},
		{name: "non-numeric port", input: "localhost:abc", errorMsg: "invalid syntax"},
		{name: "zero port", input: "localhost:0", errorMsg: "port number is a positive integer"},
		{name: "bad host", input: "invalid.host:8080", errorMsg: "incorrect IP-address provided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := &NetAddress{}
			err := addr.Set(tt.input)

			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, *addr)
			assert.Equal(t, tt.input, addr.String())
		})
	}
}

func TestNetAddress_String_Empty(t *testing.T) {
	assert.Empty(t, (&NetAddress{}).String())
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-a", "localhost:8080",
				"-d", "sqlite::memory:",
				"-c", "/path/to/config.json",
				"-token-sign-key", "jwt_secret",
				"-token-issuer", "test_issuer",
				"-token-duration", "1h",
				"-bcrypt-cost", "11",
				"-log-level", "warn",
				"-request-timeout", "30s",
				"-shutdown-timeout", "3s",
				"-rate-limit-backend", "redis",
				"-redis-url", "redis://localhost:6379/1",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
				assert.Equal(t, "sqlite::memory:", cfg.Storage.DB.DSN)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
				assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
				assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
				assert.Equal(t, time.Hour, cfg.App.TokenDuration)
				assert.Equal(t, 11, cfg.App.BcryptCost)
				assert.Equal(t, "warn", cfg.App.LogLevel)
				assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
				assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
				assert.Equal(t, "redis", cfg.RateLimit.Backend)
				assert.Equal(t, "redis://localhost:6379/1", cfg.RateLimit.RedisURL)
			},
		},
		{
			name: "config alias flag",
			args: []string{"-config", "/path/to/config.json"},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, &StructuredConfig{}, cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(tt.args)
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "invalid server address format", args: []string{"-a", "invalid"}},
		{name: "invalid port in server address", args: []string{"-a", "localhost:abc"}},
		{name: "invalid duration", args: []string{"-token-duration", "soon"}},
		{name: "unknown flag", args: []string{"-grpc-address", "localhost:9090"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(tt.args)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
