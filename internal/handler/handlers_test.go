package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/ratelimit"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
)

func testConfig(address string) config.StructuredConfig {
	return config.StructuredConfig{Server: config.Server{HTTPAddress: address}}
}

// TestNewHandlers_HTTP verifies that a configured address yields the HTTP
// handler.
func TestNewHandlers_HTTP(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, ratelimit.NewMemoryLimiter(), testConfig(":8080"), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP)
}

func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, ratelimit.NewMemoryLimiter(), testConfig(""), logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

func TestNewHandlers_NoLimiter(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, nil, testConfig(":8080"), logger.Nop())

	require.ErrorIs(t, err, errNoRateLimiter)
	assert.Nil(t, h)
}

// TestNewHandlers_IndependentInstances verifies that two calls produce
// independent handlers.
func TestNewHandlers_IndependentInstances(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter()

	h1, err1 := NewHandlers(&service.Services{}, limiter, testConfig(":8080"), logger.Nop())
	h2, err2 := NewHandlers(&service.Services{}, limiter, testConfig(":8080"), logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
}
