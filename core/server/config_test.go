package server_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/councilkit/council/core/server"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := server.DefaultConfig()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, server.DefaultReadTimeout, cfg.ReadTimeout)
	assert.Zero(t, cfg.WriteTimeout, "streaming responses need an unbounded write timeout")
	assert.Equal(t, server.DefaultIdleTimeout, cfg.IdleTimeout)
	assert.Equal(t, server.DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Equal(t, server.DefaultMaxHeaderBytes, cfg.MaxHeaderBytes)
}

func TestNewFromConfig_MissingAddress(t *testing.T) {
	t.Parallel()

	_, err := server.NewFromConfig(server.Config{})
	require.ErrorIs(t, err, server.ErrMissingAddress)
}

func TestNewFromConfig_BadTLSFiles(t *testing.T) {
	t.Parallel()

	cfg := server.DefaultConfig()
	cfg.TLSCertFile = "/nonexistent/cert.pem"
	cfg.TLSKeyFile = "/nonexistent/key.pem"

	_, err := server.NewFromConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load TLS configuration")
}

func TestNewFromConfig_Valid(t *testing.T) {
	t.Parallel()

	srv, err := server.NewFromConfig(server.DefaultConfig())
	require.NoError(t, err)
	assert.NotNil(t, srv)
}
