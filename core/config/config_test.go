package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/councilkit/council/core/config"
)

func TestLoad_ParsesEnvironment(t *testing.T) {
	type streamConfig struct {
		Model string `env:"TEST_STREAM_MODEL" envDefault:"gpt-4o"`
		Port  int    `env:"TEST_STREAM_PORT" envDefault:"8080"`
	}

	t.Setenv("TEST_STREAM_MODEL", "claude-sonnet-4-20250514")

	var cfg streamConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Model)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_CachesPerType(t *testing.T) {
	type cachedConfig struct {
		Value string `env:"TEST_CACHED_VALUE" envDefault:"first"`
	}

	t.Setenv("TEST_CACHED_VALUE", "first")

	var cfg1 cachedConfig
	require.NoError(t, config.Load(&cfg1))
	assert.Equal(t, "first", cfg1.Value)

	t.Setenv("TEST_CACHED_VALUE", "second")

	var cfg2 cachedConfig
	require.NoError(t, config.Load(&cfg2))
	assert.Equal(t, "first", cfg2.Value, "second load should hit the cache")
}

func TestLoad_RequiredMissing(t *testing.T) {
	type strictConfig struct {
		Secret string `env:"TEST_STRICT_SECRET_UNSET,required"`
	}

	var cfg strictConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParseFailed)
}

func TestLoad_NilPointer(t *testing.T) {
	t.Parallel()

	var cfg *struct{ Port int }
	err := config.Load(cfg)
	require.ErrorIs(t, err, config.ErrNilConfig)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	type panicConfig struct {
		Token string `env:"TEST_PANIC_TOKEN_UNSET,required"`
	}

	assert.Panics(t, func() {
		var cfg panicConfig
		config.MustLoad(&cfg)
	})
}
