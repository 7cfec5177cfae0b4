package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiesession/core/config"
)

// Each test declares its own config type: the cache is keyed by type, and
// tests must not observe each other's loads.

func TestLoadParsesEnvironment(t *testing.T) {
	type testConfig struct {
		Name   string        `env:"TEST_LOAD_NAME" envDefault:"fallback"`
		MaxAge time.Duration `env:"TEST_LOAD_MAX_AGE" envDefault:"1h"`
		Secure bool          `env:"TEST_LOAD_SECURE" envDefault:"false"`
	}

	t.Setenv("TEST_LOAD_NAME", "from-env")
	t.Setenv("TEST_LOAD_SECURE", "true")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, time.Hour, cfg.MaxAge)
	assert.True(t, cfg.Secure)
}

func TestLoadCachesPerType(t *testing.T) {
	type cachedConfig struct {
		Value string `env:"TEST_CACHE_VALUE" envDefault:"initial"`
	}

	t.Setenv("TEST_CACHE_VALUE", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	// Environment changes after the first load are not observed.
	t.Setenv("TEST_CACHE_VALUE", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestLoadRequiredMissing(t *testing.T) {
	type strictConfig struct {
		Secret string `env:"TEST_REQUIRED_SECRET,required"`
	}

	var cfg strictConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_REQUIRED_SECRET")
}

func TestLoadNilDestination(t *testing.T) {
	var cfg *struct{}
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilConfig)
}

func TestMustLoadPanicsOnFailure(t *testing.T) {
	type panicConfig struct {
		Secret string `env:"TEST_MUST_LOAD_SECRET,required"`
	}

	assert.Panics(t, func() {
		var cfg panicConfig
		config.MustLoad(&cfg)
	})
}
