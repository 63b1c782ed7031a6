package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/pkg/config"
)

type tokenConfig struct {
	Secret string        `env:"CFG_TEST_SECRET,required"`
	TTL    time.Duration `env:"CFG_TEST_TTL" envDefault:"24h"`
}

type cachedConfig struct {
	Value string `env:"CFG_TEST_CACHED" envDefault:"first"`
}

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	t.Run("defaults applied", func(t *testing.T) {
		cfg, err := config.LoadFrom[tokenConfig](map[string]string{"CFG_TEST_SECRET": "s3cr3t"})
		require.NoError(t, err)
		assert.Equal(t, "s3cr3t", cfg.Secret)
		assert.Equal(t, 24*time.Hour, cfg.TTL)
	})

	t.Run("overrides default", func(t *testing.T) {
		cfg, err := config.LoadFrom[tokenConfig](map[string]string{"CFG_TEST_SECRET": "x", "CFG_TEST_TTL": "15m"})
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, cfg.TTL)
	})

	t.Run("missing required", func(t *testing.T) {
		_, err := config.LoadFrom[tokenConfig](map[string]string{})
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("malformed duration", func(t *testing.T) {
		_, err := config.LoadFrom[tokenConfig](map[string]string{"CFG_TEST_SECRET": "x", "CFG_TEST_TTL": "soon"})
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestLoadCachesPerType(t *testing.T) {
	t.Setenv("CFG_TEST_CACHED", "first")

	cfg, err := config.Load[cachedConfig]()
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.Value)

	t.Setenv("CFG_TEST_CACHED", "second")

	cfg, err = config.Load[cachedConfig]()
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.Value)
}

func TestMustLoadPanics(t *testing.T) {
	type unset struct {
		Value string `env:"CFG_TEST_NEVER_SET,required"`
	}
	assert.Panics(t, func() { config.MustLoad[unset]() })
}
