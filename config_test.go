package planfft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PLANFFT_BACKEND", "dft")
	t.Setenv("PLANFFT_CACHE_CAPACITY", "4")
	t.Setenv("PLANFFT_EVICTION", "lru")
	t.Setenv("PLANFFT_PLANNING", "measure")
	t.Setenv("PLANFFT_SCRATCH_LIMIT", "65536")
	t.Setenv("PLANFFT_LOG_LEVEL", "debug")
	t.Setenv("PLANFFT_WISDOM_FILE", "/tmp/planfft.wisdom")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Config{
		Backend:       "dft",
		CacheCapacity: 4,
		Eviction:      "lru",
		Planning:      "measure",
		ScratchLimit:  65536,
		LogLevel:      "debug",
		WisdomFile:    "/tmp/planfft.wisdom",
	}, cfg)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"capacity", "PLANFFT_CACHE_CAPACITY", "0"},
		{"capacity not a number", "PLANFFT_CACHE_CAPACITY", "ten"},
		{"eviction", "PLANFFT_EVICTION", "random"},
		{"planning", "PLANFFT_PLANNING", "exhaustive"},
		{"scratch", "PLANFFT_SCRATCH_LIMIT", "-1"},
		{"log level", "PLANFFT_LOG_LEVEL", "loud"},
		{"backend", "PLANFFT_BACKEND", "fftw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfigUnknownBackend(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Backend = "fftw"

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestConfigOptions(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CacheCapacity = 3
	cfg.Eviction = "lru"
	cfg.Planning = "measure"

	opts, err := cfg.Options(nil)
	require.NoError(t, err)

	m := NewManager(nil, opts...)
	defer m.Close()

	assert.Equal(t, 3, m.Capacity())
	assert.Equal(t, EvictLRU, m.policy)
	assert.Equal(t, FlagMeasure, m.flags)
}

func TestConfigLogger(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LogLevel = "error"

	logger, err := cfg.Logger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))
	assert.True(t, logger.Core().Enabled(2))
}
