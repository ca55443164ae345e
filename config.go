package planfft

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the settings of the process-wide default managers.
type Config struct {
	Backend       string `env:"PLANFFT_BACKEND"        envDefault:"radix2"`
	CacheCapacity int    `env:"PLANFFT_CACHE_CAPACITY" envDefault:"10"`
	Eviction      string `env:"PLANFFT_EVICTION"       envDefault:"fifo"`
	Planning      string `env:"PLANFFT_PLANNING"       envDefault:"estimate"`
	// ScratchLimit caps scratch bytes per manager; zero means unlimited.
	ScratchLimit int64  `env:"PLANFFT_SCRATCH_LIMIT" envDefault:"0"`
	LogLevel     string `env:"PLANFFT_LOG_LEVEL"     envDefault:"warn"`
	// WisdomFile is imported by Init when present and written by Shutdown.
	WisdomFile string `env:"PLANFFT_WISDOM_FILE"`
}

// DefaultConfig returns the configuration used when the environment sets
// nothing.
func DefaultConfig() Config {
	return Config{
		Backend:       DefaultBackend,
		CacheCapacity: DefaultCapacity,
		Eviction:      EvictFIFO.String(),
		Planning:      "estimate",
		LogLevel:      "warn",
	}
}

// LoadConfig reads Config from PLANFFT_* environment variables and
// validates it.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that every value is in range and names a known backend.
func (c Config) Validate() error {
	if c.CacheCapacity < 1 {
		return fmt.Errorf("%w: cache capacity %d", ErrInvalidConfig, c.CacheCapacity)
	}

	if c.ScratchLimit < 0 {
		return fmt.Errorf("%w: scratch limit %d", ErrInvalidConfig, c.ScratchLimit)
	}

	if _, err := ParseEvictionPolicy(c.Eviction); err != nil {
		return err
	}

	if _, err := parsePlanning(c.Planning); err != nil {
		return err
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}

	if _, err := LookupBackend(c.Backend); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Options returns the manager options c describes. The logger is passed
// in so both default managers share one.
func (c Config) Options(logger *zap.Logger) ([]Option, error) {
	policy, err := ParseEvictionPolicy(c.Eviction)
	if err != nil {
		return nil, err
	}

	flags, err := parsePlanning(c.Planning)
	if err != nil {
		return nil, err
	}

	return []Option{
		WithCapacity(c.CacheCapacity),
		WithEviction(policy),
		WithFlags(flags),
		WithScratchLimit(c.ScratchLimit),
		WithLogger(logger),
	}, nil
}

// Logger builds a production JSON logger at c.LogLevel.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("planfft: build logger: %w", err)
	}

	return logger.Named("planfft"), nil
}

func parsePlanning(s string) (Flags, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "estimate", "":
		return FlagEstimate, nil
	case "measure":
		return FlagMeasure, nil
	default:
		return FlagEstimate, fmt.Errorf("%w: planning mode %q", ErrInvalidConfig, s)
	}
}
