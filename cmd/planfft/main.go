// Command planfft runs cached transforms from the command line, measures
// what plan reuse saves, and manages wisdom files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/planfft"
)

var (
	backendName string
	capacity    int
	eviction    string
	planning    string
	logLevel    string

	rootCmd = &cobra.Command{
		Use:           "planfft",
		Short:         "Run and benchmark cached FFT plans",
		SilenceUsage: true,
	}
)

func init() {
	cfg := planfft.DefaultConfig()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&backendName, "backend", cfg.Backend, fmt.Sprintf("transform backend %v", planfft.BackendNames()))
	flags.IntVar(&capacity, "capacity", cfg.CacheCapacity, "plan cache capacity")
	flags.StringVar(&eviction, "eviction", cfg.Eviction, "eviction policy (fifo, lru)")
	flags.StringVar(&planning, "planning", cfg.Planning, "planning mode (estimate, measure)")
	flags.StringVar(&logLevel, "log-level", cfg.LogLevel, "log level")

	rootCmd.AddCommand(transformCmd, benchCmd, wisdomCmd)
}

// config returns the environment config with explicitly set global flags
// applied on top.
func config() (planfft.Config, error) {
	cfg, err := planfft.LoadConfig()
	if err != nil {
		return planfft.Config{}, err
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("backend") {
		cfg.Backend = backendName
	}

	if flags.Changed("capacity") {
		cfg.CacheCapacity = capacity
	}

	if flags.Changed("eviction") {
		cfg.Eviction = eviction
	}

	if flags.Changed("planning") {
		cfg.Planning = planning
	}

	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return planfft.Config{}, err
	}

	return cfg, nil
}

// newManager builds a manager from the flags. The caller closes it and
// syncs the logger.
func newManager() (*planfft.Manager, *zap.Logger, error) {
	cfg, err := config()
	if err != nil {
		return nil, nil, err
	}

	logger, err := cfg.Logger()
	if err != nil {
		return nil, nil, err
	}

	b, err := planfft.LookupBackend(cfg.Backend)
	if err != nil {
		return nil, nil, err
	}

	opts, err := cfg.Options(logger)
	if err != nil {
		return nil, nil, err
	}

	return planfft.NewManager(b, opts...), logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
