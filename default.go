package planfft

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"go.uber.org/zap"
)

// defaults holds the process-wide managers used by Complex and Real,
// one per transform kind.
type defaults struct {
	cfg      Config
	logger   *zap.Logger
	managers [2]*Manager
}

var (
	defaultMu    sync.Mutex
	defaultState *defaults
)

// Init replaces the process-wide managers with ones built from cfg. Any
// previous state is shut down first. When cfg.WisdomFile names an
// existing file its wisdom is imported.
func Init(cfg Config) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if err := shutdownLocked(); err != nil {
		return err
	}

	st, err := newDefaults(cfg)
	if err != nil {
		return err
	}

	defaultState = st

	return nil
}

// Shutdown releases every entry held by the process-wide managers and
// writes the wisdom file when one is configured. The next call to
// Complex or Real starts over from the environment.
func Shutdown() error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	return shutdownLocked()
}

// Default returns the process-wide manager for kind, creating the state
// from the environment on first use.
func Default(kind Kind) (*Manager, error) {
	if kind != KindComplex && kind != KindReal {
		return nil, fmt.Errorf("planfft: unknown transform kind %d", kind)
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultState == nil {
		cfg, err := LoadConfig()
		if err != nil {
			return nil, err
		}

		st, err := newDefaults(cfg)
		if err != nil {
			return nil, err
		}

		defaultState = st
	}

	return defaultState.managers[kind], nil
}

// Complex transforms buf with the process-wide complex manager. See
// Manager.TransformComplex.
func Complex(buf []complex128, n int, dir Direction, howmany int, normalize bool) error {
	m, err := Default(KindComplex)
	if err != nil {
		return err
	}

	return m.TransformComplex(buf, n, dir, howmany, normalize)
}

// Real transforms buf with the process-wide real manager. See
// Manager.TransformReal.
func Real(buf []float64, n int, dir Direction, howmany int, normalize bool) error {
	m, err := Default(KindReal)
	if err != nil {
		return err
	}

	return m.TransformReal(buf, n, dir, howmany, normalize)
}

func newDefaults(cfg Config) (*defaults, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := cfg.Logger()
	if err != nil {
		return nil, err
	}

	b, err := LookupBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.Options(logger)
	if err != nil {
		return nil, err
	}

	if cfg.WisdomFile != "" {
		err := ImportWisdom(cfg.WisdomFile)

		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Debug("no wisdom file yet", zap.String("path", cfg.WisdomFile))
		case err != nil:
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	st := &defaults{cfg: cfg, logger: logger}
	st.managers[KindComplex] = NewManager(b, append(opts, WithLogger(logger.With(zap.Stringer("kind", KindComplex))))...)
	st.managers[KindReal] = NewManager(b, append(opts, WithLogger(logger.With(zap.Stringer("kind", KindReal))))...)

	return st, nil
}

func shutdownLocked() error {
	st := defaultState
	if st == nil {
		return nil
	}

	defaultState = nil

	var errs []error
	for _, m := range st.managers {
		errs = append(errs, m.Close())
	}

	if st.cfg.WisdomFile != "" && WisdomLen() > 0 {
		errs = append(errs, ExportWisdom(st.cfg.WisdomFile))
	}

	_ = st.logger.Sync()

	return errors.Join(errs...)
}
