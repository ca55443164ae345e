package planfft

import (
	"fmt"

	"github.com/cwbudde/planfft/internal/backend"
	"github.com/cwbudde/planfft/internal/fftypes"
)

// Direction selects the transform sign: Forward (+1) or Backward (-1).
// The canonical definition is in internal/fftypes.
type Direction = fftypes.Direction

// Kind selects complex or real-valued transforms.
type Kind = fftypes.Kind

// Flags are backend planning hints.
type Flags = fftypes.Flags

// Algorithm names the kernel a prepared plan runs.
type Algorithm = fftypes.Algorithm

const (
	Forward  = fftypes.Forward
	Backward = fftypes.Backward

	KindComplex = fftypes.KindComplex
	KindReal    = fftypes.KindReal

	FlagEstimate = fftypes.FlagEstimate
	FlagMeasure  = fftypes.FlagMeasure

	AlgorithmDIT      = fftypes.AlgorithmDIT
	AlgorithmStockham = fftypes.AlgorithmStockham
	AlgorithmDirect   = fftypes.AlgorithmDirect
	AlgorithmIdentity = fftypes.AlgorithmIdentity
)

// Backend prepares plans. See RegisterBackend and LookupBackend.
type Backend = backend.Backend

// Plan is a prepared transform owned by a cache entry.
type Plan = backend.Plan

// PlanSpec describes the transform a Backend must prepare.
type PlanSpec = backend.PlanSpec

// Workspace is the storage a plan is prepared against.
type Workspace = backend.Workspace

// DefaultBackend is the backend used when none is configured.
const DefaultBackend = "radix2"

// RegisterBackend makes b selectable by name through LookupBackend and
// Config.Backend.
func RegisterBackend(b Backend) {
	backend.Register(b)
}

// LookupBackend returns the backend registered under name.
func LookupBackend(name string) (Backend, error) {
	b, ok := backend.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownBackend, name, backend.Names())
	}

	return b, nil
}

// BackendNames returns the registered backend names.
func BackendNames() []string {
	return backend.Names()
}
