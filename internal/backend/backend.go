// Package backend defines the capability interface the plan cache uses to
// prepare and run transforms, a name-keyed registry, and the built-in
// implementations.
package backend

import (
	"errors"
	"sort"
	"sync"

	"github.com/cwbudde/planfft/internal/fftypes"
)

var (
	// ErrUnsupported is returned by Prepare for lengths or kinds the backend
	// cannot plan.
	ErrUnsupported = errors.New("backend: unsupported transform")

	// ErrReleased is returned when a released plan would be reused.
	ErrReleased = errors.New("backend: plan released")
)

// PlanSpec describes the transform a plan must perform.
type PlanSpec struct {
	Length    int
	Kind      fftypes.Kind
	Direction fftypes.Direction
	Aligned   bool
	Flags     fftypes.Flags
}

// Workspace is the storage a plan is prepared against. Measured planning
// may overwrite both slices. Each holds at least 2*Length values.
type Workspace struct {
	Buffer  []float64
	Scratch []float64
}

// Backend prepares plans.
type Backend interface {
	Name() string
	// Supports reports whether Prepare can plan a length-n transform of kind.
	Supports(n int, kind fftypes.Kind) bool
	// Prepare builds a plan for spec. It is the only place planning cost is paid.
	Prepare(spec PlanSpec, ws Workspace) (Plan, error)
}

// Plan is a prepared transform of one fixed spec.
//
// Execute reads spec.Kind.Floats(Length) values from src and writes as many
// to dst. Complex data is interleaved real/imaginary. Real forward output and
// real backward input use the half-complex layout
// r0 r1 .. r(n/2) i((n+1)/2-1) .. i1. Backward transforms are unnormalized.
// dst must not alias src or scratch; scratch holds at least 2*Length values.
// Execute does not allocate.
type Plan interface {
	Execute(dst, src, scratch []float64)
	Algorithm() fftypes.Algorithm
	Release()
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Backend)
)

// Register makes b available under b.Name(), replacing any previous
// backend of that name.
func Register(b Backend) {
	registryMu.Lock()
	registry[b.Name()] = b
	registryMu.Unlock()
}

// Lookup returns the backend registered under name.
func Lookup(name string) (Backend, bool) {
	registryMu.RLock()
	b, ok := registry[name]
	registryMu.RUnlock()

	return b, ok
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	registryMu.RLock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	registryMu.RUnlock()

	sort.Strings(names)

	return names
}

func validSpec(spec PlanSpec) bool {
	return spec.Length >= 1 && spec.Direction.Valid() &&
		(spec.Kind == fftypes.KindComplex || spec.Kind == fftypes.KindReal)
}

func sign(d fftypes.Direction) float64 {
	if d == fftypes.Backward {
		return 1
	}

	return -1
}

func init() {
	Register(NewRadix2(nil))
	Register(NewDFT())
}
