package backend

import (
	"errors"
	"sync"

	"github.com/cwbudde/planfft/internal/fftypes"
)

// ErrMockFailure is returned by Mock.Prepare when a failure was scheduled.
var ErrMockFailure = errors.New("backend: mock prepare failure")

// Mock wraps another backend and records every Prepare and Release.
// It can be told to fail upcoming Prepare calls. It is meant for tests of
// code that owns plans.
type Mock struct {
	inner Backend

	mu       sync.Mutex
	specs    []PlanSpec
	prepared int
	released int
	failures int
}

// NewMock returns a mock delegating to inner. A nil inner selects the DFT
// backend, so every length is supported.
func NewMock(inner Backend) *Mock {
	if inner == nil {
		inner = NewDFT()
	}

	return &Mock{inner: inner}
}

func (b *Mock) Name() string {
	return "mock"
}

func (b *Mock) Supports(n int, kind fftypes.Kind) bool {
	return b.inner.Supports(n, kind)
}

func (b *Mock) Prepare(spec PlanSpec, ws Workspace) (Plan, error) {
	b.mu.Lock()
	b.specs = append(b.specs, spec)

	if b.failures > 0 {
		b.failures--
		b.mu.Unlock()

		return nil, ErrMockFailure
	}
	b.mu.Unlock()

	plan, err := b.inner.Prepare(spec, ws)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.prepared++
	b.mu.Unlock()

	return &mockPlan{Plan: plan, owner: b}, nil
}

// FailNext makes the next n Prepare calls return ErrMockFailure.
func (b *Mock) FailNext(n int) {
	b.mu.Lock()
	b.failures = n
	b.mu.Unlock()
}

// Prepared returns the number of successful Prepare calls.
func (b *Mock) Prepared() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.prepared
}

// Released returns the number of plans released.
func (b *Mock) Released() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.released
}

// Live returns the number of prepared plans not yet released.
func (b *Mock) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.prepared - b.released
}

// Specs returns every spec passed to Prepare, including failed ones.
func (b *Mock) Specs() []PlanSpec {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]PlanSpec(nil), b.specs...)
}

type mockPlan struct {
	Plan
	owner *Mock
	once  sync.Once
}

func (p *mockPlan) Release() {
	p.once.Do(func() {
		p.Plan.Release()

		p.owner.mu.Lock()
		p.owner.released++
		p.owner.mu.Unlock()
	})
}
