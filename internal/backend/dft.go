package backend

import (
	"fmt"

	"github.com/cwbudde/planfft/internal/fft"
	"github.com/cwbudde/planfft/internal/fftypes"
	"github.com/cwbudde/planfft/internal/memory"
)

// DFT is the direct O(n^2) reference backend. It plans any length.
type DFT struct{}

// NewDFT returns the reference backend.
func NewDFT() *DFT {
	return &DFT{}
}

func (b *DFT) Name() string {
	return "dft"
}

func (b *DFT) Supports(n int, kind fftypes.Kind) bool {
	_ = kind
	return n >= 1
}

// Prepare precomputes the n twiddle factors for the spec direction.
// The workspace is not touched.
func (b *DFT) Prepare(spec PlanSpec, _ Workspace) (Plan, error) {
	if !validSpec(spec) {
		return nil, fmt.Errorf("%w: dft %+v", ErrUnsupported, spec)
	}

	return &dftPlan{
		spec:    spec,
		twiddle: sharedTwiddles.get(spec.Length, spec.Length, sign(spec.Direction)),
	}, nil
}

type dftPlan struct {
	spec    PlanSpec
	twiddle []complex128
}

func (p *dftPlan) Execute(dst, src, _ []float64) {
	n := p.spec.Length

	switch {
	case p.spec.Kind == fftypes.KindComplex:
		fft.Direct(memory.Float64AsComplex(dst[:2*n]), memory.Float64AsComplex(src[:2*n]), p.twiddle)
	case p.spec.Direction == fftypes.Forward:
		fft.DirectRealForward(dst[:n], src[:n], p.twiddle)
	default:
		fft.DirectRealInverse(dst[:n], src[:n], p.twiddle)
	}
}

func (p *dftPlan) Algorithm() fftypes.Algorithm {
	return fftypes.AlgorithmDirect
}

func (p *dftPlan) Release() {
	p.twiddle = nil
}
