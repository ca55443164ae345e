package backend

import (
	"fmt"
	"time"

	"github.com/cwbudde/planfft/internal/cpu"
	"github.com/cwbudde/planfft/internal/fft"
	"github.com/cwbudde/planfft/internal/fftypes"
	m "github.com/cwbudde/planfft/internal/math"
	"github.com/cwbudde/planfft/internal/memory"
	"github.com/cwbudde/planfft/internal/planner"
)

// stockhamThreshold is the inner transform size from which estimate
// planning prefers Stockham over DIT.
const stockhamThreshold = 2048

// measureReps is the number of timed runs per candidate kernel.
const measureReps = 3

// Radix2 plans power-of-two lengths with either a decimation-in-time or a
// Stockham kernel. Real transforms of length n run an n/2-point complex
// transform around a pack/recombine step.
type Radix2 struct {
	wisdom   *planner.Wisdom
	features cpu.Features
}

// NewRadix2 returns a radix-2 backend that records measured decisions in w.
// A nil w selects planner.DefaultWisdom.
func NewRadix2(w *planner.Wisdom) *Radix2 {
	if w == nil {
		w = planner.DefaultWisdom
	}

	return &Radix2{wisdom: w, features: cpu.DetectFeatures()}
}

func (b *Radix2) Name() string {
	return "radix2"
}

func (b *Radix2) Supports(n int, kind fftypes.Kind) bool {
	_ = kind
	return m.IsPowerOf2(n)
}

// Prepare precomputes the tables for spec and picks a kernel. Recorded
// wisdom wins; otherwise FlagMeasure times both kernels on ws and records
// the faster one, and FlagEstimate picks by size.
func (b *Radix2) Prepare(spec PlanSpec, ws Workspace) (Plan, error) {
	if !validSpec(spec) || !b.Supports(spec.Length, spec.Kind) {
		return nil, fmt.Errorf("%w: radix2 needs a power-of-two length, got %d", ErrUnsupported, spec.Length)
	}

	if spec.Length == 1 {
		return &identityPlan{kind: spec.Kind}, nil
	}

	p := newRadix2Plan(spec)

	key := planner.WisdomKey{
		Size:        spec.Length,
		Kind:        spec.Kind,
		Direction:   spec.Direction,
		CPUFeatures: b.features.Mask(),
	}

	switch entry, ok := b.wisdom.Lookup(key); {
	case ok && (entry.Algorithm == fftypes.AlgorithmDIT || entry.Algorithm == fftypes.AlgorithmStockham):
		p.algorithm = entry.Algorithm
	case spec.Flags.Measure():
		p.algorithm = p.measure(ws)
		b.wisdom.Store(planner.WisdomEntry{Key: key, Algorithm: p.algorithm, Timestamp: time.Now()})
	case p.inner >= stockhamThreshold:
		p.algorithm = fftypes.AlgorithmStockham
	default:
		p.algorithm = fftypes.AlgorithmDIT
	}

	return p, nil
}

type radix2Plan struct {
	spec      PlanSpec
	inner     int
	algorithm fftypes.Algorithm

	twiddle []complex128 // inner/2 factors of the inner complex transform
	bitrev  []int

	weight   []complex128 // real forward recombination
	unpackTw []complex128 // real backward exp(2*pi*i*k/n)
}

func newRadix2Plan(spec PlanSpec) *radix2Plan {
	inner := spec.Length
	if spec.Kind == fftypes.KindReal {
		inner = spec.Length / 2
	}

	p := &radix2Plan{
		spec:    spec,
		inner:   inner,
		twiddle: sharedTwiddles.get(inner, max(inner/2, 1), sign(spec.Direction)),
		bitrev:  m.ComputeBitReversalIndices(inner),
	}

	if spec.Kind == fftypes.KindReal {
		if spec.Direction == fftypes.Forward {
			p.weight = fft.ComputeRealWeights(spec.Length)
		} else {
			p.unpackTw = sharedTwiddles.get(spec.Length, inner, 1)
		}
	}

	return p
}

// measure times both kernels in place on ws.Buffer.
func (p *radix2Plan) measure(ws Workspace) fftypes.Algorithm {
	n := p.spec.Kind.Floats(p.spec.Length)
	buf := ws.Buffer[:n]
	scratch := ws.Scratch[:2*p.spec.Length]

	best := fftypes.AlgorithmDIT
	bestTicks := int64(-1)

	for _, candidate := range []fftypes.Algorithm{fftypes.AlgorithmDIT, fftypes.AlgorithmStockham} {
		p.algorithm = candidate

		ticks := cpu.Best(measureReps, func() {
			p.Execute(buf, buf, scratch)
		})
		if bestTicks < 0 || ticks < bestTicks {
			best, bestTicks = candidate, ticks
		}
	}

	return best
}

func (p *radix2Plan) Execute(dst, src, scratch []float64) {
	n := p.spec.Length

	if p.spec.Kind == fftypes.KindComplex {
		p.run(memory.Float64AsComplex(dst[:2*n]), memory.Float64AsComplex(src[:2*n]), memory.Float64AsComplex(scratch[:2*n]))
		return
	}

	spectrum := memory.Float64AsComplex(scratch[:n])
	work := memory.Float64AsComplex(scratch[n : 2*n])

	if p.spec.Direction == fftypes.Forward {
		p.run(spectrum, memory.Float64AsComplex(src[:n]), work)
		fft.RepackForward(dst[:n], spectrum, p.weight)

		return
	}

	fft.RepackInverse(spectrum, src[:n], p.unpackTw)
	p.run(memory.Float64AsComplex(dst[:n]), spectrum, work)
}

func (p *radix2Plan) run(dst, src, scratch []complex128) {
	if p.algorithm == fftypes.AlgorithmStockham {
		fft.Stockham(dst, src, p.twiddle, scratch)
		return
	}

	fft.DIT(dst, src, p.twiddle, p.bitrev)
}

func (p *radix2Plan) Algorithm() fftypes.Algorithm {
	return p.algorithm
}

func (p *radix2Plan) Release() {
	p.twiddle = nil
	p.bitrev = nil
	p.weight = nil
	p.unpackTw = nil
}

// identityPlan handles length-1 transforms, which are the identity in
// both directions.
type identityPlan struct {
	kind fftypes.Kind
}

func (p *identityPlan) Execute(dst, src, _ []float64) {
	copy(dst[:p.kind.Floats(1)], src)
}

func (p *identityPlan) Algorithm() fftypes.Algorithm {
	return fftypes.AlgorithmIdentity
}

func (p *identityPlan) Release() {}
