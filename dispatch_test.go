package planfft

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cwbudde/planfft/internal/backend"
	"github.com/cwbudde/planfft/internal/memory"
)

func backends() map[string]Backend {
	return map[string]Backend{
		"radix2": backend.NewRadix2(nil),
		"dft":    backend.NewDFT(),
	}
}

func TestTransformComplexMatchesDFT(t *testing.T) {
	t.Parallel()

	for name, b := range backends() {
		for _, n := range []int{1, 2, 4, 8, 64, 256} {
			t.Run(fmt.Sprintf("%s/n=%d", name, n), func(t *testing.T) {
				t.Parallel()

				m := NewManager(b)
				defer m.Close()

				x := randomComplex(n, int64(n))
				buf := append([]complex128(nil), x...)

				require.NoError(t, m.TransformComplex(buf, n, Forward, 1, false))
				requireComplexClose(t, naiveDFT(x), buf, 1e-9*float64(n))
			})
		}
	}
}

func TestTransformRealMatchesDFT(t *testing.T) {
	t.Parallel()

	for name, b := range backends() {
		for _, n := range []int{1, 2, 4, 8, 32, 128} {
			t.Run(fmt.Sprintf("%s/n=%d", name, n), func(t *testing.T) {
				t.Parallel()

				m := NewManager(b)
				defer m.Close()

				x := randomReal(n, int64(n))
				buf := append([]float64(nil), x...)

				require.NoError(t, m.TransformReal(buf, n, Forward, 1, false))
				requireFloatClose(t, standardLayout(naiveDFT(toComplex(x))), buf, 1e-9*float64(n))
			})
		}
	}
}

func TestTransformRealOddLengths(t *testing.T) {
	t.Parallel()

	m := NewManager(backend.NewDFT())
	defer m.Close()

	for _, n := range []int{3, 5, 7, 9} {
		x := randomReal(n, int64(n))
		buf := append([]float64(nil), x...)

		require.NoError(t, m.TransformReal(buf, n, Forward, 1, false))
		requireFloatClose(t, standardLayout(naiveDFT(toComplex(x))), buf, 1e-9)

		require.NoError(t, m.TransformReal(buf, n, Backward, 1, true))
		requireFloatClose(t, x, buf, 1e-9)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for name, b := range backends() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := NewManager(b)
			defer m.Close()

			for _, n := range []int{1, 2, 16, 1024} {
				c := randomComplex(n, 7)
				cbuf := append([]complex128(nil), c...)

				require.NoError(t, m.TransformComplex(cbuf, n, Forward, 1, false))
				require.NoError(t, m.TransformComplex(cbuf, n, Backward, 1, true))
				requireComplexClose(t, c, cbuf, 1e-9)

				r := randomReal(n, 11)
				rbuf := append([]float64(nil), r...)

				require.NoError(t, m.TransformReal(rbuf, n, Forward, 1, false))
				require.NoError(t, m.TransformReal(rbuf, n, Backward, 1, true))
				requireFloatClose(t, r, rbuf, 1e-9)
			}
		})
	}
}

func TestBackwardIsUnnormalized(t *testing.T) {
	t.Parallel()

	const n = 16

	m := NewManager(nil)
	defer m.Close()

	x := randomReal(n, 3)
	buf := append([]float64(nil), x...)

	require.NoError(t, m.TransformReal(buf, n, Forward, 1, false))
	require.NoError(t, m.TransformReal(buf, n, Backward, 1, false))

	for i := range x {
		assert.InDelta(t, n*x[i], buf[i], 1e-9)
	}
}

func TestNormalizeForward(t *testing.T) {
	t.Parallel()

	const n = 8

	m := NewManager(nil)
	defer m.Close()

	buf := make([]complex128, n)
	buf[0] = 1

	require.NoError(t, m.TransformComplex(buf, n, Forward, 1, true))

	for _, v := range buf {
		assert.InDelta(t, 1.0/n, real(v), 1e-12)
		assert.InDelta(t, 0, imag(v), 1e-12)
	}
}

func TestImpulseAndZeros(t *testing.T) {
	t.Parallel()

	const n = 8

	m := NewManager(nil)
	defer m.Close()

	c := make([]complex128, n)
	c[0] = 1
	require.NoError(t, m.TransformComplex(c, n, Forward, 1, false))
	requireComplexClose(t, []complex128{1, 1, 1, 1, 1, 1, 1, 1}, c, 1e-12)

	r := make([]float64, n)
	r[0] = 1
	require.NoError(t, m.TransformReal(r, n, Forward, 1, false))
	requireFloatClose(t, []float64{1, 1, 0, 1, 0, 1, 0, 1}, r, 1e-12)

	z := make([]float64, n)
	require.NoError(t, m.TransformReal(z, n, Forward, 1, false))
	assert.Equal(t, make([]float64, n), z)
}

func TestBatchMatchesSingleCalls(t *testing.T) {
	t.Parallel()

	const (
		n       = 32
		howmany = 4
	)

	for name, b := range backends() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := NewManager(b)
			defer m.Close()

			x := randomReal(n*howmany, 5)
			batch := append([]float64(nil), x...)
			single := append([]float64(nil), x...)

			require.NoError(t, m.TransformReal(batch, n, Forward, howmany, true))

			for i := range howmany {
				require.NoError(t, m.TransformReal(single[i*n:(i+1)*n], n, Forward, 1, true))
			}

			assert.Equal(t, single, batch)

			cx := randomComplex(n*howmany, 9)
			cbatch := append([]complex128(nil), cx...)
			csingle := append([]complex128(nil), cx...)

			require.NoError(t, m.TransformComplex(cbatch, n, Backward, howmany, false))

			for i := range howmany {
				require.NoError(t, m.TransformComplex(csingle[i*n:(i+1)*n], n, Backward, 1, false))
			}

			assert.Equal(t, csingle, cbatch)
		})
	}
}

func TestTransformLeavesTailUntouched(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	defer m.Close()

	buf := randomReal(10, 1)
	tail := append([]float64(nil), buf[8:]...)

	require.NoError(t, m.TransformReal(buf, 4, Forward, 2, true))
	assert.Equal(t, tail, buf[8:])
}

func TestTransformValidation(t *testing.T) {
	t.Parallel()

	m, mock := newMockManager(t)
	r2 := NewManager(backend.NewRadix2(nil))
	defer r2.Close()

	tests := []struct {
		name    string
		m       *Manager
		buf     []float64
		n       int
		dir     Direction
		howmany int
		want    error
	}{
		{"nil buffer", m, nil, 0, 0, 0, ErrNilSlice},
		{"zero length", m, make([]float64, 4), 0, Forward, 1, ErrInvalidLength},
		{"negative length", m, make([]float64, 4), -4, Forward, 1, ErrInvalidLength},
		{"zero batch", m, make([]float64, 4), 4, Forward, 0, ErrInvalidBatch},
		{"short buffer", m, make([]float64, 7), 4, Forward, 2, ErrLengthMismatch},
		{"bad direction", m, make([]float64, 4), 4, 0, 1, ErrInvalidDirection},
		{"unsupported length", r2, make([]float64, 6), 6, Forward, 1, ErrInvalidLength},
	}

	for _, tt := range tests {
		err := tt.m.TransformReal(tt.buf, tt.n, tt.dir, tt.howmany, true)
		require.ErrorIs(t, err, tt.want, tt.name)
	}

	require.ErrorIs(t, m.TransformComplex(nil, 4, Forward, 1, false), ErrNilSlice)
	require.ErrorIs(t, m.TransformComplex(make([]complex128, 3), 4, Forward, 1, false), ErrLengthMismatch)

	assert.Zero(t, mock.Prepared())
	assert.Zero(t, r2.Len())
}

func TestInvalidDirection(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	m, mock := newMockManager(t, WithLogger(zap.New(core)))

	for _, dir := range []Direction{0, 2, -2} {
		buf := randomReal(8, int64(dir))
		orig := append([]float64(nil), buf...)

		err := m.TransformReal(buf, 8, dir, 1, true)
		require.ErrorIs(t, err, ErrInvalidDirection)
		assert.Equal(t, orig, buf)

		cbuf := randomComplex(8, 1)
		corig := append([]complex128(nil), cbuf...)

		err = m.TransformComplex(cbuf, 8, dir, 1, true)
		require.ErrorIs(t, err, ErrInvalidDirection)
		assert.Equal(t, corig, cbuf)
	}

	warnings := logs.FilterMessage("invalid transform direction").All()
	require.Len(t, warnings, 6)
	assert.Equal(t, zap.WarnLevel, warnings[0].Level)
	assert.Equal(t, int64(0), warnings[0].ContextMap()["direction"])
	assert.Zero(t, mock.Prepared())
}

func TestAlignmentInference(t *testing.T) {
	t.Parallel()

	const align = 16

	m, mock := newMockManager(t, WithAlignment(align))

	// Real n=3 has a 24-byte stride: the first buffer is aligned, the
	// second is not, so the batch shares the unaligned key.
	partly, _ := memory.AllocAlignedFloat64(6, align)
	require.NoError(t, m.TransformReal(partly, 3, Forward, 2, false))

	backing, _ := memory.AllocAlignedFloat64(7, align)
	unaligned := backing[1:]
	require.NoError(t, m.TransformReal(unaligned, 3, Forward, 2, false))

	assert.Equal(t, []CacheKey{realKey(3, Forward)}, m.Keys())
	assert.Equal(t, 1, mock.Prepared())

	// A 32-byte stride keeps every buffer on the boundary.
	aligned, _ := memory.AllocAlignedFloat64(8, align)
	require.NoError(t, m.TransformReal(aligned, 4, Forward, 2, false))

	single, _ := memory.AllocAlignedFloat64(3, align)
	require.NoError(t, m.TransformReal(single, 3, Forward, 1, false))

	keys := m.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, CacheKey{Length: 4, Kind: KindReal, Direction: Forward, Aligned: true}, keys[1])
	assert.Equal(t, CacheKey{Length: 3, Kind: KindReal, Direction: Forward, Aligned: true}, keys[2])

	specs := mock.Specs()
	require.Len(t, specs, 3)
	assert.False(t, specs[0].Aligned)
	assert.True(t, specs[1].Aligned)
}

func TestFlagsReachBackend(t *testing.T) {
	t.Parallel()

	m, mock := newMockManager(t, WithFlags(FlagMeasure))

	require.NoError(t, m.TransformComplex(make([]complex128, 4), 4, Forward, 1, false))

	specs := mock.Specs()
	require.Len(t, specs, 1)
	assert.Equal(t, FlagMeasure, specs[0].Flags)
	assert.Equal(t, FlagMeasure, m.Keys()[0].Flags)
}

func TestTransformRebuildsAfterEviction(t *testing.T) {
	t.Parallel()

	m, mock := newMockManager(t, WithCapacity(1))

	x := randomComplex(8, 2)
	buf := append([]complex128(nil), x...)

	require.NoError(t, m.TransformComplex(buf, 8, Forward, 1, false))
	require.NoError(t, m.TransformComplex(make([]complex128, 4), 4, Forward, 1, false))
	require.NoError(t, m.TransformComplex(buf, 8, Backward, 1, true))
	require.NoError(t, m.TransformComplex(buf, 8, Forward, 1, false))
	require.NoError(t, m.TransformComplex(buf, 8, Backward, 1, true))

	requireComplexClose(t, x, buf, 1e-9)
	assert.Equal(t, 5, mock.Prepared())
	assert.Equal(t, 4, mock.Released())
}
