package planfft

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/planfft/internal/backend"
)

func newMockManager(t *testing.T, opts ...Option) (*Manager, *backend.Mock) {
	t.Helper()

	mock := backend.NewMock(nil)
	m := NewManager(mock, opts...)
	t.Cleanup(func() { _ = m.Close() })

	return m, mock
}

func complexKey(n int, dir Direction) CacheKey {
	return CacheKey{Length: n, Kind: KindComplex, Direction: dir}
}

func realKey(n int, dir Direction) CacheKey {
	return CacheKey{Length: n, Kind: KindReal, Direction: dir}
}

func randomComplex(n int, seed int64) []complex128 {
	rnd := rand.New(rand.NewSource(seed))

	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(rnd.Float64()*2-1, rnd.Float64()*2-1)
	}

	return out
}

func randomReal(n int, seed int64) []float64 {
	rnd := rand.New(rand.NewSource(seed))

	out := make([]float64, n)
	for i := range out {
		out[i] = rnd.Float64()*2 - 1
	}

	return out
}

// naiveDFT evaluates the forward transform with an exp(-2*pi*i*j*k/n) kernel.
func naiveDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)

	for k := range n {
		var sum complex128
		for j := range n {
			angle := -2 * math.Pi * float64(j*k%n) / float64(n)
			sum += x[j] * cmplx.Rect(1, angle)
		}

		out[k] = sum
	}

	return out
}

// standardLayout packs the spectrum of a real length-n signal as
// r0 r1 i1 r2 i2 .. with a trailing r(n/2) when n is even.
func standardLayout(spectrum []complex128) []float64 {
	n := len(spectrum)
	out := make([]float64, n)
	out[0] = real(spectrum[0])

	for k := 1; 2*k-1 < n; k++ {
		out[2*k-1] = real(spectrum[k])
		if 2*k < n {
			out[2*k] = imag(spectrum[k])
		}
	}

	return out
}

func toComplex(x []float64) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(v, 0)
	}

	return out
}

func requireComplexClose(t *testing.T, want, got []complex128, tol float64) {
	t.Helper()

	require.Len(t, got, len(want))

	for i := range want {
		require.LessOrEqualf(t, cmplx.Abs(got[i]-want[i]), tol, "index %d: got %v want %v", i, got[i], want[i])
	}
}

func requireFloatClose(t *testing.T, want, got []float64, tol float64) {
	t.Helper()

	require.Len(t, got, len(want))

	for i := range want {
		require.InDeltaf(t, want[i], got[i], tol, "index %d", i)
	}
}
