// Package fft holds the double-precision kernels the built-in backends run:
// radix-2 decimation in time, radix-2 Stockham, direct evaluation and the
// real-signal packing around a half-size complex transform.
//
// Kernels are unnormalized. Callers own every slice; kernels never allocate.
package fft

import (
	"math"

	m "github.com/cwbudde/planfft/internal/math"
)

// ComputeTwiddleFactors returns W^k = exp(sign*2*pi*i*k/n) for k = 0..count-1.
// sign is -1 for forward transforms and +1 for backward ones.
func ComputeTwiddleFactors(n, count int, sign float64) []complex128 {
	if n <= 0 || count <= 0 {
		return nil
	}

	twiddle := make([]complex128, count)
	for k := range count {
		angle := sign * m.TwoPi * float64(k) / float64(n)
		twiddle[k] = complex(math.Cos(angle), math.Sin(angle))
	}

	return twiddle
}

// DIT runs an iterative radix-2 decimation-in-time transform of src into dst.
// len(src) must be a power of two n, twiddle holds n/2 factors and bitrev
// the n-point bit-reversal permutation. dst may alias src.
func DIT(dst, src, twiddle []complex128, bitrev []int) {
	n := len(src)
	dst = dst[:n]

	if sameSlice(dst, src) {
		for i, j := range bitrev {
			if i < j {
				dst[i], dst[j] = dst[j], dst[i]
			}
		}
	} else {
		for i, j := range bitrev {
			dst[i] = src[j]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := n / size

		for start := 0; start < n; start += size {
			for j := range half {
				w := twiddle[j*step]
				a := dst[start+j]
				b := w * dst[start+j+half]
				dst[start+j] = a + b
				dst[start+j+half] = a - b
			}
		}
	}
}

// Stockham runs a radix-2 Stockham autosort transform of src into dst,
// ping-ponging through scratch. len(src) must be a power of two n,
// twiddle holds n/2 factors and scratch at least n values. dst may alias
// src but neither may alias scratch.
func Stockham(dst, src, twiddle, scratch []complex128) {
	n := len(src)
	dst = dst[:n]

	if !sameSlice(dst, src) {
		copy(dst, src)
	}

	x, y := dst, scratch[:n]

	for l, s := n>>1, 1; l >= 1; l, s = l>>1, s<<1 {
		for j := range l {
			w := twiddle[j*s]
			in := j * s
			out := 2 * j * s

			for k := range s {
				c0 := x[in+k]
				c1 := x[in+k+l*s]
				y[out+k] = c0 + c1
				y[out+k+s] = w * (c0 - c1)
			}
		}

		x, y = y, x
	}

	if !sameSlice(x, dst) {
		copy(dst, x)
	}
}

// Direct evaluates the transform of src into dst term by term.
// twiddle holds all n factors. dst must not alias src.
func Direct(dst, src, twiddle []complex128) {
	n := len(src)

	for k := range n {
		var sum complex128

		idx := 0
		for j := range n {
			sum += src[j] * twiddle[idx]

			idx += k
			if idx >= n {
				idx -= n
			}
		}

		dst[k] = sum
	}
}

func sameSlice[T any](a, b []T) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}
