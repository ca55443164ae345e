package fft

import "math"

// ComputeRealWeights returns the recombination weights for a length-n real
// transform built on an n/2-point complex transform:
// U[k] = 0.5*(1+sin(t)) + 0.5i*cos(t), t = 2*pi*k/n, for k = 0..n/2-1.
func ComputeRealWeights(n int) []complex128 {
	half := n / 2
	if half == 0 {
		return nil
	}

	weight := make([]complex128, half)
	for k := range weight {
		theta := 2 * math.Pi * float64(k) / float64(n)
		weight[k] = complex(0.5*(1+math.Sin(theta)), 0.5*math.Cos(theta))
	}

	return weight
}

// RepackForward turns Z, the n/2-point transform of the signal packed as
// z[j] = x[2j] + i*x[2j+1], into the half-complex spectrum hc of length n.
// n must be even.
func RepackForward(hc []float64, z, weight []complex128) {
	half := len(z)
	n := 2 * half

	y0r := real(z[0])
	y0i := imag(z[0])
	hc[0] = y0r + y0i
	hc[half] = y0r - y0i

	for k := 1; k < half; k++ {
		a := z[k]
		bSrc := z[half-k]
		b := complex(real(bSrc), -imag(bSrc))
		x := a - weight[k]*(a-b)

		hc[k] = real(x)
		hc[n-k] = imag(x)
	}
}

// RepackInverse rebuilds the n/2-point spectrum 2*Z from the half-complex
// spectrum hc of length n, so that an unnormalized inverse transform of z
// yields n*x packed as x[2j] + i*x[2j+1]. twiddle holds exp(2*pi*i*k/n)
// for k = 0..n/2-1.
func RepackInverse(z []complex128, hc []float64, twiddle []complex128) {
	half := len(z)
	n := 2 * half

	spectrum := func(k int) complex128 {
		switch k {
		case 0:
			return complex(hc[0], 0)
		case half:
			return complex(hc[half], 0)
		default:
			return complex(hc[k], hc[n-k])
		}
	}

	for k := range half {
		xk := spectrum(k)
		xm := spectrum(half - k)
		xmc := complex(real(xm), -imag(xm))

		even := xk + xmc
		odd := (xk - xmc) * twiddle[k]
		z[k] = even + complex(-imag(odd), real(odd))
	}
}

// DirectRealForward evaluates the half-complex spectrum of the real signal
// src term by term. twiddle holds all n forward factors. hc must not alias src.
func DirectRealForward(hc, src []float64, twiddle []complex128) {
	n := len(src)

	for k := 0; k <= n/2; k++ {
		var re, im float64

		idx := 0
		for j := range n {
			w := twiddle[idx]
			re += src[j] * real(w)
			im += src[j] * imag(w)

			idx += k
			if idx >= n {
				idx -= n
			}
		}

		hc[k] = re
		if k > 0 && n-k > k {
			hc[n-k] = im
		}
	}
}

// DirectRealInverse evaluates the unnormalized real inverse of the
// half-complex spectrum hc term by term. twiddle holds all n backward
// factors. dst must not alias hc.
func DirectRealInverse(dst, hc []float64, twiddle []complex128) {
	n := len(hc)

	for j := range n {
		sum := hc[0]

		idx := j
		for k := 1; k < (n+1)/2; k++ {
			if idx >= n {
				idx -= n
			}

			w := twiddle[idx]
			sum += 2 * (hc[k]*real(w) - hc[n-k]*imag(w))
			idx += j
		}

		if n%2 == 0 {
			if j%2 == 0 {
				sum += hc[n/2]
			} else {
				sum -= hc[n/2]
			}
		}

		dst[j] = sum
	}
}
