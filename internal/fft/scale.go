package fft

// ScaleFloat64InPlace multiplies every element of dst by scale.
// Complex data scales identically through its interleaved float64 view.
func ScaleFloat64InPlace(dst []float64, scale float64) {
	if scale == 1 {
		return
	}

	for i := range dst {
		dst[i] *= scale
	}
}
