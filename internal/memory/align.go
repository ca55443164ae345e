package memory

import "unsafe"

// IsAligned reports whether the first element of s starts on an
// align-byte boundary. Empty slices are never aligned.
func IsAligned[T any](s []T, align uintptr) bool {
	if len(s) == 0 || align == 0 {
		return false
	}

	return uintptr(unsafe.Pointer(&s[0]))%align == 0
}

// ComplexAsFloat64 views c as interleaved real/imaginary float64 values
// without copying.
func ComplexAsFloat64(c []complex128) []float64 {
	if len(c) == 0 {
		return nil
	}

	return unsafe.Slice((*float64)(unsafe.Pointer(&c[0])), 2*len(c))
}

// Float64AsComplex views interleaved float64 values as complex128 without
// copying. A trailing odd value is dropped from the view.
func Float64AsComplex(f []float64) []complex128 {
	if len(f) < 2 {
		return nil
	}

	return unsafe.Slice((*complex128)(unsafe.Pointer(&f[0])), len(f)/2)
}
