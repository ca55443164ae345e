// Package layout converts real-transform spectra between the backend
// half-complex layout and the standard packed layout seen by callers.
//
// For a length-n real signal with spectrum X:
//
//	backend:  r0 r1 r2 ... r(n/2) i((n+1)/2-1) ... i2 i1
//	standard: r0 r1 i1 r2 i2 ...                   [r(n/2) if n is even]
//
// Both layouts hold exactly n values.
package layout

// ToStandard writes the standard layout of the half-complex spectrum hc
// into std. len(hc) is the transform length; std must hold at least that
// many values and must not overlap hc.
func ToStandard(std, hc []float64) {
	n := len(hc)
	if n == 0 {
		return
	}

	std = std[:n]
	std[0] = hc[0]

	for k := 1; k < (n+1)/2; k++ {
		std[2*k-1] = hc[k]
		std[2*k] = hc[n-k]
	}

	if n%2 == 0 {
		std[n-1] = hc[n/2]
	}
}

// ToBackend is the inverse of ToStandard. len(std) is the transform length;
// hc must hold at least that many values and must not overlap std.
func ToBackend(hc, std []float64) {
	n := len(std)
	if n == 0 {
		return
	}

	hc = hc[:n]
	hc[0] = std[0]

	for k := 1; k < (n+1)/2; k++ {
		hc[k] = std[2*k-1]
		hc[n-k] = std[2*k]
	}

	if n%2 == 0 {
		hc[n/2] = std[n-1]
	}
}
