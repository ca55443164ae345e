package fftypes

// Algorithm names the kernel a prepared plan runs.
type Algorithm uint8

const (
	AlgorithmAuto     Algorithm = iota
	AlgorithmDIT                // Iterative radix-2 decimation in time
	AlgorithmStockham           // Radix-2 Stockham autosort
	AlgorithmDirect             // O(n^2) direct evaluation
	AlgorithmIdentity           // Length-1 transforms
)

// String returns the name used in logs and wisdom files.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmAuto:
		return "auto"
	case AlgorithmDIT:
		return "dit"
	case AlgorithmStockham:
		return "stockham"
	case AlgorithmDirect:
		return "direct"
	case AlgorithmIdentity:
		return "identity"
	default:
		return "unknown"
	}
}

// ParseAlgorithm is the inverse of Algorithm.String.
// Unknown names map to AlgorithmAuto and false.
func ParseAlgorithm(name string) (Algorithm, bool) {
	for _, a := range []Algorithm{AlgorithmDIT, AlgorithmStockham, AlgorithmDirect, AlgorithmIdentity} {
		if a.String() == name {
			return a, true
		}
	}

	return AlgorithmAuto, false
}
