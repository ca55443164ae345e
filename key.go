package planfft

import "fmt"

// CacheKey is the identity of a reusable plan. Two keys are equal exactly
// when all fields are equal, and equal keys always yield interchangeable
// entries.
type CacheKey struct {
	Length    int
	Kind      Kind
	Direction Direction
	// Aligned records whether every buffer in the batch starts on the SIMD
	// alignment boundary.
	Aligned bool
	Flags   Flags
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s/%s/n=%d/aligned=%t/%s", k.Kind, k.Direction, k.Length, k.Aligned, k.Flags)
}

func (k CacheKey) spec() PlanSpec {
	return PlanSpec{
		Length:    k.Length,
		Kind:      k.Kind,
		Direction: k.Direction,
		Aligned:   k.Aligned,
		Flags:     k.Flags,
	}
}

// floats returns the number of float64 values one buffer occupies.
func (k CacheKey) floats() int {
	return k.Kind.Floats(k.Length)
}
