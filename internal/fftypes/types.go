// Package fftypes holds the small value types shared by the public package
// and the internal backends.
package fftypes

import "fmt"

// Direction selects the sign of the transform exponent.
// Forward is +1 and Backward is -1; every other value is invalid.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Valid reports whether d is Forward or Backward.
func (d Direction) Valid() bool {
	return d == Forward || d == Backward
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Kind selects between complex and real-valued transforms.
type Kind uint8

const (
	KindComplex Kind = iota
	KindReal
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindComplex:
		return "complex"
	case KindReal:
		return "real"
	default:
		return "unknown"
	}
}

// Floats returns the number of float64 values a buffer of n samples of
// this kind occupies.
func (k Kind) Floats(n int) int {
	if k == KindComplex {
		return 2 * n
	}

	return n
}

// Flags are backend planning hints.
type Flags uint8

const (
	// FlagEstimate picks a kernel heuristically. It is the zero value.
	FlagEstimate Flags = 0
	// FlagMeasure times the candidate kernels when the plan is prepared.
	FlagMeasure Flags = 1 << 0
)

// Measure reports whether measured planning was requested.
func (f Flags) Measure() bool {
	return f&FlagMeasure != 0
}

// String returns a human-readable name for the flags.
func (f Flags) String() string {
	if f.Measure() {
		return "measure"
	}

	return "estimate"
}
