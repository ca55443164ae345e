// Package cpu reports the CPU capabilities that influence plan identity
// and provides the tick counter used by measured planning.
package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Features describes CPU capabilities relevant to buffer alignment and
// kernel selection.
type Features struct {
	HasSSE2      bool
	HasAVX       bool
	HasAVX2      bool
	HasAVX512    bool
	HasNEON      bool
	Architecture string
}

// DetectFeatures reports the available CPU features for the current process.
func DetectFeatures() Features {
	return Features{
		HasSSE2:      cpu.X86.HasSSE2,
		HasAVX:       cpu.X86.HasAVX,
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512:    cpu.X86.HasAVX512F,
		HasNEON:      cpu.ARM64.HasASIMD,
		Architecture: runtime.GOARCH,
	}
}

// Mask packs the feature set into a bit mask for wisdom keys.
func (f Features) Mask() uint64 {
	var mask uint64

	if f.HasSSE2 {
		mask |= 1 << 0
	}

	if f.HasAVX {
		mask |= 1 << 1
	}

	if f.HasAVX2 {
		mask |= 1 << 2
	}

	if f.HasAVX512 {
		mask |= 1 << 3
	}

	if f.HasNEON {
		mask |= 1 << 4
	}

	return mask
}

// SIMDAlignment is the byte boundary a buffer must start on to count as
// aligned: 64 with AVX-512, 32 with AVX, 16 otherwise.
func (f Features) SIMDAlignment() uintptr {
	switch {
	case f.HasAVX512:
		return 64
	case f.HasAVX:
		return 32
	default:
		return 16
	}
}
