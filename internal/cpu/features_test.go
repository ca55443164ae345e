package cpu

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFeatures(t *testing.T) {
	t.Parallel()

	f := DetectFeatures()
	assert.Equal(t, runtime.GOARCH, f.Architecture)

	align := f.SIMDAlignment()
	assert.Contains(t, []uintptr{16, 32, 64}, align)
}

func TestFeaturesMask(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0), Features{}.Mask())
	assert.Equal(t, uint64(0b101), Features{HasSSE2: true, HasAVX2: true}.Mask())
	assert.Equal(t, uint64(1<<4), Features{HasNEON: true}.Mask())
}

func TestSIMDAlignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		f    Features
		want uintptr
	}{
		{"baseline", Features{}, 16},
		{"sse2", Features{HasSSE2: true}, 16},
		{"avx", Features{HasSSE2: true, HasAVX: true}, 32},
		{"avx512", Features{HasAVX: true, HasAVX512: true}, 64},
		{"neon", Features{HasNEON: true}, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.f.SIMDAlignment())
		})
	}
}
