// Package memory allocates the aligned float64 scratch blocks owned by
// cache entries and accounts for them against an optional byte budget.
package memory

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"unsafe"
)

// ErrExhausted is returned when an allocation would exceed the arena budget.
var ErrExhausted = errors.New("memory: scratch budget exhausted")

const float64Size = int64(unsafe.Sizeof(float64(0)))

// Block is an aligned run of float64 values owned by one arena.
type Block struct {
	Data    []float64
	backing []byte
	size    int64
	arena   *Arena
}

// Bytes returns the number of bytes charged to the arena for b.
func (b *Block) Bytes() int64 {
	if b == nil {
		return 0
	}

	return b.size
}

// Free returns the block to its arena. Freeing twice is a no-op.
func (b *Block) Free() {
	if b == nil || b.arena == nil {
		return
	}

	b.arena.release(b.size)
	b.arena = nil
	b.Data = nil
	b.backing = nil
}

// Arena hands out aligned blocks and tracks bytes in use.
// A zero limit means unlimited. Arena is safe for concurrent use.
type Arena struct {
	mu    sync.Mutex
	limit int64
	inUse int64
	peak  int64
	align uintptr
}

// NewArena returns an arena with the given byte budget and alignment.
// align must be a power of two no smaller than 8; smaller values are raised to 8.
func NewArena(limit int64, align uintptr) *Arena {
	if align < uintptr(float64Size) {
		align = uintptr(float64Size)
	}

	if limit < 0 {
		limit = 0
	}

	return &Arena{limit: limit, align: align}
}

// Alloc returns a zeroed block of n float64 values starting on the arena
// alignment boundary.
func (a *Arena) Alloc(n int) (*Block, error) {
	if n < 0 {
		return nil, fmt.Errorf("memory: negative block length %d", n)
	}

	if n > (math.MaxInt-int(a.align))/int(float64Size) {
		return nil, fmt.Errorf("%w: %d values overflow", ErrExhausted, n)
	}

	size := int64(n) * float64Size

	a.mu.Lock()
	if a.limit > 0 && a.inUse+size > a.limit {
		inUse := a.inUse
		a.mu.Unlock()

		return nil, fmt.Errorf("%w: need %d bytes, %d of %d in use", ErrExhausted, size, inUse, a.limit)
	}

	a.inUse += size
	if a.inUse > a.peak {
		a.peak = a.inUse
	}
	a.mu.Unlock()

	data, backing := AllocAlignedFloat64(n, a.align)

	return &Block{Data: data, backing: backing, size: size, arena: a}, nil
}

// InUse returns the bytes currently charged to the arena.
func (a *Arena) InUse() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.inUse
}

// Peak returns the largest InUse value observed.
func (a *Arena) Peak() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.peak
}

// Limit returns the byte budget, 0 meaning unlimited.
func (a *Arena) Limit() int64 {
	return a.limit
}

// Alignment returns the boundary blocks are aligned to.
func (a *Arena) Alignment() uintptr {
	return a.align
}

func (a *Arena) release(size int64) {
	a.mu.Lock()
	a.inUse -= size
	a.mu.Unlock()
}

// AllocAlignedFloat64 allocates n float64 values whose first element sits
// on an align-byte boundary. The backing slice must be kept alive as long
// as the data is in use.
func AllocAlignedFloat64(n int, align uintptr) ([]float64, []byte) {
	if n == 0 {
		return []float64{}, nil
	}

	backing := make([]byte, n*int(float64Size)+int(align))
	base := uintptr(unsafe.Pointer(&backing[0]))
	offset := (align - base%align) % align

	data := unsafe.Slice((*float64)(unsafe.Pointer(&backing[offset])), n)

	return data, backing
}
