package backend

import (
	"sync"

	"github.com/cwbudde/planfft/internal/fft"
)

type twiddleKey struct {
	size  int
	count int
	sign  float64
}

// twiddleCache shares read-only twiddle tables between plans, so a plan
// rebuilt after eviction skips the trigonometry.
type twiddleCache struct {
	m sync.Map // map[twiddleKey][]complex128
}

var sharedTwiddles twiddleCache

// get returns the first count factors exp(sign*2*pi*i*k/size).
// Callers must not modify the result.
func (c *twiddleCache) get(size, count int, sign float64) []complex128 {
	key := twiddleKey{size: size, count: count, sign: sign}
	if v, ok := c.m.Load(key); ok {
		return v.([]complex128)
	}

	actual, _ := c.m.LoadOrStore(key, fft.ComputeTwiddleFactors(size, count, sign))

	return actual.([]complex128)
}

func (c *twiddleCache) len() int {
	n := 0

	c.m.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}
