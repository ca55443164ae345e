package cpu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicks(t *testing.T) {
	c1 := Ticks()

	time.Sleep(time.Microsecond)

	c2 := Ticks()
	assert.Greater(t, c2, c1, "counter must be monotonic")
}

func TestTicksSince(t *testing.T) {
	start := Ticks()

	time.Sleep(time.Millisecond)

	elapsed := TicksSince(start)
	assert.GreaterOrEqual(t, elapsed, int64(time.Millisecond))
}

func TestBest(t *testing.T) {
	calls := 0
	best := Best(5, func() {
		calls++
		if calls == 1 {
			time.Sleep(2 * time.Millisecond)
		}
	})

	assert.Equal(t, 5, calls)
	assert.GreaterOrEqual(t, best, int64(0))
	assert.Less(t, best, int64(2*time.Millisecond), "the slow first run must not be the best")

	calls = 0
	Best(0, func() { calls++ })
	assert.Equal(t, 1, calls)
}

func BenchmarkTicks(b *testing.B) {
	for range b.N {
		_ = Ticks()
	}
}
