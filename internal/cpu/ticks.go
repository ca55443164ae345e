package cpu

import "time"

// epoch anchors the monotonic clock reading used by Ticks.
var epoch = time.Now()

// Ticks returns nanoseconds of the runtime's monotonic clock since process
// start. Only differences are meaningful.
func Ticks() int64 {
	return int64(time.Since(epoch))
}

// TicksSince returns the nanoseconds elapsed since start, a Ticks value.
func TicksSince(start int64) int64 {
	return Ticks() - start
}

// Best runs fn reps times and returns the smallest elapsed time in
// nanoseconds. reps below 1 is treated as 1.
func Best(reps int, fn func()) int64 {
	if reps < 1 {
		reps = 1
	}

	best := int64(-1)

	for range reps {
		start := Ticks()
		fn()

		elapsed := TicksSince(start)
		if best < 0 || elapsed < best {
			best = elapsed
		}
	}

	return best
}
