// Package cpu provides the timing source used by measuring planners and
// the CPU feature set recorded alongside wisdom.
package cpu

import "time"

// epoch anchors the monotonic clock reading.
var epoch = time.Now()

// ReadCycleCounter reads a monotonic tick counter. Ticks are nanoseconds
// of the runtime's monotonic clock, which is portable and immune to wall
// clock adjustments.
func ReadCycleCounter() int64 {
	return int64(time.Since(epoch))
}

// CyclesSince returns the number of ticks elapsed since start.
func CyclesSince(start int64) int64 {
	return ReadCycleCounter() - start
}

// CyclesToNanoseconds converts a tick count to nanoseconds.
func CyclesToNanoseconds(cycles int64) int64 {
	return cycles
}

// TimeRuns calls fn in batches, doubling the batch until one batch lasts
// at least minTicks, then reports the best per-call tick count over
// repeats batches of that size.
func TimeRuns(fn func(), repeats int, minTicks int64) float64 {
	if repeats < 1 {
		repeats = 1
	}

	iters := 1

	for {
		start := ReadCycleCounter()
		for range iters {
			fn()
		}

		if CyclesSince(start) >= minTicks || iters >= 1<<20 {
			break
		}

		iters *= 2
	}

	best := -1.0

	for range repeats {
		start := ReadCycleCounter()
		for range iters {
			fn()
		}

		perCall := float64(CyclesSince(start)) / float64(iters)
		if best < 0 || perCall < best {
			best = perCall
		}
	}

	return best
}
