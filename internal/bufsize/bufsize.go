// Package bufsize decides how many vector instances a buffered plan moves
// through its scratch buffer at once, and how that buffer is laid out.
//
// The solver's applicability check and its plan builder both call these
// functions, so they must stay pure: a plan built with one batch size has
// to run with that same batch size.
package bufsize

const (
	// MaxBufSize caps the scratch buffer, in real elements.
	MaxBufSize = 65536

	// DefaultMaxNBuf is the batch cap used when a tier asks for 0.
	DefaultMaxNBuf = 256

	// Slots are padded so that bufdist ≡ skew (mod skewMod). The skew is
	// even so that SIMD pairs stay aligned.
	skew    = 6
	skewMod = 8
)

// NBuf returns the number of instances of length n buffered per batch, out
// of vl instances, capped at maxnbuf (0 selects DefaultMaxNBuf).
func NBuf(n, vl, maxnbuf int) int {
	if maxnbuf <= 0 {
		maxnbuf = DefaultMaxNBuf
	}

	perBuf := 1
	if n > 0 {
		perBuf = max(1, MaxBufSize/n)
	}

	return min(maxnbuf, vl, perBuf)
}

// BufDist returns the distance between consecutive slots in the buffer.
func BufDist(n, vl int) int {
	if vl == 1 {
		return n
	}

	return n + modulo(skew-n, skewMod)
}

// TooBig reports whether a transform of length n would not fit a buffer.
func TooBig(n int) bool {
	return n > MaxBufSize
}

// Redundant reports whether a tier below which already yields the same
// batch size as tiers[which], so that tier adds no new strategy.
func Redundant(n, vl, which int, tiers []int) bool {
	nb := NBuf(n, vl, tiers[which])
	for i := range which {
		if NBuf(n, vl, tiers[i]) == nb {
			return true
		}
	}

	return false
}

func modulo(a, m int) int {
	a %= m
	if a < 0 {
		a += m
	}

	return a
}
