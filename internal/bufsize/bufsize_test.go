package bufsize

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNBuf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, vl, maxnbuf int
		want           int
	}{
		{n: 16, vl: 10, maxnbuf: 8, want: 8},
		{n: 16, vl: 10, maxnbuf: 256, want: 10},
		{n: 16, vl: 3, maxnbuf: 8, want: 3},
		{n: 1024, vl: 1000, maxnbuf: 256, want: 64},
		{n: 70000, vl: 5, maxnbuf: 8, want: 1},
		{n: 16, vl: 1000, maxnbuf: 0, want: DefaultMaxNBuf},
	}

	for _, tt := range tests {
		if got := NBuf(tt.n, tt.vl, tt.maxnbuf); got != tt.want {
			t.Errorf("NBuf(%d, %d, %d) = %d, want %d", tt.n, tt.vl, tt.maxnbuf, got, tt.want)
		}
	}
}

func TestBufDist(t *testing.T) {
	t.Parallel()

	if got := BufDist(16, 1); got != 16 {
		t.Errorf("BufDist(16, 1) = %d, want 16", got)
	}

	for _, n := range []int{1, 2, 6, 7, 16, 17, 1000} {
		d := BufDist(n, 4)
		if d < n || d-n >= skewMod || d%skewMod != skew {
			t.Errorf("BufDist(%d, 4) = %d, want smallest x >= n with x %% 8 == 6", n, d)
		}
	}
}

func TestTooBig(t *testing.T) {
	t.Parallel()

	if TooBig(MaxBufSize) {
		t.Error("TooBig(MaxBufSize) = true")
	}

	if !TooBig(MaxBufSize + 1) {
		t.Error("TooBig(MaxBufSize+1) = false")
	}
}

func TestRedundant(t *testing.T) {
	t.Parallel()

	tiers := []int{8, 256}

	// vl=4 fits either tier: both pick 4, the large tier adds nothing.
	if !Redundant(16, 4, 1, tiers) {
		t.Error("Redundant(16, 4, 1) = false, want true")
	}

	// vl=100: 8 vs 100 batches differ.
	if Redundant(16, 100, 1, tiers) {
		t.Error("Redundant(16, 100, 1) = true, want false")
	}

	if Redundant(16, 4, 0, tiers) {
		t.Error("lowest tier must never be redundant")
	}
}

func TestPolicyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("batches and remainder partition the vector", prop.ForAll(
		func(n, vl, maxnbuf int) bool {
			nbuf := NBuf(n, vl, maxnbuf)
			if nbuf <= 0 || nbuf > maxnbuf {
				return false
			}

			return (vl/nbuf)*nbuf+vl%nbuf == vl
		},
		gen.IntRange(1, 1<<18),
		gen.IntRange(1, 5000),
		gen.IntRange(1, 512),
	))

	properties.Property("policy is deterministic", prop.ForAll(
		func(n, vl, maxnbuf int) bool {
			return NBuf(n, vl, maxnbuf) == NBuf(n, vl, maxnbuf) &&
				BufDist(n, vl) == BufDist(n, vl)
		},
		gen.IntRange(1, 1<<18),
		gen.IntRange(1, 5000),
		gen.IntRange(1, 512),
	))

	properties.Property("redundant iff a lower tier agrees", prop.ForAll(
		func(n, vl int) bool {
			tiers := []int{8, 256}
			same := NBuf(n, vl, tiers[0]) == NBuf(n, vl, tiers[1])

			return Redundant(n, vl, 1, tiers) == same
		},
		gen.IntRange(1, 1<<18),
		gen.IntRange(1, 5000),
	))

	properties.TestingRun(t)
}
