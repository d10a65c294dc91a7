package algordft

import (
	"math"
	"testing"
)

// Shared test helper functions used across multiple test files

func assertApproxSlice(t *testing.T, got, want []float64, tol float64, format string, args ...any) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf(format+": length %d, want %d", append(args, len(got), len(want))...)
	}

	for i := range want {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf(format+": [%d] got %v want %v", append(args, i, got[i], want[i])...)
		}
	}
}

// naiveR2HC evaluates the real DFT directly and packs it halfcomplex.
func naiveR2HC(x []float64) []float64 {
	n := len(x)
	hc := make([]float64, n)

	for k := 0; k <= n/2; k++ {
		var re, im float64

		for j, v := range x {
			th := 2 * math.Pi * float64(j*k) / float64(n)
			re += v * math.Cos(th)
			im -= v * math.Sin(th)
		}

		hc[k] = re
		if k > 0 && 2*k != n {
			hc[n-k] = im
		}
	}

	return hc
}

func ramp(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i%7) - 3
	}

	return x
}
