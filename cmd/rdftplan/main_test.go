package main

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	algordft "github.com/cwbudde/algo-rdft"
)

func TestParseSizes(t *testing.T) {
	t.Parallel()

	got := parseSizes(" 16, ,x,-4,64,0,256")
	if !slices.Equal(got, []int{16, 64, 256}) {
		t.Errorf("parseSizes = %v, want [16 64 256]", got)
	}
}

func TestStridesDoNotOverlap(t *testing.T) {
	t.Parallel()

	const n, howmany = 6, 5

	for _, layout := range []string{"rows", "columns", "transposed"} {
		dim, vec := strides(layout, n, howmany)

		seen := make(map[int]bool)

		for k := range howmany {
			for j := range n {
				idx := k*vec.OS + j*dim.OS
				if seen[idx] || idx >= n*howmany {
					t.Fatalf("%s: output index %d reused or out of range", layout, idx)
				}

				seen[idx] = true
			}
		}
	}
}

func TestBenchmarkSize(t *testing.T) {
	t.Parallel()

	base := algordft.PlanOptions{Wisdom: algordft.NewWisdom()}

	results := benchmarkSize(rand.New(rand.NewSource(1)), base, algordft.R2HC, "columns", 16, 10, 1, 0)
	if len(results) != 2 {
		t.Fatalf("got %d results, want one with and one without buffering", len(results))
	}

	for _, res := range results {
		if res.plan == "" || res.nsPerOp < 0 {
			t.Errorf("bad result %+v", res)
		}
	}
}

func TestRunReportsExecuteError(t *testing.T) {
	t.Parallel()

	data := make([]float64, 8)

	plan, err := algordft.NewPlanner(algordft.PlanOptions{Wisdom: algordft.NewWisdom()}).
		PlanR2R1D(data, data, algordft.R2HC)
	if err != nil {
		t.Fatalf("PlanR2R1D failed: %v", err)
	}

	if err := run(plan, 3); err != nil {
		t.Fatalf("run() failed: %v", err)
	}

	plan.Destroy()

	if err := run(plan, 0); err != nil {
		t.Errorf("run(0) = %v, want nil", err)
	}

	if err := run(plan, 3); !errors.Is(err, algordft.ErrDestroyed) {
		t.Errorf("run() after Destroy = %v, want ErrDestroyed", err)
	}
}
