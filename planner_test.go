package algordft

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewPlanner(t *testing.T) {
	t.Parallel()

	planner := NewPlanner(PlanOptions{Planner: PlannerPatient, BufferTiers: []int{4, 64}})
	if planner == nil {
		t.Fatal("NewPlanner() returned nil")
	}

	if planner.Options().Planner != PlannerPatient {
		t.Errorf("Planner mode = %v, want %v", planner.Options().Planner, PlannerPatient)
	}

	tiers := planner.Options().BufferTiers
	if len(tiers) != 2 || tiers[0] != 4 || tiers[1] != 64 {
		t.Errorf("BufferTiers = %v, want [4 64]", tiers)
	}
}

func TestNewPlanner_DefaultOptions(t *testing.T) {
	t.Parallel()

	// Empty options should be normalized
	planner := NewPlanner(PlanOptions{})

	opts := planner.Options()
	if opts.Planner != PlannerEstimate {
		t.Errorf("Default planner mode = %v, want %v", opts.Planner, PlannerEstimate)
	}

	if opts.Wisdom == nil || opts.Logger == nil {
		t.Error("Default wisdom and logger must be set")
	}

	if len(opts.BufferTiers) != 2 || opts.BufferTiers[0] != 8 || opts.BufferTiers[1] != 256 {
		t.Errorf("Default BufferTiers = %v, want [8 256]", opts.BufferTiers)
	}
}

func TestNewPlanner_InvalidTiers(t *testing.T) {
	t.Parallel()

	planner := NewPlanner(PlanOptions{BufferTiers: []int{8, -1}})

	tiers := planner.Options().BufferTiers
	if len(tiers) != 2 || tiers[0] != 8 || tiers[1] != 256 {
		t.Errorf("BufferTiers = %v, want defaults", tiers)
	}
}

func TestPlanR2R1D(t *testing.T) {
	t.Parallel()

	planner := NewPlanner(PlanOptions{Wisdom: NewWisdom()})

	for _, n := range []int{1, 2, 7, 16, 100} {
		in := make([]float64, n)
		out := make([]float64, n)

		plan, err := planner.PlanR2R1D(in, out, R2HC)
		if err != nil {
			t.Fatalf("PlanR2R1D(%d) failed: %v", n, err)
		}

		x := ramp(n)
		copy(in, x)

		if err := plan.Execute(); err != nil {
			t.Fatalf("Execute failed: %v", err)
		}

		assertApproxSlice(t, out, naiveR2HC(x), 1e-9*float64(n), "n=%d", n)

		for i := range in {
			if in[i] != x[i] {
				t.Fatalf("input mutated at %d: got %v want %v", i, in[i], x[i])
			}
		}

		plan.Destroy()
	}
}

func TestPlanManyR2R_BuffersStridedRows(t *testing.T) {
	t.Parallel()

	// 20 transforms of 32 points, interleaved: transform k at in[k], stride 20.
	const n, howmany = 32, 20

	data := make([]float64, n*howmany)
	planner := NewPlanner(PlanOptions{Wisdom: NewWisdom()})

	plan, err := planner.PlanManyR2R([]int{n}, howmany, data, howmany, 1, data, howmany, 1, []Kind{R2HC})
	if err != nil {
		t.Fatalf("PlanManyR2R failed: %v", err)
	}
	defer plan.Destroy()

	if !strings.Contains(plan.String(), "rdft-buffered") {
		t.Errorf("plan for strided in-place rows does not buffer:\n%s", plan)
	}

	inputs := make([][]float64, howmany)
	for k := range howmany {
		inputs[k] = ramp(n)
		inputs[k][k%n] += float64(k)

		for j := range n {
			data[k+j*howmany] = inputs[k][j]
		}
	}

	if err := plan.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	for k := range howmany {
		got := make([]float64, n)
		for j := range n {
			got[j] = data[k+j*howmany]
		}

		assertApproxSlice(t, got, naiveR2HC(inputs[k]), 1e-9*n, "transform %d", k)
	}
}

func TestPlanR2R_NoBuffering(t *testing.T) {
	t.Parallel()

	const n, howmany = 32, 20

	data := make([]float64, n*howmany)
	planner := NewPlanner(PlanOptions{Wisdom: NewWisdom(), NoBuffering: true})

	plan, err := planner.PlanManyR2R([]int{n}, howmany, data, howmany, 1, data, howmany, 1, []Kind{R2HC})
	if err != nil {
		t.Fatalf("PlanManyR2R failed: %v", err)
	}
	defer plan.Destroy()

	if strings.Contains(plan.String(), "rdft-buffered") {
		t.Errorf("NoBuffering plan buffers:\n%s", plan)
	}
}

func TestPlanR2R_HC2RRoundTrip(t *testing.T) {
	t.Parallel()

	const n, howmany = 24, 10

	planner := NewPlanner(PlanOptions{Planner: PlannerPatient, Wisdom: NewWisdom(), MeasureRepeats: 1})

	x := make([]float64, n*howmany)
	spec := make([]float64, n*howmany)
	y := make([]float64, n*howmany)

	// Rows in, columns out, and back.
	fwd, err := planner.PlanR2R([]Dim{{N: n, IS: 1, OS: howmany}}, []Dim{{N: howmany, IS: n, OS: 1}}, x, spec, []Kind{R2HC})
	if err != nil {
		t.Fatalf("forward plan failed: %v", err)
	}
	defer fwd.Destroy()

	inv, err := planner.PlanR2R([]Dim{{N: n, IS: howmany, OS: 1}}, []Dim{{N: howmany, IS: 1, OS: n}}, spec, y, []Kind{HC2R})
	if err != nil {
		t.Fatalf("inverse plan failed: %v", err)
	}
	defer inv.Destroy()

	want := make([]float64, len(x))
	for i := range x {
		x[i] = float64((i*7)%11) - 5
		want[i] = x[i] * n
	}

	if err := fwd.Execute(); err != nil {
		t.Fatalf("forward Execute failed: %v", err)
	}

	if err := inv.Execute(); err != nil {
		t.Fatalf("inverse Execute failed: %v", err)
	}

	assertApproxSlice(t, y, want, 1e-8, "round trip")
}

func TestPlanR2RContext(t *testing.T) {
	t.Parallel()

	in := make([]float64, 8)
	out := make([]float64, 8)

	plan, err := NewPlanner(PlanOptions{Wisdom: NewWisdom()}).PlanR2RContext(
		context.Background(), []Dim{{N: 8, IS: 1, OS: 1}}, nil, in, out, []Kind{DHT})
	if err != nil {
		t.Fatalf("PlanR2RContext failed: %v", err)
	}

	if plan.Cost() <= 0 {
		t.Errorf("Cost() = %v, want > 0", plan.Cost())
	}

	if plan.Ops().Mul <= 0 {
		t.Errorf("Ops().Mul = %v, want > 0", plan.Ops().Mul)
	}
}

func TestPlanR2R_Errors(t *testing.T) {
	t.Parallel()

	planner := NewPlanner(PlanOptions{Wisdom: NewWisdom()})
	buf := make([]float64, 8)
	one := []Dim{{N: 8, IS: 1, OS: 1}}

	tests := []struct {
		name    string
		dims    []Dim
		howmany []Dim
		in, out []float64
		kinds   []Kind
		want    error
	}{
		{"nil input", one, nil, nil, buf, []Kind{R2HC}, ErrNilSlice},
		{"kind count", one, nil, buf, buf, []Kind{R2HC, R2HC}, ErrInvalidKind},
		{"unknown kind", one, nil, buf, buf, []Kind{Kind(42)}, ErrInvalidKind},
		{"negative length", []Dim{{N: -1, IS: 1, OS: 1}}, nil, buf, buf, []Kind{R2HC}, ErrInvalidLength},
		{"redft00 of one", []Dim{{N: 1, IS: 1, OS: 1}}, nil, buf, buf, []Kind{REDFT00}, ErrInvalidLength},
		{"negative stride", []Dim{{N: 8, IS: -1, OS: 1}}, nil, buf, buf, []Kind{R2HC}, ErrInvalidStride},
		{"short output", []Dim{{N: 8, IS: 1, OS: 2}}, nil, buf, make([]float64, 8), []Kind{R2HC}, ErrLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := planner.PlanR2R(tt.dims, tt.howmany, tt.in, tt.out, tt.kinds)
			if !errors.Is(err, tt.want) {
				t.Fatalf("PlanR2R error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPlan_ExecuteR2R(t *testing.T) {
	t.Parallel()

	const n = 16

	planner := NewPlanner(PlanOptions{Wisdom: NewWisdom()})

	plan, err := planner.PlanR2R1D(make([]float64, n), make([]float64, n), R2HC)
	if err != nil {
		t.Fatalf("PlanR2R1D failed: %v", err)
	}

	x := ramp(n)
	out := make([]float64, n)

	if err := plan.ExecuteR2R(x, out); err != nil {
		t.Fatalf("ExecuteR2R failed: %v", err)
	}

	assertApproxSlice(t, out, naiveR2HC(x), 1e-9*n, "new arrays")

	if err := plan.ExecuteR2R(x, make([]float64, n-1)); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("short output: err = %v, want ErrLengthMismatch", err)
	}

	if err := plan.ExecuteR2R(x, x); !errors.Is(err, ErrInPlaceMismatch) {
		t.Errorf("aliased arrays: err = %v, want ErrInPlaceMismatch", err)
	}

	if err := plan.ExecuteR2R(nil, out); !errors.Is(err, ErrNilSlice) {
		t.Errorf("nil input: err = %v, want ErrNilSlice", err)
	}

	plan.Destroy()
	plan.Destroy()

	if err := plan.Execute(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Execute after Destroy: err = %v, want ErrDestroyed", err)
	}

	if err := plan.ExecuteR2R(x, out); !errors.Is(err, ErrDestroyed) {
		t.Errorf("ExecuteR2R after Destroy: err = %v, want ErrDestroyed", err)
	}
}

func TestPlan_InputPolicy(t *testing.T) {
	t.Parallel()

	opts := PlanOptions{}

	if opts.inputFlags([]Kind{HC2R}) != 0 {
		t.Error("default policy should allow HC2R to destroy its input")
	}

	if opts.inputFlags([]Kind{R2HC, HC2R}) != 0 {
		t.Error("default policy should allow destroying input when any dimension is HC2R")
	}

	if opts.inputFlags([]Kind{R2HC}) == 0 {
		t.Error("default policy should preserve R2HC input")
	}

	opts.Input = InputPreserve
	if opts.inputFlags([]Kind{HC2R}) == 0 {
		t.Error("InputPreserve should preserve HC2R input")
	}

	opts.Input = InputDestroy
	if opts.inputFlags([]Kind{R2HC}) != 0 {
		t.Error("InputDestroy should allow destroying input")
	}
}
