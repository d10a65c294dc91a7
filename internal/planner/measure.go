package planner

import (
	"github.com/cwbudde/algo-rdft/internal/cpu"
	"github.com/cwbudde/algo-rdft/internal/fftypes"
	"github.com/cwbudde/algo-rdft/internal/memory"
	"github.com/cwbudde/algo-rdft/internal/plan"
	"github.com/cwbudde/algo-rdft/internal/problem"
)

// evaluate returns the cost the planner compares candidates by.
func (p *Planner) evaluate(pl plan.Plan, prob *problem.RDFT) float64 {
	if p.mode == fftypes.PlannerEstimate {
		return pl.Ops().Cost()
	}

	return p.measure(pl, prob)
}

// measure times pl on the problem's arrays. Tainted regions belong to the
// caller of a parent plan, so the run happens on private arrays of the
// same extent instead, preserving the in-place relation.
func (p *Planner) measure(pl plan.Plan, prob *problem.RDFT) float64 {
	in, out := prob.In, prob.Out

	if prob.InTainted || prob.OutTainted {
		inExt, outExt := prob.Extents()

		if prob.InPlace() {
			buf := memory.Alloc(max(inExt, outExt), memory.Measure)
			defer memory.Free(buf, memory.Measure)

			in, out = buf, buf
		} else {
			in = memory.Alloc(inExt, memory.Measure)
			out = memory.Alloc(outExt, memory.Measure)

			defer memory.Free(in, memory.Measure)
			defer memory.Free(out, memory.Measure)
		}
	}

	pl.Awake(fftypes.Awake)
	defer pl.Awake(fftypes.Sleepy)

	return cpu.TimeRuns(func() { pl.Apply(in, out) }, p.repeats, p.minTicks)
}
