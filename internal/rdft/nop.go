package rdft

import (
	"github.com/cwbudde/algo-rdft/internal/fftypes"
	"github.com/cwbudde/algo-rdft/internal/plan"
	"github.com/cwbudde/algo-rdft/internal/planner"
	"github.com/cwbudde/algo-rdft/internal/problem"
)

// nopSolver handles problems with nothing to do: zero-size problems and
// in-place copies onto themselves.
type nopSolver struct{}

type nopPlan struct{}

// Applicable implements planner.Solver.
func (nopSolver) Applicable(p *problem.RDFT, _ planner.Session) bool {
	if p.ZeroSize() {
		return true
	}

	return p.Sz.Rank() == 0 && p.InPlace() && p.VecSz.InplaceStrides()
}

// Build implements planner.Solver.
func (s nopSolver) Build(p *problem.RDFT, sess planner.Session) (plan.Plan, error) {
	if !s.Applicable(p, sess) {
		return nil, ErrNotApplicable
	}

	return nopPlan{}, nil
}

func (nopPlan) Apply(in, out []float64)   {}
func (nopPlan) Awake(fftypes.Wakefulness) {}
func (nopPlan) Destroy()                  {}
func (nopPlan) Print(p *plan.Printer)     { p.Printf("(rdft-nop)") }
func (nopPlan) Ops() plan.Ops             { return plan.Ops{} }
