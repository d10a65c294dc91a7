package rdft

import (
	"fmt"

	"github.com/cwbudde/algo-rdft/internal/fftypes"
	"github.com/cwbudde/algo-rdft/internal/plan"
	"github.com/cwbudde/algo-rdft/internal/planner"
	"github.com/cwbudde/algo-rdft/internal/problem"
	"github.com/cwbudde/algo-rdft/internal/tensor"
)

// vrankSolver peels the outermost vector dimension off a transform and
// loops a child plan over it.
type vrankSolver struct{}

type vrankPlan struct {
	child     plan.Plan
	n, is, os int
}

// Applicable implements planner.Solver.
func (vrankSolver) Applicable(p *problem.RDFT, _ planner.Session) bool {
	if p.VecSz.Rank() < 1 || p.Sz.Rank() < 1 || p.ZeroSize() {
		return false
	}

	// In place, instance i must not write where instance j > i reads.
	if p.InPlace() && !tensor.InplaceStrides2(p.Sz, tensor.New(p.VecSz.Dims[0])) {
		return false
	}

	return true
}

// Build implements planner.Solver.
func (s vrankSolver) Build(p *problem.RDFT, sess planner.Session) (plan.Plan, error) {
	if !s.Applicable(p, sess) {
		return nil, ErrNotApplicable
	}

	d := p.VecSz.Dims[0]

	child, err := sess.PlanChild(
		problem.NewRDFT(
			p.Sz.Copy(),
			p.VecSz.Slice(1, p.VecSz.Rank()),
			p.In, p.Out, p.Kind...,
		).Taint(true, true),
		0, 0)
	if err != nil {
		return nil, fmt.Errorf("vrank-geq1: child: %w", err)
	}

	return &vrankPlan{child: child, n: d.N, is: d.IS, os: d.OS}, nil
}

// Apply implements plan.Plan.
func (pl *vrankPlan) Apply(in, out []float64) {
	for i := range pl.n {
		pl.child.Apply(in[i*pl.is:], out[i*pl.os:])
	}
}

// Awake implements plan.Plan.
func (pl *vrankPlan) Awake(w fftypes.Wakefulness) {
	plan.Awake(w, pl.child)
}

// Destroy implements plan.Plan.
func (pl *vrankPlan) Destroy() {
	plan.Destroy(pl.child)
	pl.child = nil
}

// Print implements plan.Plan.
func (pl *vrankPlan) Print(p *plan.Printer) {
	p.Printf("(rdft-vrank-geq1-x%d/%d:%d", pl.n, pl.is, pl.os)
	p.Child(pl.child)
	p.Printf(")")
}

// Ops implements plan.Plan.
func (pl *vrankPlan) Ops() plan.Ops {
	return pl.child.Ops().Scale(float64(pl.n))
}
