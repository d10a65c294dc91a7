package rdft

import (
	"fmt"

	"github.com/cwbudde/algo-rdft/internal/fftypes"
	"github.com/cwbudde/algo-rdft/internal/plan"
	"github.com/cwbudde/algo-rdft/internal/planner"
	"github.com/cwbudde/algo-rdft/internal/problem"
	"github.com/cwbudde/algo-rdft/internal/tensor"
)

// rankGeq2Solver splits a multi-dimensional transform into its separable
// parts: the trailing dimensions input→output with the first dimension
// as an extra vector, then the first dimension output→output in place.
type rankGeq2Solver struct{}

type rankGeq2Plan struct {
	inner, outer plan.Plan
}

// Applicable implements planner.Solver.
func (rankGeq2Solver) Applicable(p *problem.RDFT, _ planner.Session) bool {
	if p.Sz.Rank() < 2 || p.ZeroSize() {
		return false
	}

	return !p.InPlace() || tensor.InplaceStrides2(p.Sz, p.VecSz)
}

// Build implements planner.Solver.
func (s rankGeq2Solver) Build(p *problem.RDFT, sess planner.Session) (plan.Plan, error) {
	if !s.Applicable(p, sess) {
		return nil, ErrNotApplicable
	}

	rank := p.Sz.Rank()
	first := p.Sz.Dims[0]

	inner, err := sess.PlanChild(
		problem.NewRDFT(
			p.Sz.Slice(1, rank),
			tensor.Append(p.VecSz, tensor.New(first)),
			p.In, p.Out, p.Kind[1:]...,
		).Taint(p.InTainted, p.OutTainted),
		0, 0)
	if err != nil {
		return nil, fmt.Errorf("rank-geq2: inner: %w", err)
	}

	// The second pass only touches the output, so it may use it freely.
	outerVec := outputOnly(tensor.Append(p.VecSz, p.Sz.Slice(1, rank)))

	outer, err := sess.PlanChild(
		problem.NewRDFT(
			tensor.New1D(first.N, first.OS, first.OS),
			outerVec,
			p.Out, p.Out, p.Kind[0],
		).Taint(p.OutTainted, p.OutTainted),
		0, planner.NoDestroyInput)
	if err != nil {
		plan.Destroy(inner)
		return nil, fmt.Errorf("rank-geq2: outer: %w", err)
	}

	return &rankGeq2Plan{inner: inner, outer: outer}, nil
}

// outputOnly returns t with every input stride replaced by the output
// stride.
func outputOnly(t tensor.Tensor) tensor.Tensor {
	c := t.Copy()
	for i := range c.Dims {
		c.Dims[i].IS = c.Dims[i].OS
	}

	return c
}

// Apply implements plan.Plan.
func (pl *rankGeq2Plan) Apply(in, out []float64) {
	pl.inner.Apply(in, out)
	pl.outer.Apply(out, out)
}

// Awake implements plan.Plan.
func (pl *rankGeq2Plan) Awake(w fftypes.Wakefulness) {
	plan.Awake(w, pl.inner, pl.outer)
}

// Destroy implements plan.Plan.
func (pl *rankGeq2Plan) Destroy() {
	plan.Destroy(pl.outer, pl.inner)
	pl.inner, pl.outer = nil, nil
}

// Print implements plan.Plan.
func (pl *rankGeq2Plan) Print(p *plan.Printer) {
	p.Printf("(rdft-rank-geq2")
	p.Child(pl.inner)
	p.Child(pl.outer)
	p.Printf(")")
}

// Ops implements plan.Plan.
func (pl *rankGeq2Plan) Ops() plan.Ops {
	return pl.inner.Ops().Sum(pl.outer.Ops())
}
