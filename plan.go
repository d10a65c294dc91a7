package algordft

import (
	"github.com/cwbudde/algo-rdft/internal/plan"
	"github.com/cwbudde/algo-rdft/internal/problem"
)

// Plan is a planned transform, awake and ready to execute. A Plan owns
// scratch memory and is not safe for concurrent use; create one plan per
// goroutine.
type Plan struct {
	pl            plan.Plan
	in, out       []float64
	inExt, outExt int
	inPlace       bool
	cost          float64
}

// Execute runs the transform on the arrays the plan was created with.
func (p *Plan) Execute() error {
	if p.pl == nil {
		return ErrDestroyed
	}

	p.pl.Apply(p.in, p.out)

	return nil
}

// ExecuteR2R runs the transform on new arrays. They must be long enough
// for the planned strides, and in must equal out exactly when the plan
// was created in place.
func (p *Plan) ExecuteR2R(in, out []float64) error {
	if p.pl == nil {
		return ErrDestroyed
	}

	if in == nil || out == nil {
		return ErrNilSlice
	}

	if len(in) < p.inExt || len(out) < p.outExt {
		return ErrLengthMismatch
	}

	if problem.SameStart(in, out) != p.inPlace {
		return ErrInPlaceMismatch
	}

	p.pl.Apply(in, out)

	return nil
}

// Ops returns the operation counts of the plan.
func (p *Plan) Ops() Ops {
	if p.pl == nil {
		return Ops{}
	}

	return p.pl.Ops()
}

// Cost returns the cost the planner chose this plan by: weighted
// operations when estimating, nanoseconds per run when measuring.
func (p *Plan) Cost() float64 {
	return p.cost
}

// String describes the plan tree.
func (p *Plan) String() string {
	if p.pl == nil {
		return "(destroyed)"
	}

	return plan.Describe(p.pl)
}

// Destroy releases the plan's resources. Destroying twice is harmless.
func (p *Plan) Destroy() {
	if p.pl == nil {
		return
	}

	p.pl.Destroy()
	p.pl = nil
	p.in, p.out = nil, nil
}
