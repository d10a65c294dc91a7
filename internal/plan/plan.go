// Package plan defines the executable plan contract shared by all solvers.
package plan

import "github.com/cwbudde/algo-rdft/internal/fftypes"

// Plan is an executable transform. Plans form an ownership tree: a
// composite plan owns its children and destroys them in Destroy.
//
// Apply must only be called on an awake plan. in and out start at the
// first element of the planned problem and may alias.
type Plan interface {
	Apply(in, out []float64)
	Awake(w fftypes.Wakefulness)
	Destroy()
	Print(p *Printer)
	Ops() Ops
}

// Ops counts the arithmetic and data-movement operations of one Apply.
type Ops struct {
	Add   float64
	Mul   float64
	FMA   float64
	Other float64
}

// Sum returns a + b.
func (a Ops) Sum(b Ops) Ops {
	return Ops{
		Add:   a.Add + b.Add,
		Mul:   a.Mul + b.Mul,
		FMA:   a.FMA + b.FMA,
		Other: a.Other + b.Other,
	}
}

// Scale returns a multiplied by m.
func (a Ops) Scale(m float64) Ops {
	return Ops{Add: a.Add * m, Mul: a.Mul * m, FMA: a.FMA * m, Other: a.Other * m}
}

// MulAdd returns m·a + b.
func (a Ops) MulAdd(m float64, b Ops) Ops {
	return a.Scale(m).Sum(b)
}

// Cost collapses the counts into one figure used to compare plans.
func (a Ops) Cost() float64 {
	return a.Add + a.Mul + 2*a.FMA + a.Other
}

// Awake awakens or puts to sleep every non-nil plan in order.
func Awake(w fftypes.Wakefulness, plans ...Plan) {
	for _, p := range plans {
		if p != nil {
			p.Awake(w)
		}
	}
}

// Destroy destroys every non-nil plan in order.
func Destroy(plans ...Plan) {
	for _, p := range plans {
		if p != nil {
			p.Destroy()
		}
	}
}
