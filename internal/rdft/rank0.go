package rdft

import (
	"slices"

	"github.com/cwbudde/algo-rdft/internal/fftypes"
	"github.com/cwbudde/algo-rdft/internal/plan"
	"github.com/cwbudde/algo-rdft/internal/planner"
	"github.com/cwbudde/algo-rdft/internal/problem"
	"github.com/cwbudde/algo-rdft/internal/tensor"
)

// rank0Solver copies between two strided layouts. In-place rearrangement
// would need transpositions and is not handled.
type rank0Solver struct{}

type rank0Plan struct {
	dims []tensor.Dim // outermost first, unit strides innermost
	size int
}

// Applicable implements planner.Solver.
func (rank0Solver) Applicable(p *problem.RDFT, _ planner.Session) bool {
	return p.Sz.Rank() == 0 && !p.ZeroSize() && !p.InPlace()
}

// Build implements planner.Solver.
func (s rank0Solver) Build(p *problem.RDFT, sess planner.Session) (plan.Plan, error) {
	if !s.Applicable(p, sess) {
		return nil, ErrNotApplicable
	}

	dims := p.VecSz.Compress().Dims
	slices.SortStableFunc(dims, func(a, b tensor.Dim) int {
		return (b.IS + b.OS) - (a.IS + a.OS)
	})

	return &rank0Plan{dims: dims, size: p.VecSz.Size()}, nil
}

// Apply implements plan.Plan.
func (pl *rank0Plan) Apply(in, out []float64) {
	copyStrided(pl.dims, in, out)
}

func copyStrided(dims []tensor.Dim, in, out []float64) {
	switch len(dims) {
	case 0:
		out[0] = in[0]
	case 1:
		d := dims[0]
		if d.IS == 1 && d.OS == 1 {
			copy(out[:d.N], in[:d.N])
			return
		}

		for i := range d.N {
			out[i*d.OS] = in[i*d.IS]
		}
	default:
		d := dims[0]
		for i := range d.N {
			copyStrided(dims[1:], in[i*d.IS:], out[i*d.OS:])
		}
	}
}

// Awake implements plan.Plan.
func (*rank0Plan) Awake(fftypes.Wakefulness) {}

// Destroy implements plan.Plan.
func (*rank0Plan) Destroy() {}

// Print implements plan.Plan.
func (pl *rank0Plan) Print(p *plan.Printer) {
	p.Printf("(rdft-rank0%s)", tensor.New(pl.dims...))
}

// Ops implements plan.Plan.
func (pl *rank0Plan) Ops() plan.Ops {
	return plan.Ops{Other: float64(pl.size)}
}
