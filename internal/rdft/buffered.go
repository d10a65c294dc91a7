package rdft

import (
	"fmt"

	"github.com/cwbudde/algo-rdft/internal/bufsize"
	"github.com/cwbudde/algo-rdft/internal/fftypes"
	"github.com/cwbudde/algo-rdft/internal/memory"
	"github.com/cwbudde/algo-rdft/internal/plan"
	"github.com/cwbudde/algo-rdft/internal/planner"
	"github.com/cwbudde/algo-rdft/internal/problem"
	"github.com/cwbudde/algo-rdft/internal/tensor"
)

// bufferedSolver handles a rank-1 transform over at most one vector
// dimension by moving nbuf instances at a time through a contiguous
// buffer, so the transform itself runs with unit stride on one side.
type bufferedSolver struct {
	tiers Tiers
	which int
}

// bufferedPlan runs core and copy once per full batch, then rest on the
// instances left over.
//
// For HC2R the copy moves input into the buffer and the core transforms
// buffer to output, so the core may destroy the buffer instead of the
// caller's input. Otherwise the core transforms input into the buffer and
// the copy moves the buffer to the output.
type bufferedPlan struct {
	core, cpy, rest plan.Plan

	n, vl, nbuf, bufdist int
	ivsByNbuf, ovsByNbuf int
	hc2r                 bool
	ops                  plan.Ops
}

// RegisterBuffered registers one buffered solver per tier.
func RegisterBuffered(r planner.Registrar, tiers Tiers) {
	for i := range tiers.Len() {
		r.Register(fmt.Sprintf("rdft-buffered-%d", tiers.Cap(i)), planner.ProblemRDFT,
			&bufferedSolver{tiers: tiers, which: i})
	}
}

func (s *bufferedSolver) maxnbuf() int {
	return s.tiers.Cap(s.which)
}

func (s *bufferedSolver) applicable0(p *problem.RDFT, flags planner.Flags) bool {
	if p.VecSz.Rank() > 1 || p.Sz.Rank() != 1 {
		return false
	}

	d := p.Sz.Dims[0]
	vl, _, _ := p.VecSz.ToRank1()

	if d.N < 1 || vl < 1 {
		return false
	}

	if bufsize.TooBig(d.N) && flags.Has(planner.ConserveMemory) {
		return false
	}

	// A lower tier already produces this batch size.
	if bufsize.Redundant(d.N, vl, s.which, s.tiers.caps) {
		return false
	}

	if !p.InPlace() {
		if p.Kind[0] == fftypes.HC2R {
			// The core sub-plan may destroy its input (the buffer) and
			// is planned with NoDestroyInput cleared; requiring the flag
			// here keeps that sub-problem from landing back on us.
			return flags.Has(planner.NoDestroyInput)
		}

		// Unit output stride is the direct solvers' territory; claiming
		// it would let the core sub-problem recurse into this solver.
		return d.OS > 1
	}

	if tensor.InplaceStrides2(p.Sz, p.VecSz) {
		return true
	}

	// Strides differ, so only a single batch can avoid overwriting input
	// that a later batch still has to read.
	return p.VecSz.Rank() == 0 || bufsize.NBuf(d.N, vl, s.maxnbuf()) == vl
}

// Applicable implements planner.Solver.
func (s *bufferedSolver) Applicable(p *problem.RDFT, sess planner.Session) bool {
	flags := sess.Flags()

	if flags.Has(planner.NoBuffering) {
		return false
	}

	if !s.applicable0(p, flags) {
		return false
	}

	if !flags.Has(planner.NoUgly) {
		return true
	}

	n := p.Sz.Dims[0].N

	if p.Kind[0] == fftypes.HC2R {
		// In place and too big is better served by transpositions.
		return !(p.InPlace() && bufsize.TooBig(n))
	}

	return p.InPlace() && !bufsize.TooBig(n)
}

// Build implements planner.Solver.
func (s *bufferedSolver) Build(p *problem.RDFT, sess planner.Session) (plan.Plan, error) {
	if !s.Applicable(p, sess) {
		return nil, ErrNotApplicable
	}

	d := p.Sz.Dims[0]
	n := p.Sz.Size()
	vl, ivs, ovs := p.VecSz.ToRank1()
	hc2r := p.Kind[0] == fftypes.HC2R

	nbuf := bufsize.NBuf(n, vl, s.maxnbuf())
	bufdist := bufsize.BufDist(n, vl)

	if nbuf <= 0 {
		panic(fmt.Sprintf("rdft: buffered batch size %d for n=%d vl=%d", nbuf, n, vl))
	}

	// Sub-planning needs real memory to look at; Apply allocates its own.
	bufs := memory.Alloc(nbuf*bufdist, memory.Buffers)
	defer func() { memory.Free(bufs, memory.Buffers) }()

	var (
		core, cpy plan.Plan
		err       error
	)

	if hc2r {
		core, err = sess.PlanChild(
			problem.NewRDFT(
				tensor.New1D(n, 1, d.OS),
				tensor.New1D(nbuf, bufdist, ovs),
				bufs, p.Out, p.Kind...,
			).Taint(false, true),
			0, planner.NoDestroyInput)
		if err != nil {
			return nil, fmt.Errorf("buffered: core sub-plan: %w", err)
		}

		cpy, err = sess.PlanChild(
			problem.NewRDFT0(
				tensor.New2D(nbuf, ivs, bufdist, n, d.IS, 1),
				p.In, bufs,
			).Taint(true, false),
			0, 0)
		if err != nil {
			plan.Destroy(core)
			return nil, fmt.Errorf("buffered: copy sub-plan: %w", err)
		}
	} else {
		var reset planner.Flags
		if p.InPlace() {
			reset = planner.NoDestroyInput
		}

		core, err = sess.PlanChild(
			problem.NewRDFT(
				tensor.New1D(n, d.IS, 1),
				tensor.New1D(nbuf, ivs, bufdist),
				p.In, bufs, p.Kind...,
			).Taint(true, false),
			0, reset)
		if err != nil {
			return nil, fmt.Errorf("buffered: core sub-plan: %w", err)
		}

		cpy, err = sess.PlanChild(
			problem.NewRDFT0(
				tensor.New2D(nbuf, bufdist, ovs, n, 1, d.OS),
				bufs, p.Out,
			).Taint(false, true),
			0, 0)
		if err != nil {
			plan.Destroy(core)
			return nil, fmt.Errorf("buffered: copy sub-plan: %w", err)
		}
	}

	memory.Free(bufs, memory.Buffers)
	bufs = nil

	batches := vl / nbuf
	id := ivs * nbuf * batches
	od := ovs * nbuf * batches

	rest, err := sess.PlanChild(
		problem.NewRDFT(
			p.Sz.Copy(),
			tensor.New1D(vl%nbuf, ivs, ovs),
			problem.Tail(p.In, id), problem.Tail(p.Out, od), p.Kind...,
		).Taint(p.InTainted, p.OutTainted),
		0, 0)
	if err != nil {
		plan.Destroy(cpy, core)
		return nil, fmt.Errorf("buffered: remainder sub-plan: %w", err)
	}

	return &bufferedPlan{
		core:      core,
		cpy:       cpy,
		rest:      rest,
		n:         n,
		vl:        vl,
		nbuf:      nbuf,
		bufdist:   bufdist,
		ivsByNbuf: ivs * nbuf,
		ovsByNbuf: ovs * nbuf,
		hc2r:      hc2r,
		ops:       core.Ops().Sum(cpy.Ops()).MulAdd(float64(batches), rest.Ops()),
	}, nil
}

// Apply implements plan.Plan.
func (pl *bufferedPlan) Apply(in, out []float64) {
	bufs := memory.Alloc(pl.nbuf*pl.bufdist, memory.Buffers)
	batches := pl.vl / pl.nbuf

	for b := range batches {
		bin := problem.Tail(in, b*pl.ivsByNbuf)
		bout := problem.Tail(out, b*pl.ovsByNbuf)

		if pl.hc2r {
			pl.cpy.Apply(bin, bufs)
			pl.core.Apply(bufs, bout)
		} else {
			pl.core.Apply(bin, bufs)
			pl.cpy.Apply(bufs, bout)
		}
	}

	memory.Free(bufs, memory.Buffers)

	pl.rest.Apply(problem.Tail(in, batches*pl.ivsByNbuf), problem.Tail(out, batches*pl.ovsByNbuf))
}

// Awake implements plan.Plan.
func (pl *bufferedPlan) Awake(w fftypes.Wakefulness) {
	plan.Awake(w, pl.core, pl.cpy, pl.rest)
}

// Destroy implements plan.Plan. Children are destroyed once, remainder
// first.
func (pl *bufferedPlan) Destroy() {
	plan.Destroy(pl.rest, pl.cpy, pl.core)
	pl.rest, pl.cpy, pl.core = nil, nil, nil
}

// Print implements plan.Plan.
func (pl *bufferedPlan) Print(p *plan.Printer) {
	p.Printf("(rdft-buffered-%d%s/%d-%d", pl.n, plan.VecSuffix(pl.nbuf), pl.vl, pl.bufdist%pl.n)
	p.Child(pl.core)
	p.Child(pl.cpy)
	p.Child(pl.rest)
	p.Printf(")")
}

// Ops implements plan.Plan.
func (pl *bufferedPlan) Ops() plan.Ops {
	return pl.ops
}
