package rdft

import (
	"github.com/cwbudde/algo-rdft/internal/fftypes"
	"github.com/cwbudde/algo-rdft/internal/plan"
	"github.com/cwbudde/algo-rdft/internal/planner"
	"github.com/cwbudde/algo-rdft/internal/problem"
	"github.com/cwbudde/algo-rdft/internal/tensor"
)

// Sub-plan roles in the order the buffered solver requests them.
var roles = []string{"core", "copy", "rest"}

// callLog records what fake plans were asked to do.
type callLog struct {
	applies  []applyCall
	destroys []string
	wakes    []string
}

type applyCall struct {
	role string
	ids  []int // instance ids read along the first vector dimension
}

// fakePlan copies every element of its problem from input to output
// layout and records which instances it saw. Instance i, element j of the
// test input holds i*1000+j.
type fakePlan struct {
	role string
	prob *problem.RDFT
	ops  plan.Ops
	log  *callLog
}

func (f *fakePlan) Apply(in, out []float64) {
	call := applyCall{role: f.role}

	if f.prob.VecSz.Rank() > 0 {
		v := f.prob.VecSz.Dims[0]
		for k := range v.N {
			call.ids = append(call.ids, int(in[k*v.IS])/1000)
		}
	}

	f.log.applies = append(f.log.applies, call)

	copyStrided(tensor.Append(f.prob.VecSz, f.prob.Sz).Dims, in, out)
}

func (f *fakePlan) Awake(w fftypes.Wakefulness) { f.log.wakes = append(f.log.wakes, f.role) }
func (f *fakePlan) Destroy()                    { f.log.destroys = append(f.log.destroys, f.role) }
func (f *fakePlan) Print(p *plan.Printer)       { p.Printf("(fake-%s)", f.role) }
func (f *fakePlan) Ops() plan.Ops               { return f.ops }

type request struct {
	prob       *problem.RDFT
	set, reset planner.Flags
}

// fakeSession hands out fake plans and can fail a chosen request.
type fakeSession struct {
	flags    planner.Flags
	failAt   int
	ops      []plan.Ops
	log      callLog
	requests []request
}

func newFakeSession(flags planner.Flags) *fakeSession {
	return &fakeSession{flags: flags, failAt: -1}
}

func (s *fakeSession) Flags() planner.Flags { return s.flags }

func (s *fakeSession) PlanChild(p *problem.RDFT, set, reset planner.Flags) (plan.Plan, error) {
	idx := len(s.requests)
	s.requests = append(s.requests, request{prob: p, set: set, reset: reset})

	if idx == s.failAt {
		return nil, planner.ErrNoPlan
	}

	var ops plan.Ops
	if idx < len(s.ops) {
		ops = s.ops[idx]
	}

	return &fakePlan{role: roles[idx], prob: p, ops: ops, log: &s.log}, nil
}

// layout describes a rank-1 problem over one vector dimension.
type layout struct {
	n, is, os    int
	vl, ivs, ovs int
	inPlace      bool
	kind         fftypes.Kind
}

// build allocates arrays for l, fills the input with instance ids and
// returns the problem.
func (l layout) build() *problem.RDFT {
	sz := tensor.New1D(l.n, l.is, l.os)
	vec := tensor.New1D(l.vl, l.ivs, l.ovs)

	inExt, outExt := tensor.Append(sz, vec).Extents()

	var in, out []float64
	if l.inPlace {
		in = make([]float64, max(inExt, outExt))
		out = in
	} else {
		in = make([]float64, inExt)
		out = make([]float64, outExt)
	}

	for i := range l.vl {
		for j := range l.n {
			in[i*l.ivs+j*l.is] = float64(i*1000 + j)
		}
	}

	return problem.NewRDFT(sz, vec, in, out, l.kind)
}

// checkIdentity reports the first output element that does not hold the
// id written by build, or -1 for none.
func (l layout) checkIdentity(out []float64) (int, int) {
	for i := range l.vl {
		for j := range l.n {
			if out[i*l.ovs+j*l.os] != float64(i*1000+j) {
				return i, j
			}
		}
	}

	return -1, -1
}
