package rdft

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-rdft/internal/fftypes"
	"github.com/cwbudde/algo-rdft/internal/memory"
	"github.com/cwbudde/algo-rdft/internal/plan"
	"github.com/cwbudde/algo-rdft/internal/planner"
	"github.com/cwbudde/algo-rdft/internal/problem"
)

// directSolver computes a single rank-1 transform with a gonum kernel.
// Strided data is gathered into a contiguous work array first, so the
// input is never written.
type directSolver struct{}

type directPlan struct {
	kind      fftypes.Kind
	n, is, os int
	ops       plan.Ops

	// Held while awake.
	fft   *fourier.FFT
	dct   *fourier.DCT
	dst   *fourier.DST
	work  []float64
	tmp   []float64
	coeff []complex128
}

// Applicable implements planner.Solver.
func (directSolver) Applicable(p *problem.RDFT, _ planner.Session) bool {
	if p.Sz.Rank() != 1 || p.VecSz.Rank() != 0 {
		return false
	}

	n := p.Sz.Dims[0].N

	switch p.Kind[0] {
	case fftypes.R2HC, fftypes.HC2R, fftypes.DHT, fftypes.RODFT00:
		return n >= 1
	case fftypes.REDFT00:
		return n >= 2
	default:
		return false
	}
}

// Build implements planner.Solver.
func (s directSolver) Build(p *problem.RDFT, sess planner.Session) (plan.Plan, error) {
	if !s.Applicable(p, sess) {
		return nil, ErrNotApplicable
	}

	d := p.Sz.Dims[0]

	return &directPlan{
		kind: p.Kind[0],
		n:    d.N,
		is:   d.IS,
		os:   d.OS,
		ops:  directOps(d.N, d.IS, d.OS),
	}, nil
}

// directOps estimates one transform: n·log2(n) multiplications, half as
// many again additions, a gather and a scatter, and a penalty for each
// strided side.
func directOps(n, is, os int) plan.Ops {
	fn := float64(n)

	var ops plan.Ops
	if n > 1 {
		lg := math.Log2(fn)
		ops.Mul = fn * lg
		ops.Add = 1.5 * fn * lg
	}

	ops.Other = 2 * fn
	if is != 1 {
		ops.Other += 2 * fn
	}

	if os != 1 {
		ops.Other += 2 * fn
	}

	return ops
}

// Awake implements plan.Plan.
func (pl *directPlan) Awake(w fftypes.Wakefulness) {
	if w == fftypes.Sleepy {
		memory.Free(pl.work, memory.Plans)
		memory.Free(pl.tmp, memory.Plans)
		pl.work, pl.tmp, pl.coeff = nil, nil, nil
		pl.fft, pl.dct, pl.dst = nil, nil, nil

		return
	}

	if pl.work != nil {
		return
	}

	pl.work = memory.Alloc(pl.n, memory.Plans)
	pl.tmp = memory.Alloc(pl.n, memory.Plans)

	if pl.n == 1 {
		return
	}

	switch pl.kind {
	case fftypes.R2HC, fftypes.HC2R, fftypes.DHT:
		pl.fft = fourier.NewFFT(pl.n)
		pl.coeff = make([]complex128, pl.n/2+1)
	case fftypes.REDFT00:
		pl.dct = fourier.NewDCT(pl.n)
	case fftypes.RODFT00:
		pl.dst = fourier.NewDST(pl.n)
	}
}

// Apply implements plan.Plan.
func (pl *directPlan) Apply(in, out []float64) {
	n, work := pl.n, pl.work

	for j := range n {
		work[j] = in[j*pl.is]
	}

	if n == 1 {
		if pl.kind == fftypes.RODFT00 {
			work[0] *= 2
		}

		out[0] = work[0]

		return
	}

	res := pl.tmp

	switch pl.kind {
	case fftypes.R2HC:
		pl.coeff = pl.fft.Coefficients(pl.coeff, work)
		packHalfcomplex(res, pl.coeff, false)
	case fftypes.DHT:
		pl.coeff = pl.fft.Coefficients(pl.coeff, work)
		packHalfcomplex(res, pl.coeff, true)
	case fftypes.HC2R:
		unpackHalfcomplex(pl.coeff, work)
		res = pl.fft.Sequence(res, pl.coeff)
	case fftypes.REDFT00:
		res = pl.dct.Transform(res, work)
	case fftypes.RODFT00:
		res = pl.dst.Transform(res, work)
	}

	for j := range n {
		out[j*pl.os] = res[j]
	}
}

// packHalfcomplex writes the spectrum of a length-len(hc) real sequence as
// r0, r1, ..., r(n/2), i((n+1)/2-1), ..., i1. With hartley set it writes
// the Hartley transform re-im / re+im instead.
func packHalfcomplex(hc []float64, coeff []complex128, hartley bool) {
	n := len(hc)
	hc[0] = real(coeff[0])

	for k := 1; k < (n+1)/2; k++ {
		re, im := real(coeff[k]), imag(coeff[k])
		if hartley {
			hc[k], hc[n-k] = re-im, re+im
		} else {
			hc[k], hc[n-k] = re, im
		}
	}

	if n%2 == 0 {
		hc[n/2] = real(coeff[n/2])
	}
}

// unpackHalfcomplex is the inverse of packHalfcomplex without hartley.
func unpackHalfcomplex(coeff []complex128, hc []float64) {
	n := len(hc)
	coeff[0] = complex(hc[0], 0)

	for k := 1; k < (n+1)/2; k++ {
		coeff[k] = complex(hc[k], hc[n-k])
	}

	if n%2 == 0 {
		coeff[n/2] = complex(hc[n/2], 0)
	}
}

// Destroy implements plan.Plan.
func (pl *directPlan) Destroy() {
	pl.Awake(fftypes.Sleepy)
}

// Print implements plan.Plan.
func (pl *directPlan) Print(p *plan.Printer) {
	p.Printf("(rdft-direct-%s-%d/%d:%d)", pl.kind, pl.n, pl.is, pl.os)
}

// Ops implements plan.Plan.
func (pl *directPlan) Ops() plan.Ops {
	return pl.ops
}
