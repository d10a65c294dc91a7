package algordft

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/cwbudde/algo-rdft/internal/fftypes"
	"github.com/cwbudde/algo-rdft/internal/planner"
	"github.com/cwbudde/algo-rdft/internal/problem"
	"github.com/cwbudde/algo-rdft/internal/rdft"
	"github.com/cwbudde/algo-rdft/internal/tensor"
)

// Planner creates plans for real-data transforms. Planning calls are
// serialized; a Planner may be shared between goroutines.
//
// In the measuring modes candidate plans are run on the arrays passed to
// the planning call, so their contents are undefined afterwards. Fill the
// input after planning.
type Planner struct {
	opts  PlanOptions
	inner *planner.Planner
}

// NewPlanner creates a planner. Zero-valued options select defaults.
func NewPlanner(opts PlanOptions) *Planner {
	opts, tiers := opts.normalize()

	inner := planner.New(planner.Options{
		Mode:           opts.Planner,
		Flags:          opts.flags(),
		Wisdom:         opts.Wisdom,
		Logger:         *opts.Logger,
		MeasureRepeats: opts.MeasureRepeats,
	})
	rdft.Register(inner, tiers)

	return &Planner{opts: opts, inner: inner}
}

// Options returns the normalized options of the planner.
func (p *Planner) Options() PlanOptions {
	return p.opts
}

// PlanR2R plans a transform of rank len(dims) over the vector loops in
// howmany. kinds holds one kind per transform dimension.
func (p *Planner) PlanR2R(dims, howmany []Dim, in, out []float64, kinds []Kind) (*Plan, error) {
	return p.PlanR2RContext(context.Background(), dims, howmany, in, out, kinds)
}

// PlanR2RContext is PlanR2R with a context carrying the trace span.
func (p *Planner) PlanR2RContext(ctx context.Context, dims, howmany []Dim, in, out []float64, kinds []Kind) (*Plan, error) {
	_, span := otel.Tracer("algordft").Start(ctx, "algordft.Plan")
	defer span.End()

	prob := problem.NewRDFT(tensor.New(dims...).Copy(), tensor.New(howmany...).Copy(), in, out, kinds...)

	span.SetAttributes(
		attribute.String("algordft.problem", prob.Key()),
		attribute.String("algordft.mode", p.opts.Planner.String()),
	)

	pl, err := p.plan(prob)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	span.SetAttributes(attribute.Float64("algordft.cost", pl.cost))

	return pl, nil
}

// PlanR2R1D plans a single transform of len(in) points.
func (p *Planner) PlanR2R1D(in, out []float64, kind Kind) (*Plan, error) {
	return p.PlanR2R([]Dim{{N: len(in), IS: 1, OS: 1}}, nil, in, out, []Kind{kind})
}

// PlanManyR2R plans howmany transforms over row-major arrays of shape n.
// Element i of transform k is read from in[k*idist + i*istride] (i being
// the row-major index) and written likewise with ostride and odist.
func (p *Planner) PlanManyR2R(n []int, howmany int, in []float64, istride, idist int,
	out []float64, ostride, odist int, kinds []Kind,
) (*Plan, error) {
	dims := make([]Dim, len(n))
	is, os := istride, ostride

	for i := len(n) - 1; i >= 0; i-- {
		dims[i] = Dim{N: n[i], IS: is, OS: os}
		is *= n[i]
		os *= n[i]
	}

	return p.PlanR2R(dims, []Dim{{N: howmany, IS: idist, OS: odist}}, in, out, kinds)
}

func (p *Planner) plan(prob *problem.RDFT) (*Plan, error) {
	if err := validate(prob); err != nil {
		return nil, err
	}

	pl, cost, err := p.inner.Plan(prob, p.opts.inputFlags(prob.Kind))
	if err != nil {
		if errors.Is(err, planner.ErrNoPlan) || errors.Is(err, planner.ErrTooDeep) {
			return nil, fmt.Errorf("%w: %w", ErrNoPlan, err)
		}

		return nil, err
	}

	pl.Awake(fftypes.Awake)

	inExt, outExt := prob.Extents()

	return &Plan{
		pl:      pl,
		in:      prob.In,
		out:     prob.Out,
		inExt:   inExt,
		outExt:  outExt,
		inPlace: prob.InPlace(),
		cost:    cost,
	}, nil
}

// validate maps problem defects to the package's sentinel errors.
func validate(prob *problem.RDFT) error {
	if prob.In == nil || prob.Out == nil {
		return ErrNilSlice
	}

	if len(prob.Kind) != prob.Sz.Rank() {
		return fmt.Errorf("%w: %d kinds for %d dimensions", ErrInvalidKind, len(prob.Kind), prob.Sz.Rank())
	}

	for i, d := range prob.Sz.Dims {
		if !prob.Kind[i].Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidKind, prob.Kind[i])
		}

		if d.N < 0 || (prob.Kind[i] == REDFT00 && d.N == 1) {
			return fmt.Errorf("%w: dimension %d has %d points for %s", ErrInvalidLength, i, d.N, prob.Kind[i])
		}
	}

	for _, d := range prob.VecSz.Dims {
		if d.N < 0 {
			return fmt.Errorf("%w: vector length %d", ErrInvalidLength, d.N)
		}
	}

	if prob.Sz.Validate() != nil || prob.VecSz.Validate() != nil {
		return fmt.Errorf("%w: sz=%s vecsz=%s", ErrInvalidStride, prob.Sz, prob.VecSz)
	}

	if err := prob.Validate(); err != nil {
		if errors.Is(err, problem.ErrShortArray) {
			return fmt.Errorf("%w: %w", ErrLengthMismatch, err)
		}

		return err
	}

	return nil
}
