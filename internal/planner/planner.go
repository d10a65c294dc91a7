// Package planner searches registered solvers for the cheapest plan.
//
// A Planner is a planning session: it holds the policy flags solvers
// consult, the solver registry, and a wisdom cache remembering which
// solver won for each problem. Solvers recurse into the planner through
// the Session interface to plan their sub-problems.
package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-rdft/internal/fftypes"
	"github.com/cwbudde/algo-rdft/internal/plan"
	"github.com/cwbudde/algo-rdft/internal/problem"
)

// Sentinel errors returned by planning.
var (
	ErrNoPlan  = errors.New("planner: no applicable solver")
	ErrTooDeep = errors.New("planner: recursion too deep")
)

const (
	maxDepth = 64

	defaultMeasureRepeats = 3
	defaultMinTicks       = 20_000 // 20µs per timed batch
)

var plansBuilt = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "algordft_plans_built_total",
		Help: "Number of plans chosen by the planner, by solver",
	},
	[]string{"solver"},
)

// Options configures a Planner.
type Options struct {
	Mode  fftypes.PlannerMode
	Flags Flags

	// Wisdom caches solver choices across plans. Nil uses a private cache.
	Wisdom *Wisdom

	// Logger receives debug traces of the search. The zero value discards.
	Logger zerolog.Logger

	// MeasureRepeats is the number of timed batches per candidate in
	// measuring modes.
	MeasureRepeats int

	// MinMeasureTicks is the minimum duration of one timed batch.
	MinMeasureTicks int64
}

type entry struct {
	name   string
	solver Solver
}

// Planner is a planning session. It is safe for concurrent use; planning
// calls are serialized.
type Planner struct {
	mu sync.Mutex

	mode     fftypes.PlannerMode
	flags    Flags
	wisdom   *Wisdom
	logger   zerolog.Logger
	repeats  int
	minTicks int64
	registry map[ProblemKind][]entry
	depth    int

	// fingerprint identifies the ordered solver set. Wisdom recorded under
	// one solver set says nothing about another.
	fingerprint string
}

// New creates a Planner with no solvers registered. Estimate and Measure
// modes imply NoUgly.
func New(opts Options) *Planner {
	flags := opts.Flags
	if opts.Mode != fftypes.PlannerPatient {
		flags |= NoUgly
	}

	wisdom := opts.Wisdom
	if wisdom == nil {
		wisdom = NewWisdom()
	}

	repeats := opts.MeasureRepeats
	if repeats <= 0 {
		repeats = defaultMeasureRepeats
	}

	minTicks := opts.MinMeasureTicks
	if minTicks <= 0 {
		minTicks = defaultMinTicks
	}

	return &Planner{
		mode:     opts.Mode,
		flags:    flags,
		wisdom:   wisdom,
		logger:   opts.Logger,
		repeats:  repeats,
		minTicks: minTicks,
		registry: make(map[ProblemKind][]entry),
	}
}

// Register adds a solver under a unique name. Solvers are tried in
// registration order.
func (p *Planner) Register(name string, kind ProblemKind, s Solver) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.registry[kind] = append(p.registry[kind], entry{name: name, solver: s})
	p.fingerprint = registryFingerprint(p.registry[ProblemRDFT])
}

func registryFingerprint(entries []entry) string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}

	return strconv.FormatUint(xxhash.Sum64String(strings.Join(names, ",")), 16)
}

// Fingerprint returns a short hash of the registered solver names in
// registration order. It is part of every wisdom key.
func (p *Planner) Fingerprint() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.fingerprint
}

// Solvers returns the registered solver names for kind, in order.
func (p *Planner) Solvers(kind ProblemKind) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, 0, len(p.registry[kind]))
	for _, e := range p.registry[kind] {
		names = append(names, e.name)
	}

	return names
}

// Mode returns the planner mode.
func (p *Planner) Mode() fftypes.PlannerMode {
	return p.mode
}

// Flags returns the flags in effect for the solver currently building.
func (p *Planner) Flags() Flags {
	return p.flags
}

// Wisdom returns the cache the planner records choices in.
func (p *Planner) Wisdom() *Wisdom {
	return p.wisdom
}

// Plan returns the cheapest plan for prob under the session flags plus
// extra, and its cost. The plan is sleepy.
func (p *Planner) Plan(prob *problem.RDFT, extra Flags) (plan.Plan, float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	saved := p.flags
	p.flags |= extra

	defer func() { p.flags = saved }()

	return p.search(prob)
}

// PlanChild implements Session.
func (p *Planner) PlanChild(prob *problem.RDFT, set, reset Flags) (plan.Plan, error) {
	saved := p.flags
	p.flags = (p.flags &^ reset) | set

	defer func() { p.flags = saved }()

	pl, _, err := p.search(prob)

	return pl, err
}

func (p *Planner) search(prob *problem.RDFT) (plan.Plan, float64, error) {
	if p.depth >= maxDepth {
		return nil, 0, fmt.Errorf("%w: %s", ErrTooDeep, prob.Key())
	}

	p.depth++
	defer func() { p.depth-- }()

	key := p.wisdomKey(prob)
	solvers := p.registry[ProblemRDFT]

	if w, ok := p.wisdom.Lookup(key); ok {
		if w.Infeasible {
			return nil, 0, fmt.Errorf("%w: %s", ErrNoPlan, prob.Key())
		}

		for _, e := range solvers {
			if e.name != w.Solver || !e.solver.Applicable(prob, p) {
				continue
			}

			pl, err := e.solver.Build(prob, p)
			if err == nil {
				p.logger.Debug().Str("problem", key).Str("solver", e.name).Msg("wisdom hit")
				return pl, w.Cost, nil
			}
		}

		p.logger.Debug().Str("problem", key).Str("solver", w.Solver).Msg("stale wisdom ignored")
	}

	var (
		best     plan.Plan
		bestName string
		bestCost float64
	)

	for _, e := range solvers {
		if !e.solver.Applicable(prob, p) {
			continue
		}

		pl, err := e.solver.Build(prob, p)
		if err != nil {
			p.logger.Debug().Str("problem", key).Str("solver", e.name).Err(err).Msg("solver failed")
			continue
		}

		cost := p.evaluate(pl, prob)
		p.logger.Debug().Str("problem", key).Str("solver", e.name).Float64("cost", cost).Msg("candidate plan")

		if best == nil || cost < bestCost {
			plan.Destroy(best)
			best, bestName, bestCost = pl, e.name, cost
		} else {
			pl.Destroy()
		}
	}

	if best == nil {
		p.wisdom.Store(WisdomEntry{Key: key, Infeasible: true})
		return nil, 0, fmt.Errorf("%w: %s", ErrNoPlan, prob.Key())
	}

	p.wisdom.Store(WisdomEntry{Key: key, Solver: bestName, Cost: bestCost})
	plansBuilt.WithLabelValues(bestName).Inc()
	p.logger.Debug().Str("problem", key).Str("solver", bestName).Float64("cost", bestCost).Msg("plan chosen")

	return best, bestCost, nil
}

func (p *Planner) wisdomKey(prob *problem.RDFT) string {
	return prob.Key() + "|" + p.flags.String() + "|" + p.mode.String() + "|" + p.fingerprint
}
