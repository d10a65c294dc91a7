package planner

import (
	"github.com/cwbudde/algo-rdft/internal/plan"
	"github.com/cwbudde/algo-rdft/internal/problem"
)

// ProblemKind tags the problem family a solver handles.
type ProblemKind uint8

const (
	ProblemRDFT ProblemKind = iota
)

// Solver turns a problem into a plan. Applicable must be cheap and free
// of side effects; Build re-checks applicability and either returns a
// sleepy plan or an error, leaving nothing allocated behind.
type Solver interface {
	Applicable(p *problem.RDFT, s Session) bool
	Build(p *problem.RDFT, s Session) (plan.Plan, error)
}

// Session is the planner as seen by a solver while it builds a plan.
type Session interface {
	// Flags returns the current planning flags.
	Flags() Flags
	// PlanChild plans a sub-problem with the flags in set added and those
	// in reset removed for the duration of the call.
	PlanChild(p *problem.RDFT, set, reset Flags) (plan.Plan, error)
}

// Registrar accepts solver registrations.
type Registrar interface {
	Register(name string, kind ProblemKind, s Solver)
}
