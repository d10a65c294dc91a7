// Package rdft implements the solvers for real-data transform problems:
// the buffered solver, which routes strided batches through a contiguous
// scratch buffer, and the plain solvers it and the planner build on.
package rdft

import "errors"

var (
	// ErrNotApplicable is returned by Build when the solver cannot
	// handle the problem.
	ErrNotApplicable = errors.New("rdft: solver not applicable")

	// ErrInvalidTier is returned for non-positive buffer tier caps.
	ErrInvalidTier = errors.New("rdft: invalid buffer tier")
)
