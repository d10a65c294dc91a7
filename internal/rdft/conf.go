package rdft

import "github.com/cwbudde/algo-rdft/internal/planner"

// Register installs every RDFT solver, the buffered ones once per tier.
func Register(r planner.Registrar, tiers Tiers) {
	r.Register("rdft-nop", planner.ProblemRDFT, nopSolver{})
	r.Register("rdft-rank0", planner.ProblemRDFT, rank0Solver{})
	r.Register("rdft-direct", planner.ProblemRDFT, directSolver{})
	r.Register("rdft-vrank-geq1", planner.ProblemRDFT, vrankSolver{})
	r.Register("rdft-rank-geq2", planner.ProblemRDFT, rankGeq2Solver{})
	RegisterBuffered(r, tiers)
}
