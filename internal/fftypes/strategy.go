package fftypes

// PlannerMode controls how much effort the planner spends comparing plans.
type PlannerMode uint32

const (
	PlannerEstimate PlannerMode = iota // Compare plans by operation counts
	PlannerMeasure                     // Time candidate plans, skip ugly strategies
	PlannerPatient                     // Time candidate plans, ugly strategies allowed
)

// String returns a human-readable name for the planner mode.
func (m PlannerMode) String() string {
	switch m {
	case PlannerEstimate:
		return "estimate"
	case PlannerMeasure:
		return "measure"
	case PlannerPatient:
		return "patient"
	default:
		return "unknown"
	}
}

// ParsePlannerMode maps a name produced by String back to a mode.
func ParsePlannerMode(name string) (PlannerMode, bool) {
	switch name {
	case "estimate":
		return PlannerEstimate, true
	case "measure":
		return PlannerMeasure, true
	case "patient":
		return PlannerPatient, true
	default:
		return PlannerEstimate, false
	}
}

// Wakefulness describes whether a plan holds its run-time resources.
// Plans are created sleepy and must be awakened before Apply.
type Wakefulness uint8

const (
	Sleepy Wakefulness = iota
	Awake
)
