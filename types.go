package algordft

import (
	"github.com/cwbudde/algo-rdft/internal/fftypes"
	"github.com/cwbudde/algo-rdft/internal/plan"
	"github.com/cwbudde/algo-rdft/internal/tensor"
)

// Kind selects the real-data transform computed along one dimension.
// The canonical definition is in internal/fftypes.
type Kind = fftypes.Kind

// Transform kinds.
const (
	R2HC    = fftypes.R2HC
	HC2R    = fftypes.HC2R
	DHT     = fftypes.DHT
	REDFT00 = fftypes.REDFT00
	RODFT00 = fftypes.RODFT00
)

// PlannerMode controls how much effort planning spends comparing
// candidate plans.
type PlannerMode = fftypes.PlannerMode

// Planner modes.
const (
	PlannerEstimate = fftypes.PlannerEstimate
	PlannerMeasure  = fftypes.PlannerMeasure
	PlannerPatient  = fftypes.PlannerPatient
)

// Dim is one strided dimension: N points, input stride IS and output
// stride OS, both counted in elements.
type Dim = tensor.Dim

// Ops holds the operation counts of a plan.
type Ops = plan.Ops
