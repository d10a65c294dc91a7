package algordft

import "errors"

// Sentinel errors returned by planning and execution.
var (
	// ErrInvalidLength is returned when a transform or vector length is
	// negative, or a kind needs more points than given (REDFT00 needs 2).
	ErrInvalidLength = errors.New("algordft: invalid transform length")

	// ErrNilSlice is returned when a nil slice is passed to a planning or
	// execute method.
	ErrNilSlice = errors.New("algordft: nil slice")

	// ErrLengthMismatch is returned when input/output slices are too short
	// for the strides and lengths of the plan.
	ErrLengthMismatch = errors.New("algordft: slice length mismatch")

	// ErrInvalidStride is returned for negative strides.
	ErrInvalidStride = errors.New("algordft: invalid stride")

	// ErrInvalidKind is returned for unknown transform kinds, or when the
	// number of kinds does not match the transform rank.
	ErrInvalidKind = errors.New("algordft: invalid transform kind")

	// ErrInPlaceMismatch is returned when ExecuteR2R is given arrays whose
	// aliasing differs from the arrays the plan was created for.
	ErrInPlaceMismatch = errors.New("algordft: in-place mismatch")

	// ErrNoPlan is returned when no solver can handle the problem under
	// the requested options.
	ErrNoPlan = errors.New("algordft: no plan for problem")

	// ErrDestroyed is returned when executing a destroyed plan.
	ErrDestroyed = errors.New("algordft: plan destroyed")
)
