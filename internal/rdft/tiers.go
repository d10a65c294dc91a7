package rdft

import (
	"fmt"
	"slices"
)

// Tiers is an immutable list of batch-size caps, one buffered solver per
// entry. Lower indices take precedence when two tiers yield the same batch.
type Tiers struct {
	caps []int
}

// DefaultTiers holds the small and large buffer tiers.
var DefaultTiers = Tiers{caps: []int{8, 256}}

// NewTiers validates and copies caps.
func NewTiers(caps ...int) (Tiers, error) {
	if len(caps) == 0 {
		return Tiers{}, fmt.Errorf("%w: no tiers", ErrInvalidTier)
	}

	for i, c := range caps {
		if c < 1 {
			return Tiers{}, fmt.Errorf("%w: tier %d = %d", ErrInvalidTier, i, c)
		}
	}

	return Tiers{caps: slices.Clone(caps)}, nil
}

// Len returns the number of tiers.
func (t Tiers) Len() int {
	return len(t.caps)
}

// Cap returns the batch cap of tier i.
func (t Tiers) Cap(i int) int {
	return t.caps[i]
}

// Caps returns a copy of all caps.
func (t Tiers) Caps() []int {
	return slices.Clone(t.caps)
}
