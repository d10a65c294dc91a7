package planner

import "strings"

// Flags are planning-session policy bits consulted by solvers.
type Flags uint32

const (
	// NoBuffering forbids solvers that copy through scratch buffers.
	NoBuffering Flags = 1 << iota
	// NoUgly suppresses strategies that are rarely worth their cost.
	NoUgly
	// ConserveMemory rejects plans that need large temporary storage.
	ConserveMemory
	// NoDestroyInput requires that Apply leaves the input array intact.
	NoDestroyInput
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{NoBuffering, "nobuf"},
	{NoUgly, "nougly"},
	{ConserveMemory, "conserve"},
	{NoDestroyInput, "nodestroy"},
}

// Has reports whether every bit of x is set in f.
func (f Flags) Has(x Flags) bool {
	return f&x == x
}

// String lists the set flags joined by '+', or "none".
func (f Flags) String() string {
	var parts []string

	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}

	if len(parts) == 0 {
		return "none"
	}

	return strings.Join(parts, "+")
}
