package algordft

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-rdft/internal/fftypes"
	"github.com/cwbudde/algo-rdft/internal/planner"
	"github.com/cwbudde/algo-rdft/internal/rdft"
)

// EnvPrefix prefixes every environment variable read by OptionsFromEnv.
const EnvPrefix = "ALGORDFT_"

// InputPolicy states whether a plan may overwrite its input array.
type InputPolicy uint8

const (
	// InputDefault preserves the input except for HC2R transforms, whose
	// fastest plans work in the input array.
	InputDefault InputPolicy = iota
	// InputPreserve never writes the input array.
	InputPreserve
	// InputDestroy lets plans use the input array as scratch.
	InputDestroy
)

// String returns the policy name used in environment variables.
func (p InputPolicy) String() string {
	switch p {
	case InputPreserve:
		return "preserve"
	case InputDestroy:
		return "destroy"
	default:
		return "default"
	}
}

// ParseInputPolicy maps a name produced by String back to a policy.
func ParseInputPolicy(name string) (InputPolicy, bool) {
	switch strings.ToLower(name) {
	case "default":
		return InputDefault, true
	case "preserve":
		return InputPreserve, true
	case "destroy":
		return InputDestroy, true
	default:
		return InputDefault, false
	}
}

// PlanOptions configures a Planner. The zero value plans by estimate,
// with buffering allowed, the default buffer tiers and the shared wisdom
// cache.
type PlanOptions struct {
	Planner PlannerMode
	Input   InputPolicy

	// NoBuffering forbids plans that copy through scratch buffers.
	NoBuffering bool
	// ConserveMemory rejects plans whose buffers would be very large.
	ConserveMemory bool

	// BufferTiers are the batch caps of the buffered solvers, smallest
	// first. Nil selects 8 and 256.
	BufferTiers []int

	// Wisdom caches planning results. Nil uses the process-wide cache.
	Wisdom *Wisdom

	// Logger receives debug traces of planning. Nil discards them.
	Logger *zerolog.Logger

	// MeasureRepeats is the number of timed runs per candidate in the
	// measuring modes. Zero selects the planner default.
	MeasureRepeats int
}

func (o PlanOptions) flags() planner.Flags {
	var f planner.Flags
	if o.NoBuffering {
		f |= planner.NoBuffering
	}

	if o.ConserveMemory {
		f |= planner.ConserveMemory
	}

	return f
}

// inputFlags returns the flags the input policy implies for a problem
// with the given kinds.
func (o PlanOptions) inputFlags(kinds []Kind) planner.Flags {
	switch o.Input {
	case InputPreserve:
		return planner.NoDestroyInput
	case InputDestroy:
		return 0
	}

	for _, k := range kinds {
		if k == HC2R {
			return 0
		}
	}

	return planner.NoDestroyInput
}

// normalize fills zero values with defaults and replaces invalid settings.
func (o PlanOptions) normalize() (PlanOptions, rdft.Tiers) {
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}

	switch o.Planner {
	case PlannerEstimate, PlannerMeasure, PlannerPatient:
	default:
		o.Logger.Warn().Uint32("mode", uint32(o.Planner)).Msg("unknown planner mode, using estimate")
		o.Planner = PlannerEstimate
	}

	if o.Wisdom == nil {
		o.Wisdom = planner.DefaultWisdom
	}

	if o.MeasureRepeats < 0 {
		o.MeasureRepeats = 0
	}

	tiers := rdft.DefaultTiers

	if o.BufferTiers != nil {
		t, err := rdft.NewTiers(o.BufferTiers...)
		if err != nil {
			o.Logger.Warn().Err(err).Ints("tiers", o.BufferTiers).Msg("invalid buffer tiers, using defaults")
		} else {
			tiers = t
		}
	}

	o.BufferTiers = tiers.Caps()

	return o, tiers
}

// OptionsFromEnv returns base with fields overridden by environment
// variables. Unset or unparsable variables leave the field unchanged.
//
// Supported environment variables:
//   - ALGORDFT_PLANNER: estimate, measure or patient
//   - ALGORDFT_INPUT: default, preserve or destroy
//   - ALGORDFT_NO_BUFFERING: bool (true/false, 1/0, yes/no)
//   - ALGORDFT_CONSERVE_MEMORY: bool
//   - ALGORDFT_BUFFER_TIERS: comma-separated caps, e.g. "8,256"
//   - ALGORDFT_MEASURE_REPEATS: int
func OptionsFromEnv(base PlanOptions) PlanOptions {
	if mode, ok := fftypes.ParsePlannerMode(getEnvString("PLANNER", "")); ok {
		base.Planner = mode
	}

	if policy, ok := ParseInputPolicy(getEnvString("INPUT", "")); ok {
		base.Input = policy
	}

	base.NoBuffering = getEnvBool("NO_BUFFERING", base.NoBuffering)
	base.ConserveMemory = getEnvBool("CONSERVE_MEMORY", base.ConserveMemory)
	base.MeasureRepeats = getEnvInt("MEASURE_REPEATS", base.MeasureRepeats)
	base.BufferTiers = getEnvInts("BUFFER_TIERS", base.BufferTiers)

	return base
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}

	return defaultVal
}

// getEnvBool accepts "true", "1", "yes" as true and "false", "0", "no" as
// false, case-insensitively.
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}

	return defaultVal
}

func getEnvInts(key string, defaultVal []int) []int {
	val := os.Getenv(EnvPrefix + key)
	if val == "" {
		return defaultVal
	}

	var out []int

	for _, field := range strings.Split(val, ",") {
		parsed, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return defaultVal
		}

		out = append(out, parsed)
	}

	return out
}
