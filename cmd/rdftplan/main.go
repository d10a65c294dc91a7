// Command rdftplan plans batches of strided real-data transforms, prints
// the chosen plan trees and times them with and without buffering.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	algordft "github.com/cwbudde/algo-rdft"
	"github.com/cwbudde/algo-rdft/internal/fftypes"
)

const layoutColumns = "columns"

type benchResult struct {
	size      int
	buffering bool
	plan      string
	cost      float64
	nsPerOp   float64
}

func main() {
	var (
		sizeList   = flag.String("sizes", "16,64,256,1024", "comma-separated transform lengths")
		howmany    = flag.Int("howmany", 64, "number of transforms per batch")
		kindName   = flag.String("kind", "r2hc", "transform kind: r2hc, hc2r, dht, redft00, rodft00")
		layout     = flag.String("layout", layoutColumns, "data layout: rows, columns, transposed")
		mode       = flag.String("planner", "estimate", "planner mode: estimate, measure, patient")
		iters      = flag.Int("iters", 50, "benchmark iterations")
		warmup     = flag.Int("warmup", 5, "warmup iterations")
		printPlans = flag.Bool("print", false, "print plan trees")
		wisdomFile = flag.String("wisdom", "", "export wisdom to file")
		verbose    = flag.Bool("v", false, "log planner decisions")
		seed       = flag.Int64("seed", 1, "rng seed")
	)
	flag.Parse()

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}

	sizes := parseSizes(*sizeList)
	if len(sizes) == 0 {
		fmt.Println("no sizes specified")
		return
	}

	kind, ok := fftypes.ParseKind(*kindName)
	if !ok {
		fmt.Printf("unknown kind %q\n", *kindName)
		os.Exit(2)
	}

	plannerMode, ok := fftypes.ParsePlannerMode(*mode)
	if !ok {
		fmt.Printf("unknown planner mode %q\n", *mode)
		os.Exit(2)
	}

	wisdom := algordft.NewWisdom()
	base := algordft.OptionsFromEnv(algordft.PlanOptions{
		Planner: plannerMode,
		Wisdom:  wisdom,
		Logger:  &logger,
	})

	rnd := rand.New(rand.NewSource(*seed))

	fmt.Printf("kind=%s layout=%s howmany=%d planner=%s iters=%d warmup=%d\n",
		kind, *layout, *howmany, plannerMode, *iters, *warmup)
	fmt.Printf("%8s  %10s  %12s  %12s\n", "size", "buffering", "cost", "ns/op")

	for _, n := range sizes {
		results := benchmarkSize(rnd, base, kind, *layout, n, *howmany, *iters, *warmup)
		if len(results) == 0 {
			continue
		}

		sort.Slice(results, func(i, j int) bool {
			return results[i].nsPerOp < results[j].nsPerOp
		})

		for _, res := range results {
			fmt.Printf("%8d  %10s  %12.1f  %12.1f\n", n, bufferingName(res.buffering), res.cost, res.nsPerOp)

			if *printPlans {
				fmt.Println(res.plan)
			}
		}
	}

	// Export wisdom if requested
	if *wisdomFile != "" {
		if err := algordft.ExportWisdomTo(*wisdomFile, wisdom); err != nil {
			fmt.Printf("error exporting wisdom: %v\n", err)
			return
		}

		fmt.Printf("\nWisdom exported to: %s\n", *wisdomFile)
	}
}

// strides returns the transform and vector strides of a layout for
// howmany transforms of length n.
func strides(layout string, n, howmany int) (dim, vec algordft.Dim) {
	switch layout {
	case "rows":
		return algordft.Dim{N: n, IS: 1, OS: 1}, algordft.Dim{N: howmany, IS: n, OS: n}
	case "transposed":
		return algordft.Dim{N: n, IS: 1, OS: howmany}, algordft.Dim{N: howmany, IS: n, OS: 1}
	default:
		return algordft.Dim{N: n, IS: howmany, OS: howmany}, algordft.Dim{N: howmany, IS: 1, OS: 1}
	}
}

func benchmarkSize(rnd *rand.Rand, base algordft.PlanOptions, kind algordft.Kind,
	layout string, n, howmany, iters, warmup int,
) []benchResult {
	dim, vec := strides(layout, n, howmany)

	in := make([]float64, n*howmany)
	out := in

	if layout == "transposed" {
		out = make([]float64, n*howmany)
	}

	results := make([]benchResult, 0, 2)

	for _, buffering := range []bool{true, false} {
		opts := base
		opts.NoBuffering = !buffering

		plan, err := algordft.NewPlanner(opts).PlanR2R(
			[]algordft.Dim{dim}, []algordft.Dim{vec}, in, out, []algordft.Kind{kind})
		if err != nil {
			fmt.Printf("n=%d buffering=%v: %v\n", n, buffering, err)
			continue
		}

		for i := range in {
			in[i] = rnd.Float64()
		}

		if err := run(plan, warmup); err != nil {
			fmt.Printf("n=%d buffering=%v: warmup: %v\n", n, buffering, err)
			plan.Destroy()

			continue
		}

		runtime.GC()

		start := time.Now()
		err = run(plan, iters)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("n=%d buffering=%v: %v\n", n, buffering, err)
			plan.Destroy()

			continue
		}

		results = append(results, benchResult{
			size:      n,
			buffering: buffering,
			plan:      plan.String(),
			cost:      plan.Cost(),
			nsPerOp:   float64(elapsed.Nanoseconds()) / float64(iters),
		})

		plan.Destroy()
	}

	return results
}

// run executes plan count times and stops at the first error.
func run(plan *algordft.Plan, count int) error {
	for range count {
		if err := plan.Execute(); err != nil {
			return err
		}
	}

	return nil
}

func parseSizes(list string) []int {
	parts := strings.Split(list, ",")

	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var n int

		_, err := fmt.Sscanf(part, "%d", &n)
		if err != nil || n <= 0 {
			continue
		}

		out = append(out, n)
	}

	return out
}

func bufferingName(buffering bool) string {
	if buffering {
		return "allowed"
	}

	return "off"
}
