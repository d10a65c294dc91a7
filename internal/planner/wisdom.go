package planner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cwbudde/algo-rdft/internal/cpu"
)

const wisdomHeader = "algordft-wisdom-v2"

// ErrForeignWisdom is returned by Import for wisdom recorded on a CPU with
// different features, or for data that is not wisdom at all.
var ErrForeignWisdom = errors.New("planner: wisdom from a different machine or format")

// WisdomEntry records the outcome of planning one problem.
type WisdomEntry struct {
	Key        string
	Solver     string
	Cost       float64
	Infeasible bool
	Timestamp  time.Time
}

// Wisdom caches planning outcomes by problem key. It is safe for
// concurrent use.
type Wisdom struct {
	mu       sync.RWMutex
	entries  map[string]WisdomEntry
	features string
}

// DefaultWisdom is the process-wide cache used when callers do not supply
// their own.
var DefaultWisdom = NewWisdom()

// NewWisdom creates an empty cache tagged with this machine's features.
func NewWisdom() *Wisdom {
	return &Wisdom{
		entries:  make(map[string]WisdomEntry),
		features: cpu.DetectFeatures().String(),
	}
}

// Store records an entry, replacing any previous one for the same key.
func (w *Wisdom) Store(e WisdomEntry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	w.mu.Lock()
	w.entries[e.Key] = e
	w.mu.Unlock()
}

// Lookup returns the entry for key.
func (w *Wisdom) Lookup(key string) (WisdomEntry, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	e, ok := w.entries[key]

	return e, ok
}

// Len returns the number of entries.
func (w *Wisdom) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.entries)
}

// Clear removes all entries.
func (w *Wisdom) Clear() {
	w.mu.Lock()
	w.entries = make(map[string]WisdomEntry)
	w.mu.Unlock()
}

// Export writes all entries, sorted by key, in a line format readable by
// Import. Infeasible entries are written with solver "-".
func (w *Wisdom) Export(out io.Writer) error {
	w.mu.RLock()
	keys := make([]string, 0, len(w.entries))

	for k := range w.entries {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	bw := bufio.NewWriter(out)
	fmt.Fprintf(bw, "%s %s\n", wisdomHeader, w.features)

	for _, k := range keys {
		e := w.entries[k]

		solver := e.Solver
		if e.Infeasible {
			solver = "-"
		}

		fmt.Fprintf(bw, "%s\t%s\t%s\n", k, solver, strconv.FormatFloat(e.Cost, 'g', -1, 64))
	}
	w.mu.RUnlock()

	return bw.Flush()
}

// Import merges entries written by Export. Nothing is merged when the
// data is malformed or was recorded on a machine with different features.
func (w *Wisdom) Import(in io.Reader) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return fmt.Errorf("reading wisdom header: %w", err)
		}

		return fmt.Errorf("%w: empty input", ErrForeignWisdom)
	}

	header := strings.Fields(sc.Text())
	if len(header) != 2 || header[0] != wisdomHeader {
		return fmt.Errorf("%w: bad header %q", ErrForeignWisdom, sc.Text())
	}

	if header[1] != w.features {
		return fmt.Errorf("%w: recorded on %s, running on %s", ErrForeignWisdom, header[1], w.features)
	}

	var parsed []WisdomEntry

	for line := 2; sc.Scan(); line++ {
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != 3 {
			return fmt.Errorf("%w: line %d: want 3 fields, got %d", ErrForeignWisdom, line, len(fields))
		}

		cost, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrForeignWisdom, line, err)
		}

		e := WisdomEntry{Key: fields[0], Solver: fields[1], Cost: cost}
		if e.Solver == "-" {
			e.Solver = ""
			e.Infeasible = true
		}

		parsed = append(parsed, e)
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading wisdom: %w", err)
	}

	for _, e := range parsed {
		w.Store(e)
	}

	return nil
}
