package algordft

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-rdft/internal/planner"
)

// ImportWisdom loads wisdom data from a file into the default cache.
// The file should be in the format produced by ExportWisdom.
func ImportWisdom(filename string) error {
	return ImportWisdomInto(filename, planner.DefaultWisdom)
}

// ImportWisdomInto loads wisdom data from a file into a specific cache.
func ImportWisdomInto(filename string, wisdom *Wisdom) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open wisdom file: %w", err)
	}

	defer f.Close()

	if err := wisdom.Import(f); err != nil {
		return fmt.Errorf("failed to import wisdom: %w", err)
	}

	return nil
}

// ExportWisdom saves the default wisdom cache to a file.
// The file can be loaded later with ImportWisdom.
func ExportWisdom(filename string) error {
	return ExportWisdomTo(filename, planner.DefaultWisdom)
}

// ExportWisdomTo saves a specific wisdom cache to a file.
func ExportWisdomTo(filename string, wisdom *Wisdom) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create wisdom file: %w", err)
	}

	defer file.Close()

	if err := wisdom.Export(file); err != nil {
		return fmt.Errorf("failed to export wisdom: %w", err)
	}

	return nil
}

// Wisdom caches which solver won for each planned problem, so that
// replanning the same problem skips the search.
type Wisdom = planner.Wisdom

// NewWisdom creates a new empty wisdom cache.
func NewWisdom() *Wisdom {
	return planner.NewWisdom()
}

// ImportWisdomFromString loads wisdom data from a string into the default
// cache. This is useful for embedding wisdom data in compiled binaries.
func ImportWisdomFromString(data string) error {
	err := planner.DefaultWisdom.Import(strings.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to import wisdom from string: %w", err)
	}

	return nil
}

// ClearWisdom removes all entries from the default wisdom cache.
func ClearWisdom() {
	planner.DefaultWisdom.Clear()
}

// WisdomLen returns the number of entries in the default wisdom cache.
func WisdomLen() int {
	return planner.DefaultWisdom.Len()
}

// ExportWisdom saves the planner's wisdom cache to a file. Every entry is
// keyed by the fingerprint of the solver set that recorded it, so planners
// with different buffer tiers can share one file without misleading each
// other.
func (p *Planner) ExportWisdom(filename string) error {
	return ExportWisdomTo(filename, p.opts.Wisdom)
}

// ImportWisdom merges wisdom from a file into the planner's cache.
func (p *Planner) ImportWisdom(filename string) error {
	return ImportWisdomInto(filename, p.opts.Wisdom)
}

// Fingerprint identifies the planner's solver set, which depends on its
// buffer tiers. Planners with equal fingerprints reuse each other's wisdom.
func (p *Planner) Fingerprint() string {
	return p.inner.Fingerprint()
}
