package plan

import (
	"fmt"
	"strings"
)

// Printer renders a plan tree. Children are printed on their own line,
// indented one level deeper than their parent.
type Printer struct {
	sb    strings.Builder
	depth int
}

// Printf appends formatted text at the current position.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(&p.sb, format, args...)
}

// Child prints a nested plan on a new, indented line. A nil child prints
// nothing.
func (p *Printer) Child(c Plan) {
	if c == nil {
		return
	}

	p.depth++
	p.sb.WriteByte('\n')
	p.sb.WriteString(strings.Repeat("  ", p.depth))
	c.Print(p)
	p.depth--
}

// String returns everything printed so far.
func (p *Printer) String() string {
	return p.sb.String()
}

// Describe prints a whole plan tree to a string.
func Describe(pl Plan) string {
	var p Printer

	pl.Print(&p)

	return p.String()
}

// VecSuffix returns "-x<n>" when n is not 1, the vector-length annotation
// used in plan descriptions.
func VecSuffix(n int) string {
	if n == 1 {
		return ""
	}

	return fmt.Sprintf("-x%d", n)
}
