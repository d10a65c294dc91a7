// Package problem defines the real-data transform problem handed to solvers.
package problem

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/cwbudde/algo-rdft/internal/fftypes"
	"github.com/cwbudde/algo-rdft/internal/tensor"
)

// Sentinel errors returned by Validate.
var (
	ErrKindMismatch = errors.New("problem: kinds do not match transform rank")
	ErrInvalidKind  = errors.New("problem: invalid transform kind")
	ErrShortArray   = errors.New("problem: array shorter than tensor extent")
)

// RDFT is a real-data transform of rank Sz.Rank() repeated over VecSz.
// A rank-0 Sz describes a pure copy (stride rearrangement) with no kinds.
//
// In and Out start at the first element touched; they may share storage,
// in which case the problem is in place. A tainted region is memory the
// planner does not own exclusively (caller data reached through a parent
// plan), so planning must not write to it.
type RDFT struct {
	Sz    tensor.Tensor
	VecSz tensor.Tensor
	In    []float64
	Out   []float64
	Kind  []fftypes.Kind

	InTainted  bool
	OutTainted bool
}

// NewRDFT returns a transform problem. kinds must hold one entry per Sz dim.
func NewRDFT(sz, vecsz tensor.Tensor, in, out []float64, kinds ...fftypes.Kind) *RDFT {
	return &RDFT{
		Sz:    sz,
		VecSz: vecsz,
		In:    in,
		Out:   out,
		Kind:  append([]fftypes.Kind(nil), kinds...),
	}
}

// NewRDFT0 returns a rank-0 (copy-only) problem over vecsz.
func NewRDFT0(vecsz tensor.Tensor, in, out []float64) *RDFT {
	return &RDFT{Sz: tensor.New(), VecSz: vecsz, In: in, Out: out}
}

// InPlace reports whether input and output start at the same element.
func (p *RDFT) InPlace() bool {
	return SameStart(p.In, p.Out)
}

// SameStart reports whether two slices begin at the same address.
func SameStart(a, b []float64) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == 0 && len(b) == 0
	}

	return unsafe.SliceData(a) == unsafe.SliceData(b)
}

// ZeroSize reports whether the problem touches no elements.
func (p *RDFT) ZeroSize() bool {
	return p.Sz.Size() == 0 || p.VecSz.Size() == 0
}

// Extents returns the number of input and output elements the problem spans.
func (p *RDFT) Extents() (in, out int) {
	return tensor.Append(p.Sz, p.VecSz).Extents()
}

// Validate checks kinds against the transform rank, stride signs and that
// both arrays cover the problem's extent.
func (p *RDFT) Validate() error {
	if len(p.Kind) != p.Sz.Rank() {
		return fmt.Errorf("%w: %d kinds for rank %d", ErrKindMismatch, len(p.Kind), p.Sz.Rank())
	}

	for _, k := range p.Kind {
		if !k.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidKind, k)
		}
	}

	if err := p.Sz.Validate(); err != nil {
		return err
	}

	if err := p.VecSz.Validate(); err != nil {
		return err
	}

	in, out := p.Extents()
	if len(p.In) < in || len(p.Out) < out {
		return fmt.Errorf("%w: need in=%d out=%d, have in=%d out=%d",
			ErrShortArray, in, out, len(p.In), len(p.Out))
	}

	return nil
}

// Key returns a canonical description of the problem that ignores array
// addresses: two problems with the same key can share a plan.
func (p *RDFT) Key() string {
	var sb strings.Builder

	sb.WriteString("rdft")

	for _, k := range p.Kind {
		sb.WriteByte('-')
		sb.WriteString(k.String())
	}

	sb.WriteString(p.Sz.String())
	sb.WriteString(p.VecSz.String())

	if p.InPlace() {
		sb.WriteString("ip")
	} else {
		sb.WriteString("op")
	}

	if p.InTainted {
		sb.WriteString("-ti")
	}

	if p.OutTainted {
		sb.WriteString("-to")
	}

	return sb.String()
}

// String implements fmt.Stringer.
func (p *RDFT) String() string {
	return p.Key()
}
