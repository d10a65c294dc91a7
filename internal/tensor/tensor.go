// Package tensor describes strided multi-dimensional layouts.
//
// A Tensor is an ordered list of dimensions, each with a length and
// independent input and output strides measured in elements. Problems use
// one tensor for the transform dimensions and one for the vector
// (batch) dimensions.
package tensor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDim is returned by Validate for negative lengths or strides.
var ErrInvalidDim = errors.New("tensor: invalid dimension")

// Dim is one dimension of a tensor.
type Dim struct {
	N  int // length
	IS int // input stride
	OS int // output stride
}

// Tensor is an ordered sequence of dimensions. Its rank is len(Dims).
type Tensor struct {
	Dims []Dim
}

// New returns a tensor holding a copy of dims.
func New(dims ...Dim) Tensor {
	return Tensor{Dims: append([]Dim(nil), dims...)}
}

// New1D returns a rank-1 tensor.
func New1D(n, is, os int) Tensor {
	return New(Dim{N: n, IS: is, OS: os})
}

// New2D returns a rank-2 tensor.
func New2D(n0, is0, os0, n1, is1, os1 int) Tensor {
	return New(Dim{N: n0, IS: is0, OS: os0}, Dim{N: n1, IS: is1, OS: os1})
}

// Rank returns the number of dimensions.
func (t Tensor) Rank() int {
	return len(t.Dims)
}

// Size returns the product of the dimension lengths (1 for rank 0).
func (t Tensor) Size() int {
	size := 1
	for _, d := range t.Dims {
		size *= d.N
	}

	return size
}

// ToRank1 collapses a tensor of rank at most one. Rank 0 yields a single
// instance with zero strides.
func (t Tensor) ToRank1() (n, is, os int) {
	switch t.Rank() {
	case 0:
		return 1, 0, 0
	case 1:
		d := t.Dims[0]
		return d.N, d.IS, d.OS
	default:
		panic(fmt.Sprintf("tensor: ToRank1 on rank %d", t.Rank()))
	}
}

// Copy returns a deep copy of t.
func (t Tensor) Copy() Tensor {
	return New(t.Dims...)
}

// Append returns the concatenation of a and b.
func Append(a, b Tensor) Tensor {
	dims := make([]Dim, 0, a.Rank()+b.Rank())
	dims = append(dims, a.Dims...)
	dims = append(dims, b.Dims...)

	return Tensor{Dims: dims}
}

// Slice returns dims [from, to) as a new tensor.
func (t Tensor) Slice(from, to int) Tensor {
	return New(t.Dims[from:to]...)
}

// Compress drops dimensions of length one, which contribute no elements.
func (t Tensor) Compress() Tensor {
	dims := make([]Dim, 0, t.Rank())
	for _, d := range t.Dims {
		if d.N != 1 {
			dims = append(dims, d)
		}
	}

	return Tensor{Dims: dims}
}

// InplaceStrides reports whether every dimension has equal input and
// output strides.
func (t Tensor) InplaceStrides() bool {
	for _, d := range t.Dims {
		if d.IS != d.OS {
			return false
		}
	}

	return true
}

// InplaceStrides2 reports whether both tensors have equal input and output
// strides in every dimension, i.e. an in-place transform over a×b never
// reads an element after another instance wrote it.
func InplaceStrides2(a, b Tensor) bool {
	return a.InplaceStrides() && b.InplaceStrides()
}

// Extents returns the number of input and output elements spanned by the
// tensor: 1 + Σ(N-1)·stride. A tensor with any zero-length dimension spans
// nothing.
func (t Tensor) Extents() (in, out int) {
	in, out = 1, 1
	for _, d := range t.Dims {
		if d.N == 0 {
			return 0, 0
		}

		in += (d.N - 1) * d.IS
		out += (d.N - 1) * d.OS
	}

	return in, out
}

// Validate rejects negative lengths and strides.
func (t Tensor) Validate() error {
	for i, d := range t.Dims {
		if d.N < 0 || d.IS < 0 || d.OS < 0 {
			return fmt.Errorf("%w: dim %d = %v", ErrInvalidDim, i, d)
		}
	}

	return nil
}

// String formats the tensor as "[n:is:os n:is:os ...]".
func (t Tensor) String() string {
	var sb strings.Builder

	sb.WriteByte('[')

	for i, d := range t.Dims {
		if i > 0 {
			sb.WriteByte(' ')
		}

		fmt.Fprintf(&sb, "%d:%d:%d", d.N, d.IS, d.OS)
	}

	sb.WriteByte(']')

	return sb.String()
}
