// Package compute implements the compute backend contract: elementwise
// binary and unary kernels, reductions, mask arithmetic and compaction
// over buffer views.
//
// The backend never owns storage beyond a call and is synchronous from
// the caller's viewpoint; the CPU implementation may fan work out to a
// worker pool internally, but every kernel completes before returning.
package compute

import (
	"github.com/prajaktapitale29/pygdf/internal/buffer"
	"github.com/prajaktapitale29/pygdf/internal/dtype"
)

// Op identifies an elementwise kernel.
type Op int

const (
	// Binary arithmetic
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpFloorDiv

	// Binary comparison (boolean output)
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	// Unary rounding
	OpCeil
	OpFloor
)

// String returns the kernel name.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpFloorDiv:
		return "floordiv"
	case OpEq:
		return "eq"
	case OpNe:
		return "ne"
	case OpLt:
		return "lt"
	case OpLe:
		return "le"
	case OpGt:
		return "gt"
	case OpGe:
		return "ge"
	case OpCeil:
		return "ceil"
	case OpFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// IsComparison reports whether op produces boolean output.
func (op Op) IsComparison() bool {
	return op >= OpEq && op <= OpGe
}

// Backend is the narrow contract the column layer calls for all
// per-element numeric work. Implementations take and return buffer
// views and never retain them.
type Backend interface {
	// BinaryOp applies op elementwise over lhs and rhs into out. Masks may
	// be nil (all rows valid). When outMask is non-nil the backend writes
	// the validity intersection of the input masks into it and returns the
	// resulting null count.
	BinaryOp(op Op, lhs, lmask, rhs, rmask, out, outMask *buffer.Buffer) (int, error)

	// UnaryOp applies op elementwise over in into out, which shares in's
	// dtype and length.
	UnaryOp(op Op, in, out *buffer.Buffer) error

	// CountSetBits returns the number of set validity bits among the first
	// nbits bits of mask.
	CountSetBits(mask *buffer.Buffer, nbits int) int

	// CompactDense copies only the valid elements of data into a fresh
	// buffer and returns the survivor count with it. The result's capacity
	// equals data's length; its size is the survivor count.
	CompactDense(data, mask *buffer.Buffer) (int, *buffer.Buffer, error)

	// FillNull returns a fresh dense buffer equal to data with every null
	// position replaced by value.
	FillNull(data, mask *buffer.Buffer, value any) (*buffer.Buffer, error)

	// ReduceMin and ReduceMax reduce data seeded with the dtype's maximum
	// and minimum sentinel respectively, so an empty input returns the seed.
	ReduceMin(data *buffer.Buffer) (any, error)
	ReduceMax(data *buffer.Buffer) (any, error)

	// ReduceMeanVar computes the mean and population variance in one pass
	// over the data.
	ReduceMeanVar(data *buffer.Buffer) (mean, variance float64, err error)

	// SampleUnique returns a buffer of at most k distinct values of data,
	// in first-seen order.
	SampleUnique(data *buffer.Buffer, k int) (*buffer.Buffer, error)

	// EqualConstant writes 1 where data equals the constant and 0
	// elsewhere, into a fresh buffer of dtype out.
	EqualConstant(data *buffer.Buffer, constant float64, out dtype.DType) (*buffer.Buffer, error)

	// LinearRescale maps data linearly from [lo, hi] onto [0, 1] in a
	// fresh float64 buffer.
	LinearRescale(data *buffer.Buffer, lo, hi float64) (*buffer.Buffer, error)

	// Cast returns a fresh buffer with every element cast to the target
	// dtype, or data itself when the dtype is unchanged.
	Cast(data *buffer.Buffer, target dtype.DType) (*buffer.Buffer, error)
}
