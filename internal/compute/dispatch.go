package compute

import (
	"github.com/prajaktapitale29/pygdf/internal/buffer"
	"github.com/prajaktapitale29/pygdf/internal/dtype"
	"github.com/prajaktapitale29/pygdf/internal/errors"
)

// binaryRange dispatches a binary kernel to the typed view matching the
// operand dtype, over rows [start, stop). Comparisons write into a
// boolean output buffer; arithmetic writes into an output of the operand
// dtype.
func binaryRange(op Op, lhs, rhs, out *buffer.Buffer, start, stop int) error {
	dt := lhs.DType()
	if op.IsComparison() {
		ob := out.Bytes()
		switch {
		case dt.Equal(dtype.Bool) || dt.Equal(dtype.Uint8):
			compareChunk(op, lhs.Bytes(), rhs.Bytes(), ob, start, stop)
		case dt.Equal(dtype.Int8):
			compareChunk(op, buffer.Values[int8](lhs), buffer.Values[int8](rhs), ob, start, stop)
		case dt.Equal(dtype.Int32):
			compareChunk(op, buffer.Values[int32](lhs), buffer.Values[int32](rhs), ob, start, stop)
		case dt.Equal(dtype.Int64):
			compareChunk(op, buffer.Values[int64](lhs), buffer.Values[int64](rhs), ob, start, stop)
		case dt.Equal(dtype.Float32):
			compareChunk(op, buffer.Values[float32](lhs), buffer.Values[float32](rhs), ob, start, stop)
		case dt.Equal(dtype.Float64):
			compareChunk(op, buffer.Values[float64](lhs), buffer.Values[float64](rhs), ob, start, stop)
		default:
			return errors.Newf(errors.KindNotSupported, "BinaryOp", "comparison on dtype %s", dt.Name())
		}
		return nil
	}

	switch {
	case dt.Equal(dtype.Uint8):
		arithChunk(op, lhs.Bytes(), rhs.Bytes(), out.Bytes(), start, stop)
	case dt.Equal(dtype.Int8):
		arithChunk(op, buffer.Values[int8](lhs), buffer.Values[int8](rhs), buffer.Values[int8](out), start, stop)
	case dt.Equal(dtype.Int32):
		arithChunk(op, buffer.Values[int32](lhs), buffer.Values[int32](rhs), buffer.Values[int32](out), start, stop)
	case dt.Equal(dtype.Int64):
		arithChunk(op, buffer.Values[int64](lhs), buffer.Values[int64](rhs), buffer.Values[int64](out), start, stop)
	case dt.Equal(dtype.Float32):
		arithChunk(op, buffer.Values[float32](lhs), buffer.Values[float32](rhs), buffer.Values[float32](out), start, stop)
	case dt.Equal(dtype.Float64):
		arithChunk(op, buffer.Values[float64](lhs), buffer.Values[float64](rhs), buffer.Values[float64](out), start, stop)
	default:
		return errors.Newf(errors.KindNotSupported, "BinaryOp", "arithmetic on dtype %s", dt.Name())
	}
	return nil
}

// unaryRange dispatches a unary rounding kernel over rows [start, stop).
func unaryRange(op Op, in, out *buffer.Buffer, start, stop int) error {
	switch dt := in.DType(); {
	case dt.Equal(dtype.Uint8) || dt.Equal(dtype.Bool):
		roundChunk(op, in.Bytes(), out.Bytes(), start, stop)
	case dt.Equal(dtype.Int8):
		roundChunk(op, buffer.Values[int8](in), buffer.Values[int8](out), start, stop)
	case dt.Equal(dtype.Int32):
		roundChunk(op, buffer.Values[int32](in), buffer.Values[int32](out), start, stop)
	case dt.Equal(dtype.Int64):
		roundChunk(op, buffer.Values[int64](in), buffer.Values[int64](out), start, stop)
	case dt.Equal(dtype.Float32):
		roundChunk(op, buffer.Values[float32](in), buffer.Values[float32](out), start, stop)
	case dt.Equal(dtype.Float64):
		roundChunk(op, buffer.Values[float64](in), buffer.Values[float64](out), start, stop)
	default:
		return errors.Newf(errors.KindNotSupported, "UnaryOp", "rounding on dtype %s", dt.Name())
	}
	return nil
}
