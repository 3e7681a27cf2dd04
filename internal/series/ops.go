package series

import (
	"github.com/prajaktapitale29/pygdf/internal/buffer"
	"github.com/prajaktapitale29/pygdf/internal/compute"
	"github.com/prajaktapitale29/pygdf/internal/dtype"
	"github.com/prajaktapitale29/pygdf/internal/errors"
)

// Add returns the elementwise sum of s and other.
func (s *Series) Add(other *Series) (*Series, error) { return s.binaryOp(compute.OpAdd, other) }

// Sub returns the elementwise difference of s and other.
func (s *Series) Sub(other *Series) (*Series, error) { return s.binaryOp(compute.OpSub, other) }

// Mul returns the elementwise product of s and other.
func (s *Series) Mul(other *Series) (*Series, error) { return s.binaryOp(compute.OpMul, other) }

// Div returns the elementwise quotient of s and other, keeping the
// operand dtype.
func (s *Series) Div(other *Series) (*Series, error) { return s.binaryOp(compute.OpDiv, other) }

// FloorDiv returns the elementwise floored quotient of s and other.
func (s *Series) FloorDiv(other *Series) (*Series, error) {
	return s.binaryOp(compute.OpFloorDiv, other)
}

// Eq and Ne are the unordered comparisons; Lt, Le, Gt, Ge the ordered
// ones. Both families delegate to the element strategy: categorical
// columns compare by category-code identity, numerical columns by value.

// Eq returns the elementwise equality of s and other as a boolean Series.
func (s *Series) Eq(other *Series) (*Series, error) {
	return s.unorderedCompare(compute.OpEq, other)
}

// Ne returns the elementwise inequality of s and other as a boolean Series.
func (s *Series) Ne(other *Series) (*Series, error) {
	return s.unorderedCompare(compute.OpNe, other)
}

// Lt returns the elementwise less-than of s and other as a boolean Series.
func (s *Series) Lt(other *Series) (*Series, error) {
	return s.orderedCompare(compute.OpLt, other)
}

// Le returns the elementwise less-or-equal of s and other as a boolean Series.
func (s *Series) Le(other *Series) (*Series, error) {
	return s.orderedCompare(compute.OpLe, other)
}

// Gt returns the elementwise greater-than of s and other as a boolean Series.
func (s *Series) Gt(other *Series) (*Series, error) {
	return s.orderedCompare(compute.OpGt, other)
}

// Ge returns the elementwise greater-or-equal of s and other as a boolean Series.
func (s *Series) Ge(other *Series) (*Series, error) {
	return s.orderedCompare(compute.OpGe, other)
}

func (s *Series) unorderedCompare(op compute.Op, other *Series) (*Series, error) {
	if other == nil {
		return nil, errors.New(errors.KindNotSupported, "Compare", "operand is not a Series")
	}
	return s.impl.unorderedCompare(op, s, other)
}

func (s *Series) orderedCompare(op compute.Op, other *Series) (*Series, error) {
	if other == nil {
		return nil, errors.New(errors.KindNotSupported, "Compare", "operand is not a Series")
	}
	return s.impl.orderedCompare(op, s, other)
}

// binaryOp allocates the output column — masked when either operand
// carries nulls — dispatches the elementwise kernel to the backend, and
// fixes up the output null count from the mask intersection.
func (s *Series) binaryOp(op compute.Op, other *Series) (*Series, error) {
	if other == nil {
		return nil, errors.New(errors.KindNotSupported, "Arithmetic", "operand is not a Series")
	}
	if dtype.IsCategorical(s.dt) || dtype.IsCategorical(other.dt) {
		return nil, errors.New(errors.KindNotSupported, "Arithmetic", "operation not supported on categorical series")
	}
	return s.callBinaryOp(op, other, s.dt)
}

// compareOp runs a comparison kernel over the data buffers of s and
// other, producing a boolean column. Used by both element strategies;
// for categoricals the data buffers hold the codes.
func (s *Series) compareOp(op compute.Op, other *Series) (*Series, error) {
	return s.callBinaryOp(op, other, dtype.Bool)
}

func (s *Series) callBinaryOp(op compute.Op, other *Series, outDT dtype.DType) (*Series, error) {
	outData := buffer.Uninitialized(physicalDType(outDT), s.size, s.mem)

	var outMask *buffer.Buffer
	if s.HasNullMask() || other.HasNullMask() {
		outMask = buffer.Uninitialized(dtype.Mask, buffer.CalcChunkSize(s.size, dtype.MaskBitsize), s.mem)
	}

	nullCount, err := Backend().BinaryOp(op, s.data, s.mask, other.data, other.mask, outData, outMask)
	if err != nil {
		return nil, err
	}

	return construct(fields{
		size:      s.size,
		dt:        outDT,
		data:      outData,
		mask:      outMask,
		nullCount: nullCount,
	}, s.mem)
}

// Ceil rounds each value upward to the smallest integral value not less
// than the original. The mask passes through unchanged.
func (s *Series) Ceil() (*Series, error) { return s.unaryOp(compute.OpCeil) }

// Floor rounds each value downward to the largest integral value not
// greater than the original. The mask passes through unchanged.
func (s *Series) Floor() (*Series, error) { return s.unaryOp(compute.OpFloor) }

func (s *Series) unaryOp(op compute.Op) (*Series, error) {
	if dtype.IsCategorical(s.dt) {
		return nil, errors.New(errors.KindNotSupported, "Rounding", "operation not supported on categorical series")
	}
	out := buffer.Uninitialized(physicalDType(s.dt), s.size, s.mem)
	if err := Backend().UnaryOp(op, s.data, out); err != nil {
		return nil, err
	}
	f := s.fields()
	f.data = out
	return construct(f, s.mem)
}

// Astype converts the Series to the given dtype. When the dtype is
// unchanged s itself is returned; otherwise the data buffer is cast
// element by element and the result carries no mask — callers needing
// null tracking must re-layer the mask.
func (s *Series) Astype(dt dtype.DType) (*Series, error) {
	if s.dt.Equal(dt) {
		return s, nil
	}
	cast, err := Backend().Cast(s.data, physicalDType(dt))
	if err != nil {
		return nil, err
	}
	return FromBuffer(cast)
}

// OneHotEncoding produces one column per candidate category value: an
// elementwise equal-to-constant comparison against the category, written
// in the requested output dtype. The receiver must be an integer or
// floating column.
func (s *Series) OneHotEncoding(cats []float64, dt dtype.DType) ([]*Series, error) {
	if dtype.IsCategorical(s.dt) || !dtype.IsNumeric(s.dt) {
		return nil, errors.New(errors.KindType, "OneHotEncoding", "expecting integer or float dtype")
	}
	if !dtype.IsNumeric(dt) {
		return nil, errors.Newf(errors.KindType, "OneHotEncoding", "output dtype %s is not numeric", dt.Name())
	}

	dense, err := s.ToDenseBuffer(FillNone)
	if err != nil {
		return nil, err
	}

	out := make([]*Series, 0, len(cats))
	for _, cat := range cats {
		buf, err := Backend().EqualConstant(dense, cat, dt)
		if err != nil {
			return nil, err
		}
		col, err := FromBuffer(buf)
		if err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, nil
}

// physicalDType maps the categorical extension dtype to its code dtype;
// primitives pass through.
func physicalDType(dt dtype.DType) dtype.DType {
	if ct, ok := dt.(*dtype.Categorical); ok {
		return ct.Codes()
	}
	return dt
}
