package series

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajaktapitale29/pygdf/internal/buffer"
	"github.com/prajaktapitale29/pygdf/internal/dtype"
	"github.com/prajaktapitale29/pygdf/internal/errors"
)

func TestArithmetic(t *testing.T) {
	mem := memory.NewGoAllocator()

	lhs := FromSlice([]int64{10, 20, 30}, mem)
	rhs := FromSlice([]int64{3, 4, 5}, mem)

	tests := []struct {
		name     string
		run      func() (*Series, error)
		expected []int64
	}{
		{name: "add", run: func() (*Series, error) { return lhs.Add(rhs) }, expected: []int64{13, 24, 35}},
		{name: "sub", run: func() (*Series, error) { return lhs.Sub(rhs) }, expected: []int64{7, 16, 25}},
		{name: "mul", run: func() (*Series, error) { return lhs.Mul(rhs) }, expected: []int64{30, 80, 150}},
		{name: "div", run: func() (*Series, error) { return lhs.Div(rhs) }, expected: []int64{3, 5, 6}},
		{name: "floordiv", run: func() (*Series, error) { return lhs.FloorDiv(rhs) }, expected: []int64{3, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.run()
			require.NoError(t, err)
			assert.True(t, out.DType().Equal(dtype.Int64), "arithmetic keeps the operand dtype")
			assert.Equal(t, tt.expected, buffer.Values[int64](out.Data()))
		})
	}
}

func TestArithmeticPropagatesNulls(t *testing.T) {
	mem := memory.NewGoAllocator()

	lhs, err := FromSliceWithValidity([]float64{1, 2, 3, 4}, []bool{true, true, false, true}, mem)
	require.NoError(t, err)
	rhs, err := FromSliceWithValidity([]float64{1, 1, 1, 1}, []bool{true, false, true, true}, mem)
	require.NoError(t, err)

	out, err := lhs.Add(rhs)
	require.NoError(t, err)
	assert.True(t, out.HasNullMask())
	assert.Equal(t, 2, out.NullCount())

	v, err := out.At(0)
	require.NoError(t, err)
	assert.Equal(t, float64(2), v)
	v, err = out.At(1)
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = out.At(3)
	require.NoError(t, err)
	assert.Equal(t, float64(5), v)
}

func TestArithmeticNilOperand(t *testing.T) {
	mem := memory.NewGoAllocator()

	s := FromSlice([]int64{1}, mem)
	_, err := s.Add(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotSupported)
}

func TestArithmeticOnCategorical(t *testing.T) {
	mem := memory.NewGoAllocator()

	cat, err := FromCategorical([]int32{0, 1}, []string{"a", "b"}, false, mem)
	require.NoError(t, err)
	num := FromSlice([]int32{1, 2}, mem)

	_, err = cat.Add(num)
	assert.ErrorIs(t, err, errors.ErrNotSupported)
	_, err = num.Mul(cat)
	assert.ErrorIs(t, err, errors.ErrNotSupported)
}

func TestComparisons(t *testing.T) {
	mem := memory.NewGoAllocator()

	lhs := FromSlice([]float64{1, 5, 3}, mem)
	rhs := FromSlice([]float64{2, 4, 3}, mem)

	tests := []struct {
		name     string
		run      func() (*Series, error)
		expected []bool
	}{
		{name: "eq", run: func() (*Series, error) { return lhs.Eq(rhs) }, expected: []bool{false, false, true}},
		{name: "ne", run: func() (*Series, error) { return lhs.Ne(rhs) }, expected: []bool{true, true, false}},
		{name: "lt", run: func() (*Series, error) { return lhs.Lt(rhs) }, expected: []bool{true, false, false}},
		{name: "le", run: func() (*Series, error) { return lhs.Le(rhs) }, expected: []bool{true, false, true}},
		{name: "gt", run: func() (*Series, error) { return lhs.Gt(rhs) }, expected: []bool{false, true, false}},
		{name: "ge", run: func() (*Series, error) { return lhs.Ge(rhs) }, expected: []bool{false, true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.run()
			require.NoError(t, err)
			assert.True(t, out.DType().Equal(dtype.Bool))
			for i, want := range tt.expected {
				v, err := out.At(i)
				require.NoError(t, err)
				assert.Equal(t, want, v, "row %d", i)
			}
		})
	}
}

func TestCategoricalComparison(t *testing.T) {
	mem := memory.NewGoAllocator()

	a, err := FromCategorical([]int32{0, 1, 1}, []string{"a", "b"}, false, mem)
	require.NoError(t, err)
	b, err := FromCategorical([]int32{0, 0, 1}, []string{"a", "b"}, false, mem)
	require.NoError(t, err)

	out, err := a.Eq(b)
	require.NoError(t, err)
	for i, want := range []bool{true, false, true} {
		v, err := out.At(i)
		require.NoError(t, err)
		assert.Equal(t, want, v, "row %d", i)
	}
}

func TestCategoricalComparisonSentries(t *testing.T) {
	mem := memory.NewGoAllocator()

	a, err := FromCategorical([]int32{0}, []string{"a", "b"}, false, mem)
	require.NoError(t, err)
	other, err := FromCategorical([]int32{0}, []string{"x", "y"}, false, mem)
	require.NoError(t, err)

	_, err = a.Eq(other)
	assert.ErrorIs(t, err, errors.ErrType, "different categories cannot be compared")

	same, err := FromCategorical([]int32{0}, []string{"a", "b"}, false, mem)
	require.NoError(t, err)
	_, err = a.Lt(same)
	assert.ErrorIs(t, err, errors.ErrType, "unordered categoricals have no order")
}

func TestOrderedCategoricalComparison(t *testing.T) {
	mem := memory.NewGoAllocator()

	a, err := FromCategorical([]int32{0, 2}, []string{"low", "mid", "high"}, true, mem)
	require.NoError(t, err)
	b, err := FromCategorical([]int32{1, 1}, []string{"low", "mid", "high"}, true, mem)
	require.NoError(t, err)

	out, err := a.Lt(b)
	require.NoError(t, err)
	v, err := out.At(0)
	require.NoError(t, err)
	assert.Equal(t, true, v)
	v, err = out.At(1)
	require.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestCeilFloorKeepMask(t *testing.T) {
	mem := memory.NewGoAllocator()

	s, err := FromSliceWithValidity([]float64{1.2, 2.7, 3.5}, []bool{true, false, true}, mem)
	require.NoError(t, err)

	ceiled, err := s.Ceil()
	require.NoError(t, err)
	assert.Equal(t, 1, ceiled.NullCount(), "rounding passes the mask through")
	assert.Equal(t, []float64{2, 3, 4}, buffer.Values[float64](ceiled.Data()))

	floored, err := s.Floor()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, buffer.Values[float64](floored.Data()))
}

func TestAstype(t *testing.T) {
	mem := memory.NewGoAllocator()

	s, err := FromSliceWithValidity([]int64{1, 2, 3}, []bool{true, false, true}, mem)
	require.NoError(t, err)

	cast, err := s.Astype(dtype.Float64)
	require.NoError(t, err)
	assert.True(t, cast.DType().Equal(dtype.Float64))
	assert.False(t, cast.HasNullMask(), "casting drops the mask")
	assert.Equal(t, []float64{1, 2, 3}, buffer.Values[float64](cast.Data()))

	same, err := s.Astype(dtype.Int64)
	require.NoError(t, err)
	assert.Same(t, s, same)
}

func TestOneHotEncoding(t *testing.T) {
	mem := memory.NewGoAllocator()

	s := FromSlice([]int64{0, 1, 0, 1, 2}, mem)
	cols, err := s.OneHotEncoding([]float64{0, 1, 2}, dtype.Float64)
	require.NoError(t, err)
	require.Len(t, cols, 3)

	assert.Equal(t, []float64{1, 0, 1, 0, 0}, buffer.Values[float64](cols[0].Data()))
	assert.Equal(t, []float64{0, 1, 0, 1, 0}, buffer.Values[float64](cols[1].Data()))
	assert.Equal(t, []float64{0, 0, 0, 0, 1}, buffer.Values[float64](cols[2].Data()))
}

func TestOneHotEncodingSentries(t *testing.T) {
	mem := memory.NewGoAllocator()

	cat, err := FromCategorical([]int32{0}, []string{"a"}, false, mem)
	require.NoError(t, err)
	_, err = cat.OneHotEncoding([]float64{0}, dtype.Float64)
	assert.ErrorIs(t, err, errors.ErrType)

	num := FromSlice([]int64{1}, mem)
	_, err = num.OneHotEncoding([]float64{0}, dtype.Bool)
	assert.ErrorIs(t, err, errors.ErrType, "output dtype must be numeric")
}
