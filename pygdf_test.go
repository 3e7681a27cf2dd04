package pygdf_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pygdf "github.com/prajaktapitale29/pygdf"
)

func TestSeriesLifecycle(t *testing.T) {
	mem := memory.NewGoAllocator()

	s := pygdf.NewSeries([]float64{1, 2, 3, 4}, mem)
	assert.Equal(t, 4, s.Len())
	assert.True(t, s.DType().Equal(pygdf.Float64))
	assert.False(t, s.HasNulls())

	sub, err := s.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Len())

	doubled, err := s.Add(s)
	require.NoError(t, err)
	v, err := doubled.At(3)
	require.NoError(t, err)
	assert.Equal(t, float64(8), v)
}

func TestSeriesWithNulls(t *testing.T) {
	mem := memory.NewGoAllocator()

	s, err := pygdf.NewSeriesWithValidity([]int64{1, 2, 3}, []bool{true, false, true}, mem)
	require.NoError(t, err)
	assert.Equal(t, 1, s.NullCount())

	v, err := s.At(1)
	require.NoError(t, err)
	assert.Nil(t, v)

	filled, err := s.Fillna(int64(0))
	require.NoError(t, err)
	assert.Zero(t, filled.NullCount())

	mean, err := s.Mean()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, mean, 1e-12, "nulls are skipped by reductions")

	dense, err := s.ToDense(pygdf.FillNone)
	require.NoError(t, err)
	assert.Equal(t, 2, dense.Len())

	padded, err := s.ToDense(pygdf.FillPandas)
	require.NoError(t, err)
	assert.Equal(t, 3, padded.Len())
	assert.True(t, padded.DType().Equal(pygdf.Float64))
}

func TestDataFrameWorkflow(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := pygdf.NewDataFrame(mem)
	require.NoError(t, df.AddColumn("key", []int64{0, 1, 0, 1, 2}))
	require.NoError(t, df.AddColumn("value", []float64{10, 20, 30, 40, 50}))

	assert.Equal(t, 5, df.Len())
	assert.Equal(t, 2, df.Width())

	encoded, err := df.OneHotEncoding("key", "key", []float64{0, 1, 2}, "_", pygdf.Float64)
	require.NoError(t, err)
	assert.Equal(t, []string{"key", "value", "key_0", "key_1", "key_2"}, encoded.Columns())

	mat, err := encoded.AsMatrix("key_0", "key_1", "key_2")
	require.NoError(t, err)
	assert.Equal(t, 5, mat.Rows)
	assert.Equal(t, 3, mat.Cols)

	v, err := mat.At(4, 2)
	require.NoError(t, err)
	assert.Equal(t, float64(1), v)
}

func TestDataFrameSliceAndConcat(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := pygdf.NewDataFrame(mem)
	require.NoError(t, df.AddColumn("a", []int64{0, 1, 2, 3}))

	head, err := df.Loc(0, 2)
	require.NoError(t, err)
	tail, err := df.Loc(2, 4)
	require.NoError(t, err)

	whole, err := head.Concat(tail)
	require.NoError(t, err)
	assert.Equal(t, 4, whole.Len())

	col, ok := whole.Column("a")
	require.True(t, ok)
	v, err := col.At(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestCategoricalWorkflow(t *testing.T) {
	mem := memory.NewGoAllocator()

	s, err := pygdf.NewCategoricalSeries([]int32{0, 1, -1, 2}, []string{"a", "b", "c"}, false, mem)
	require.NoError(t, err)
	assert.Equal(t, 1, s.NullCount())

	cat, err := s.Cat()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, cat.Categories())
}

func TestArrowRoundTrip(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := pygdf.NewDataFrame(mem)
	require.NoError(t, df.AddColumn("x", []float64{1.5, 2.5}))

	rec, err := pygdf.ToRecord(df, mem)
	require.NoError(t, err)
	defer rec.Release()

	back, err := pygdf.FromRecord(rec, mem)
	require.NoError(t, err)
	assert.Equal(t, df.Columns(), back.Columns())
	assert.Equal(t, df.Len(), back.Len())
}

func TestSetConfig(t *testing.T) {
	original := pygdf.GetConfig()
	defer func() { require.NoError(t, pygdf.SetConfig(original)) }()

	cfg := original
	cfg.ParallelThreshold = 1234
	require.NoError(t, pygdf.SetConfig(cfg))
	assert.Equal(t, 1234, pygdf.GetConfig().ParallelThreshold)

	bad := original
	bad.ParallelThreshold = -1
	assert.Error(t, pygdf.SetConfig(bad))
}

func TestScaleEndToEnd(t *testing.T) {
	mem := memory.NewGoAllocator()

	s := pygdf.NewSeries([]int64{0, 5, 10}, mem)
	scaled, err := s.Scale()
	require.NoError(t, err)
	assert.True(t, scaled.DType().Equal(pygdf.Float64))

	v, err := scaled.At(1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
}
