package dataframe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajaktapitale29/pygdf/internal/errors"
	"github.com/prajaktapitale29/pygdf/internal/testutil"
)

func TestLocOnStandardTable(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	df := testutil.CreateTestDataFrame(t, mem.Allocator, testutil.WithRowCount(10))
	testutil.AssertDataFrameHasColumns(t, df, []string{"id", "weight", "count"})

	window, err := df.Loc(2, 5, "id", "weight")
	require.NoError(t, err)
	assert.Equal(t, 3, window.Len())

	id, ok := window.Column("id")
	require.True(t, ok)
	testutil.AssertSeriesValues(t, id, []any{int32(2), int32(3), int32(4)})
}

func TestConcatStandardTables(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	a := testutil.CreateTestDataFrame(t, mem.Allocator, testutil.WithRowCount(3))
	b := testutil.CreateTestDataFrame(t, mem.Allocator, testutil.WithRowCount(2))

	out, err := a.Concat(b)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Len())
	assert.Equal(t, a.Columns(), out.Columns())
}

func TestMatrixExportBlockedByNullColumn(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	df := testutil.CreateTestDataFrame(t, mem.Allocator, testutil.WithNulls())

	_, err := df.AsMatrix("weight")
	assert.ErrorIs(t, err, errors.ErrInvalidValue, "nulls anywhere in the table block the export")
}

func TestCategoricalColumnInTable(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	df := testutil.CreateTestDataFrame(t, mem.Allocator, testutil.WithRowCount(6), testutil.WithCategorical())

	grade, ok := df.Column("grade")
	require.True(t, ok)

	cat, err := grade.Cat()
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "mid", "high"}, cat.Categories())

	cells, err := grade.ValuesToString(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "mid", "high"}, cells)
}
