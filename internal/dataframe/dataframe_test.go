package dataframe

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajaktapitale29/pygdf/internal/buffer"
	"github.com/prajaktapitale29/pygdf/internal/errors"
	"github.com/prajaktapitale29/pygdf/internal/series"
)

func TestAddColumn(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(mem)
	require.NoError(t, df.AddColumn("a", []int64{1, 2, 3}))
	require.NoError(t, df.AddColumn("b", []float64{0.1, 0.2, 0.3}))

	assert.Equal(t, 3, df.Len())
	assert.Equal(t, 2, df.Width())
	assert.Equal(t, []string{"a", "b"}, df.Columns())
	assert.True(t, df.HasColumn("a"))
	assert.False(t, df.HasColumn("c"))
}

func TestAddColumnSentries(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(mem)
	require.NoError(t, df.AddColumn("a", []int64{1, 2, 3}))

	err := df.AddColumn("a", []int64{4, 5, 6})
	assert.ErrorIs(t, err, errors.ErrNameConflict)

	err = df.AddColumn("b", []int64{1, 2})
	assert.ErrorIs(t, err, errors.ErrSizeMismatch)

	err = df.AddColumn("c", "not a column")
	assert.ErrorIs(t, err, errors.ErrType)

	assert.Equal(t, 1, df.Width(), "failed adds leave the table unchanged")
}

func TestDropColumn(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(mem)
	require.NoError(t, df.AddColumn("a", []int64{1}))
	require.NoError(t, df.AddColumn("b", []int64{2}))
	require.NoError(t, df.AddColumn("c", []int64{3}))

	require.NoError(t, df.DropColumn("b"))
	assert.Equal(t, []string{"a", "c"}, df.Columns())

	err := df.DropColumn("b")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestSetOverwritesWithoutSizeSentry(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(mem)
	require.NoError(t, df.AddColumn("a", []int64{1, 2, 3}))

	// Replacement skips the row-count sentry entirely.
	require.NoError(t, df.Set("a", []int64{7}))
	col, ok := df.Column("a")
	require.True(t, ok)
	assert.Equal(t, 1, col.Len())
	assert.Equal(t, 3, df.Len(), "the table row count is not re-validated")

	// A fresh name goes through AddColumn and its sentries.
	err := df.Set("b", []int64{1, 2})
	assert.ErrorIs(t, err, errors.ErrSizeMismatch)
}

func TestCopySharesColumns(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(mem)
	require.NoError(t, df.AddColumn("a", []int64{1, 2}))

	cp := df.Copy()
	require.NoError(t, cp.AddColumn("b", []int64{3, 4}))

	assert.Equal(t, 1, df.Width(), "adding to the copy leaves the original alone")
	assert.Equal(t, 2, cp.Width())

	orig, _ := df.Column("a")
	copied, _ := cp.Column("a")
	assert.Same(t, orig, copied, "columns are shared, not duplicated")
}

func TestConcat(t *testing.T) {
	mem := memory.NewGoAllocator()

	a := New(mem)
	require.NoError(t, a.AddColumn("x", []int64{1, 2}))
	require.NoError(t, a.AddColumn("y", []float64{0.1, 0.2}))

	b := New(mem)
	require.NoError(t, b.AddColumn("x", []int64{3}))
	require.NoError(t, b.AddColumn("y", []float64{0.3}))

	c := New(mem)
	require.NoError(t, c.AddColumn("x", []int64{4, 5}))
	require.NoError(t, c.AddColumn("y", []float64{0.4, 0.5}))

	out, err := a.Concat(b, c)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Len())
	assert.Equal(t, []string{"x", "y"}, out.Columns())

	x, _ := out.Column("x")
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, buffer.Values[int64](x.Data()))
}

func TestConcatColumnMismatch(t *testing.T) {
	mem := memory.NewGoAllocator()

	a := New(mem)
	require.NoError(t, a.AddColumn("x", []int64{1}))

	b := New(mem)
	require.NoError(t, b.AddColumn("y", []int64{2}))

	_, err := a.Concat(b)
	assert.ErrorIs(t, err, errors.ErrColumnMismatch)

	// Same names in a different order also mismatch.
	c := New(mem)
	require.NoError(t, c.AddColumn("y", []int64{1}))
	require.NoError(t, c.AddColumn("x", []int64{2}))

	d := New(mem)
	require.NoError(t, d.AddColumn("x", []int64{3}))
	require.NoError(t, d.AddColumn("y", []int64{4}))

	_, err = c.Concat(d)
	assert.ErrorIs(t, err, errors.ErrColumnMismatch)
}

func TestLoc(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(mem)
	require.NoError(t, df.AddColumn("a", []int64{0, 1, 2, 3, 4}))
	require.NoError(t, df.AddColumn("b", []float64{0, 10, 20, 30, 40}))

	out, err := df.Loc(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Len())
	assert.Equal(t, []string{"a", "b"}, out.Columns())

	a, _ := out.Column("a")
	assert.Equal(t, []int64{1, 2, 3}, buffer.Values[int64](a.Data()))

	only, err := df.Loc(-2, 5, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, only.Columns())
	b, _ := only.Column("b")
	assert.Equal(t, []float64{30, 40}, buffer.Values[float64](b.Data()))

	_, err = df.Loc(0, 1, "missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestOneHotEncoding(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(mem)
	require.NoError(t, df.AddColumn("label", []int64{0, 1, 0, 1, 2}))
	require.NoError(t, df.AddColumn("value", []float64{1, 2, 3, 4, 5}))

	out, err := df.OneHotEncoding("label", "label", []float64{0, 1, 2}, "_", df.cols["value"].DType())
	require.NoError(t, err)

	assert.Equal(t, []string{"label", "value", "label_0", "label_1", "label_2"}, out.Columns())
	assert.Equal(t, 2, df.Width(), "encoding returns a copy")

	hot0, _ := out.Column("label_0")
	assert.Equal(t, []float64{1, 0, 1, 0, 0}, buffer.Values[float64](hot0.Data()))
	hot2, _ := out.Column("label_2")
	assert.Equal(t, []float64{0, 0, 0, 0, 1}, buffer.Values[float64](hot2.Data()))
}

func TestOneHotEncodingMissingColumn(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(mem)
	require.NoError(t, df.AddColumn("a", []int64{1}))

	_, err := df.OneHotEncoding("missing", "m", []float64{0}, "_", df.cols["a"].DType())
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestToString(t *testing.T) {
	mem := memory.NewGoAllocator()

	df := New(mem)
	require.NoError(t, df.AddColumn("a", []int64{1, 2, 3}))
	require.NoError(t, df.AddColumn("b", []int64{4, 5, 6}))
	require.NoError(t, df.AddColumn("c", []int64{7, 8, 9}))

	out := df.ToString(2, 2)
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
	assert.NotContains(t, out, "c ")
	assert.Contains(t, out, "[1 more cols]")
	assert.Contains(t, out, "[1 more rows]")
}

func TestNewFromColumns(t *testing.T) {
	mem := memory.NewGoAllocator()

	df, err := NewFromColumns([]Column{
		{Name: "a", Data: []int64{1, 2}},
		{Name: "b", Data: series.FromSlice([]float64{3, 4}, mem)},
	}, mem)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, df.Columns())
	assert.Equal(t, 2, df.Len())
}
