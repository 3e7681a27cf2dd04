// Package dataframe implements the table: an ordered collection of
// same-length named columns sharing one row count.
package dataframe

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"

	"github.com/prajaktapitale29/pygdf/internal/errors"
	"github.com/prajaktapitale29/pygdf/internal/logging"
	"github.com/prajaktapitale29/pygdf/internal/series"
)

// DataFrame is an ordered mapping of column names to row-aligned Series.
// Every column's length equals the table row count; names are unique and
// insertion order is the display and iteration order.
type DataFrame struct {
	cols  map[string]*series.Series
	order []string
	size  int
	mem   memory.Allocator
}

// Column pairs a name with column-like data for table construction. Data
// accepts anything the Series coercion contract does.
type Column struct {
	Name string
	Data any
}

// New creates an empty DataFrame. mem defaults to the Go allocator when
// nil and is used for storage allocated by table operations.
func New(mem memory.Allocator) *DataFrame {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &DataFrame{
		cols: make(map[string]*series.Series),
		mem:  mem,
	}
}

// NewFromColumns creates a DataFrame from (name, column-like) pairs in
// order.
func NewFromColumns(cols []Column, mem memory.Allocator) (*DataFrame, error) {
	df := New(mem)
	for _, c := range cols {
		if err := df.AddColumn(c.Name, c.Data); err != nil {
			return nil, err
		}
	}
	return df, nil
}

// Len returns the number of rows.
func (df *DataFrame) Len() int { return df.size }

// Width returns the number of columns.
func (df *DataFrame) Width() int { return len(df.order) }

// Columns returns the column names in insertion order.
func (df *DataFrame) Columns() []string {
	return append([]string(nil), df.order...)
}

// Column returns the Series for the given column name.
func (df *DataFrame) Column(name string) (*series.Series, bool) {
	col, ok := df.cols[name]
	return col, ok
}

// HasColumn reports whether a column exists.
func (df *DataFrame) HasColumn(name string) bool {
	_, ok := df.cols[name]
	return ok
}

func (df *DataFrame) sentryColumnSize(size int) error {
	if len(df.order) > 0 && df.size != size {
		return errors.Newf(errors.KindSizeMismatch, "AddColumn",
			"column size %d does not match row count %d", size, df.size)
	}
	return nil
}

// AddColumn adds a column, coercing data through the Series conversion
// contract. Adding a duplicate name or a column whose length differs
// from the table row count fails; the first column sets the row count.
func (df *DataFrame) AddColumn(name string, data any) error {
	if df.HasColumn(name) {
		return errors.NewColumn(errors.KindNameConflict, "AddColumn", name, "duplicated column name")
	}
	col, err := series.FromAny(data, df.mem)
	if err != nil {
		return err
	}
	if err := df.sentryColumnSize(col.Len()); err != nil {
		return err
	}
	df.cols[name] = col
	df.order = append(df.order, name)
	df.size = col.Len()
	logging.L().Debug("add column", zap.String("column", name), zap.Int("rows", col.Len()))
	return nil
}

// DropColumn removes a column by name.
func (df *DataFrame) DropColumn(name string) error {
	if !df.HasColumn(name) {
		return errors.NewColumn(errors.KindNotFound, "DropColumn", name, "column does not exist")
	}
	delete(df.cols, name)
	for i, n := range df.order {
		if n == name {
			df.order = append(df.order[:i], df.order[i+1:]...)
			break
		}
	}
	return nil
}

// Set adds or replaces a column. Replacing an existing name swaps the
// Series in place without the size sentry applied by AddColumn: a new
// length propagates silently and the row count is not re-validated
// against the other columns. This asymmetry is part of the contract.
func (df *DataFrame) Set(name string, data any) error {
	if !df.HasColumn(name) {
		return df.AddColumn(name, data)
	}
	col, err := series.FromAny(data, df.mem)
	if err != nil {
		return err
	}
	df.cols[name] = col
	return nil
}

// Copy returns a shallow copy sharing the underlying columns.
func (df *DataFrame) Copy() *DataFrame {
	out := New(df.mem)
	for _, name := range df.order {
		out.cols[name] = df.cols[name]
		out.order = append(out.order, name)
	}
	out.size = df.size
	return out
}

// Concat builds a new DataFrame whose columns are the row-wise append of
// the corresponding columns across df and each argument table in order.
// Every table's column-name tuple must exactly equal df's.
func (df *DataFrame) Concat(others ...*DataFrame) (*DataFrame, error) {
	for _, other := range others {
		if !sameColumns(df.order, other.order) {
			return nil, errors.New(errors.KindColumnMismatch, "Concat", "columns mismatch")
		}
	}

	out := New(df.mem)
	for _, name := range df.order {
		col := df.cols[name]
		for _, other := range others {
			appended, err := col.Append(other.cols[name])
			if err != nil {
				return nil, err
			}
			col = appended
		}
		if err := out.AddColumn(name, col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i, n := range a {
		if b[i] != n {
			return false
		}
	}
	return true
}

// Loc builds a fresh DataFrame by row-slicing the selected columns over
// [start, stop). With no column names every column is selected, in table
// order. Negative bounds wrap from the end.
func (df *DataFrame) Loc(start, stop int, cols ...string) (*DataFrame, error) {
	if len(cols) == 0 {
		cols = df.order
	}
	out := New(df.mem)
	for _, name := range cols {
		col, ok := df.cols[name]
		if !ok {
			return nil, errors.NewColumn(errors.KindNotFound, "Loc", name, "column does not exist")
		}
		sliced, err := col.Slice(start, stop)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(name, sliced); err != nil {
			return nil, err
		}
	}
	return out, nil
}
