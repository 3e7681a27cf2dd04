package dataframe

import (
	"github.com/prajaktapitale29/pygdf/internal/buffer"
	"github.com/prajaktapitale29/pygdf/internal/dtype"
	"github.com/prajaktapitale29/pygdf/internal/errors"
	"github.com/prajaktapitale29/pygdf/internal/series"
)

// Matrix is a dense 2-D column-major export of a DataFrame: Data holds
// Cols consecutive column vectors of Rows elements each.
type Matrix struct {
	Rows int
	Cols int
	Data *buffer.Buffer
}

// At returns the element at (row, col).
func (m *Matrix) At(row, col int) (any, error) {
	if row < 0 || row >= m.Rows || col < 0 || col >= m.Cols {
		return nil, errors.Newf(errors.KindIndex, "At", "(%d, %d) out of range for %dx%d matrix", row, col, m.Rows, m.Cols)
	}
	return m.Data.At(col*m.Rows + row)
}

// AsMatrix exports the selected columns (all columns when none are named)
// as a dense column-major matrix. The table must be non-empty, every
// column of the table must be free of nulls, and the selected columns
// must share one numeric dtype.
func (df *DataFrame) AsMatrix(cols ...string) (*Matrix, error) {
	if len(cols) == 0 {
		cols = df.order
	}
	if len(cols) == 0 || df.size == 0 {
		return nil, errors.New(errors.KindInvalidValue, "AsMatrix", "dataframe is empty")
	}

	// Nulls anywhere in the table forbid the export, not just in the
	// selected columns.
	for _, name := range df.order {
		if df.cols[name].NullCount() > 0 {
			return nil, errors.NewColumn(errors.KindInvalidValue, "AsMatrix", name, "column has null values")
		}
	}

	selected := make([]*series.Series, 0, len(cols))
	for _, name := range cols {
		col, ok := df.cols[name]
		if !ok {
			return nil, errors.NewColumn(errors.KindNotFound, "AsMatrix", name, "column does not exist")
		}
		selected = append(selected, col)
	}

	dt := selected[0].DType()
	if !dtype.IsNumeric(dt) {
		return nil, errors.Newf(errors.KindType, "AsMatrix", "dtype %s is not numeric", dt.Name())
	}
	for i, col := range selected {
		if !col.DType().Equal(dt) {
			return nil, errors.NewColumn(errors.KindType, "AsMatrix", cols[i], "all columns must have the same dtype")
		}
	}

	mat := buffer.FromEmpty(dt, df.size*len(selected), df.mem)
	for _, col := range selected {
		dense, err := col.ToDenseBuffer(series.FillNone)
		if err != nil {
			return nil, err
		}
		if err := mat.Extend(dense); err != nil {
			return nil, err
		}
	}
	return &Matrix{Rows: df.size, Cols: len(selected), Data: mat}, nil
}
