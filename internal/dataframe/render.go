package dataframe

import (
	"github.com/prajaktapitale29/pygdf/internal/format"
)

// ToString renders at most nrows rows and ncols columns, annotating
// whatever the preview elides. Negative limits render everything.
func (df *DataFrame) ToString(nrows, ncols int) string {
	if nrows < 0 || nrows > df.size {
		nrows = df.size
	}
	if ncols < 0 || ncols > len(df.order) {
		ncols = len(df.order)
	}

	names := df.order[:ncols]
	headers := make([]string, len(names))
	cells := make([][]string, len(names))
	for i, name := range names {
		headers[i] = name
		col, err := df.cols[name].ValuesToString(nrows)
		if err != nil {
			return err.Error()
		}
		cells[i] = col
	}
	return format.Grid(headers, cells, format.Options{
		ShowHeaders: true,
		MoreCols:    len(df.order) - ncols,
		MoreRows:    df.size - nrows,
	})
}

// String implements fmt.Stringer with the default preview size.
func (df *DataFrame) String() string {
	return df.ToString(10, 8)
}
