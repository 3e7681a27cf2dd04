package dataframe

import (
	"fmt"

	"github.com/prajaktapitale29/pygdf/internal/dtype"
	"github.com/prajaktapitale29/pygdf/internal/errors"
)

// OneHotEncoding expands the named column into one indicator column per
// candidate category value, appended to a copy of the table. New columns
// are named prefix + prefixSep + category and written in dt.
func (df *DataFrame) OneHotEncoding(column, prefix string, cats []float64, prefixSep string, dt dtype.DType) (*DataFrame, error) {
	col, ok := df.cols[column]
	if !ok {
		return nil, errors.NewColumn(errors.KindNotFound, "OneHotEncoding", column, "column does not exist")
	}

	newcols, err := col.OneHotEncoding(cats, dt)
	if err != nil {
		return nil, err
	}

	out := df.Copy()
	for i, c := range newcols {
		name := fmt.Sprintf("%s%s%v", prefix, prefixSep, cats[i])
		if err := out.AddColumn(name, c); err != nil {
			return nil, err
		}
	}
	return out, nil
}
