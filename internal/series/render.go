package series

import (
	"github.com/prajaktapitale29/pygdf/internal/format"
)

// ValuesToString returns a string per element for the first nrows rows,
// with null rows rendered as the empty string. A negative nrows renders
// every row.
func (s *Series) ValuesToString(nrows int) ([]string, error) {
	if nrows < 0 || nrows > s.size {
		nrows = s.size
	}
	out := make([]string, nrows)
	for i := range nrows {
		v, err := s.At(i)
		if err != nil {
			return nil, err
		}
		if v == nil {
			out[i] = ""
			continue
		}
		out[i] = s.impl.elementToString(v)
	}
	return out, nil
}

// ToString renders at most nrows rows; a negative nrows renders all.
func (s *Series) ToString(nrows int) string {
	if nrows < 0 || nrows > s.size {
		nrows = s.size
	}
	cells, err := s.ValuesToString(nrows)
	if err != nil {
		return err.Error()
	}
	return format.Grid([]string{""}, [][]string{cells}, format.Options{
		MoreRows: s.size - nrows,
	})
}

// String implements fmt.Stringer with the default five-row preview.
func (s *Series) String() string {
	return s.ToString(5)
}
