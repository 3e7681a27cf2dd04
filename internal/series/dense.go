package series

import (
	"math"

	"github.com/prajaktapitale29/pygdf/internal/buffer"
	"github.com/prajaktapitale29/pygdf/internal/dtype"
	"github.com/prajaktapitale29/pygdf/internal/errors"
)

// FillPolicy selects how ToDenseBuffer treats null rows.
type FillPolicy int

const (
	// FillNone compacts the column to only its valid elements, so the
	// output can be shorter than the column.
	FillNone FillPolicy = iota
	// FillPandas promotes non-floating columns to float64 and fills null
	// positions with NaN, keeping the column length.
	FillPandas
)

// Fillna returns a copy with null values replaced by value and no mask.
// A Series without a mask is returned as-is.
func (s *Series) Fillna(value any) (*Series, error) {
	if !s.HasNullMask() {
		return s, nil
	}
	out, err := Backend().FillNull(s.data, s.mask, value)
	if err != nil {
		return nil, err
	}
	return FromBuffer(out)
}

// ToDenseBuffer returns a dense (no null values) buffer of the data per
// the fill policy. Without a mask the existing data buffer is returned
// unchanged.
func (s *Series) ToDenseBuffer(fillna FillPolicy) (*buffer.Buffer, error) {
	if fillna != FillNone && fillna != FillPandas {
		return nil, errors.Newf(errors.KindInvalidValue, "ToDenseBuffer", "invalid fill policy %d", fillna)
	}

	if !s.HasNullMask() {
		return s.data, nil
	}

	if fillna == FillPandas {
		col := s
		if !dtype.IsFloating(s.dt) {
			// Promote to float64, re-layering the mask the cast dropped.
			cast, err := s.Astype(dtype.Float64)
			if err != nil {
				return nil, err
			}
			col, err = cast.SetMask(s.mask, s.nullCount)
			if err != nil {
				return nil, err
			}
		}
		filled, err := col.Fillna(math.NaN())
		if err != nil {
			return nil, err
		}
		return filled.data, nil
	}

	_, dense, err := Backend().CompactDense(s.data, s.mask)
	if err != nil {
		return nil, err
	}
	return dense, nil
}

// Min computes the minimum over the valid elements, seeded with the
// dtype's maximum sentinel.
func (s *Series) Min() (any, error) {
	dense, err := s.ToDenseBuffer(FillNone)
	if err != nil {
		return nil, err
	}
	return Backend().ReduceMin(dense)
}

// Max computes the maximum over the valid elements, seeded with the
// dtype's minimum sentinel.
func (s *Series) Max() (any, error) {
	dense, err := s.ToDenseBuffer(FillNone)
	if err != nil {
		return nil, err
	}
	return Backend().ReduceMax(dense)
}

// Mean computes the mean of the valid elements.
func (s *Series) Mean() (float64, error) {
	mu, _, err := s.meanVar()
	return mu, err
}

// Var computes the population variance of the valid elements.
func (s *Series) Var() (float64, error) {
	_, v, err := s.meanVar()
	return v, err
}

// Std computes the standard deviation of the valid elements.
func (s *Series) Std() (float64, error) {
	v, err := s.Var()
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// MeanVar computes the mean and variance in one backend pass.
func (s *Series) MeanVar() (float64, float64, error) {
	return s.meanVar()
}

func (s *Series) meanVar() (float64, float64, error) {
	dense, err := s.ToDenseBuffer(FillNone)
	if err != nil {
		return 0, 0, err
	}
	return Backend().ReduceMeanVar(dense)
}

// UniqueK returns a buffer of at most k distinct valid values in
// first-seen order. A fully-null column yields an empty buffer.
func (s *Series) UniqueK(k int) (*buffer.Buffer, error) {
	if s.nullCount == s.size {
		return buffer.FromEmpty(physicalDType(s.dt), 0, s.mem), nil
	}
	dense, err := s.ToDenseBuffer(FillNone)
	if err != nil {
		return nil, err
	}
	return Backend().SampleUnique(dense, k)
}

// Scale linearly rescales the values to [0, 1] in float64. It is defined
// only for fully dense columns; any null fails the operation.
func (s *Series) Scale() (*Series, error) {
	if s.nullCount != 0 {
		return nil, errors.New(errors.KindNotSupported, "Scale", "masked series not supported by this operation")
	}
	vmin, err := s.Min()
	if err != nil {
		return nil, err
	}
	vmax, err := s.Max()
	if err != nil {
		return nil, err
	}
	scaled, err := Backend().LinearRescale(s.data, scalarToFloat(vmin), scalarToFloat(vmax))
	if err != nil {
		return nil, err
	}
	return FromBuffer(scaled)
}
