// Package pygdf provides an in-memory columnar data model: fixed-capacity
// typed buffers, nullable Series with packed validity masks, and a
// DataFrame of row-aligned columns. This package is the sole public API
// for the library.
package pygdf

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/prajaktapitale29/pygdf/internal/buffer"
	"github.com/prajaktapitale29/pygdf/internal/compute"
	"github.com/prajaktapitale29/pygdf/internal/config"
	"github.com/prajaktapitale29/pygdf/internal/dataframe"
	"github.com/prajaktapitale29/pygdf/internal/dtype"
	"github.com/prajaktapitale29/pygdf/internal/interop"
	"github.com/prajaktapitale29/pygdf/internal/logging"
	"github.com/prajaktapitale29/pygdf/internal/series"
)

// DType identifies a column element type.
type DType = dtype.DType

// Element constrains the Go scalar types a column can hold.
type Element = buffer.Element

// Supported primitive dtypes.
var (
	Int8    = dtype.Int8
	Int32   = dtype.Int32
	Int64   = dtype.Int64
	Uint8   = dtype.Uint8
	Float32 = dtype.Float32
	Float64 = dtype.Float64
	Bool    = dtype.Bool
)

// FillPolicy selects how dense exports treat null rows.
type FillPolicy = series.FillPolicy

const (
	// FillNone compacts a column to its valid elements.
	FillNone = series.FillNone
	// FillPandas promotes to float64 and writes NaN at null rows.
	FillPandas = series.FillPandas
)

// Config re-exports the runtime configuration.
type Config = config.Config

// SetConfig validates and installs the global configuration, then
// reconfigures logging to match.
func SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	config.SetGlobalConfig(cfg)
	logging.Configure(cfg.VerboseLogging)
	return nil
}

// GetConfig returns the active global configuration.
func GetConfig() Config {
	return config.GetGlobalConfig()
}

// LoadConfigFromFile loads a configuration from a JSON or YAML file,
// filling defaults for unset fields.
func LoadConfigFromFile(path string) (Config, error) {
	return config.LoadFromFile(path)
}

// Backend re-exports the compute backend contract so callers can install
// an alternative kernel implementation.
type Backend = compute.Backend

// SetBackend installs a compute backend for all column operations.
// Passing nil restores the default CPU backend.
func SetBackend(b Backend) {
	series.SetBackend(b)
}

// Series is the public type for a typed, optionally-nullable column.
type Series struct {
	s *series.Series
}

// DataFrame is the public type for a table of row-aligned columns.
type DataFrame struct {
	df *dataframe.DataFrame
}

// Matrix is a dense column-major export of a DataFrame.
type Matrix = dataframe.Matrix

// CatAccessor exposes the categorical view of a Series.
type CatAccessor = series.CatAccessor

// NewSeries creates a Series from a Go slice, copying the values.
func NewSeries[T Element](values []T, mem memory.Allocator) *Series {
	return &Series{s: series.FromSlice(values, mem)}
}

// NewSeriesWithValidity creates a Series from values plus a dense
// validity slice; false entries become null rows.
func NewSeriesWithValidity[T Element](values []T, valid []bool, mem memory.Allocator) (*Series, error) {
	s, err := series.FromSliceWithValidity(values, valid, mem)
	if err != nil {
		return nil, err
	}
	return &Series{s: s}, nil
}

// NewCategoricalSeries creates a categorical Series from integer codes
// and a category list. Code -1 marks a null row.
func NewCategoricalSeries(codes []int32, categories []string, ordered bool, mem memory.Allocator) (*Series, error) {
	s, err := series.FromCategorical(codes, categories, ordered, mem)
	if err != nil {
		return nil, err
	}
	return &Series{s: s}, nil
}

// Series methods

// Len returns the number of rows including nulls.
func (s *Series) Len() int { return s.s.Len() }

// DType returns the element type.
func (s *Series) DType() DType { return s.s.DType() }

// NullCount returns the number of null rows.
func (s *Series) NullCount() int { return s.s.NullCount() }

// HasNulls reports whether the Series carries a null mask.
func (s *Series) HasNulls() bool { return s.s.HasNullMask() }

// At returns the element at row i, or nil for a null row. Negative
// indices wrap from the end.
func (s *Series) At(i int) (any, error) { return s.s.At(i) }

// Slice returns a new Series over rows [start, stop).
func (s *Series) Slice(start, stop int) (*Series, error) {
	return wrapSeries(s.s.Slice(start, stop))
}

// Append returns a new Series holding the rows of s followed by the rows
// of other. Null masks are not carried over.
func (s *Series) Append(other *Series) (*Series, error) {
	return wrapSeries(s.s.Append(other.s))
}

// Add returns the elementwise sum of s and other.
func (s *Series) Add(other *Series) (*Series, error) { return wrapSeries(s.s.Add(other.unwrap())) }

// Sub returns the elementwise difference of s and other.
func (s *Series) Sub(other *Series) (*Series, error) { return wrapSeries(s.s.Sub(other.unwrap())) }

// Mul returns the elementwise product of s and other.
func (s *Series) Mul(other *Series) (*Series, error) { return wrapSeries(s.s.Mul(other.unwrap())) }

// Div returns the elementwise quotient of s and other.
func (s *Series) Div(other *Series) (*Series, error) { return wrapSeries(s.s.Div(other.unwrap())) }

// FloorDiv returns the elementwise floored quotient of s and other.
func (s *Series) FloorDiv(other *Series) (*Series, error) {
	return wrapSeries(s.s.FloorDiv(other.unwrap()))
}

// Eq returns the elementwise equality as a boolean Series.
func (s *Series) Eq(other *Series) (*Series, error) { return wrapSeries(s.s.Eq(other.unwrap())) }

// Ne returns the elementwise inequality as a boolean Series.
func (s *Series) Ne(other *Series) (*Series, error) { return wrapSeries(s.s.Ne(other.unwrap())) }

// Lt returns the elementwise less-than as a boolean Series.
func (s *Series) Lt(other *Series) (*Series, error) { return wrapSeries(s.s.Lt(other.unwrap())) }

// Le returns the elementwise less-or-equal as a boolean Series.
func (s *Series) Le(other *Series) (*Series, error) { return wrapSeries(s.s.Le(other.unwrap())) }

// Gt returns the elementwise greater-than as a boolean Series.
func (s *Series) Gt(other *Series) (*Series, error) { return wrapSeries(s.s.Gt(other.unwrap())) }

// Ge returns the elementwise greater-or-equal as a boolean Series.
func (s *Series) Ge(other *Series) (*Series, error) { return wrapSeries(s.s.Ge(other.unwrap())) }

// Ceil rounds each value upward to an integral value.
func (s *Series) Ceil() (*Series, error) { return wrapSeries(s.s.Ceil()) }

// Floor rounds each value downward to an integral value.
func (s *Series) Floor() (*Series, error) { return wrapSeries(s.s.Floor()) }

// Astype converts the Series to the given dtype, dropping any mask.
func (s *Series) Astype(dt DType) (*Series, error) { return wrapSeries(s.s.Astype(dt)) }

// Fillna returns a copy with null values replaced by value and no mask.
func (s *Series) Fillna(value any) (*Series, error) { return wrapSeries(s.s.Fillna(value)) }

// ToDense returns a Series with no null values per the fill policy:
// FillNone compacts to the valid rows, FillPandas keeps the length and
// writes NaN at null rows in float64.
func (s *Series) ToDense(fillna FillPolicy) (*Series, error) {
	buf, err := s.s.ToDenseBuffer(fillna)
	if err != nil {
		return nil, err
	}
	return wrapSeries(series.FromBuffer(buf))
}

// Min computes the minimum over the valid elements.
func (s *Series) Min() (any, error) { return s.s.Min() }

// Max computes the maximum over the valid elements.
func (s *Series) Max() (any, error) { return s.s.Max() }

// Mean computes the mean of the valid elements.
func (s *Series) Mean() (float64, error) { return s.s.Mean() }

// Var computes the population variance of the valid elements.
func (s *Series) Var() (float64, error) { return s.s.Var() }

// Std computes the standard deviation of the valid elements.
func (s *Series) Std() (float64, error) { return s.s.Std() }

// UniqueK returns at most k distinct valid values as a dense Series.
func (s *Series) UniqueK(k int) (*Series, error) {
	buf, err := s.s.UniqueK(k)
	if err != nil {
		return nil, err
	}
	return wrapSeries(series.FromBuffer(buf))
}

// Scale linearly rescales the values to [0, 1] in float64.
func (s *Series) Scale() (*Series, error) { return wrapSeries(s.s.Scale()) }

// OneHotEncoding produces one indicator Series per candidate category
// value, written in dt.
func (s *Series) OneHotEncoding(cats []float64, dt DType) ([]*Series, error) {
	cols, err := s.s.OneHotEncoding(cats, dt)
	if err != nil {
		return nil, err
	}
	out := make([]*Series, len(cols))
	for i, c := range cols {
		out[i] = &Series{s: c}
	}
	return out, nil
}

// Cat returns the categorical accessor; non-categorical series fail with
// a type error.
func (s *Series) Cat() (*CatAccessor, error) { return s.s.Cat() }

// String returns a preview of the column.
func (s *Series) String() string { return s.s.String() }

func (s *Series) unwrap() *series.Series {
	if s == nil {
		return nil
	}
	return s.s
}

func wrapSeries(s *series.Series, err error) (*Series, error) {
	if err != nil {
		return nil, err
	}
	return &Series{s: s}, nil
}

// NewDataFrame creates an empty DataFrame.
func NewDataFrame(mem memory.Allocator) *DataFrame {
	return &DataFrame{df: dataframe.New(mem)}
}

// DataFrame methods

// AddColumn adds a column. Column-like data accepts *Series and slices of
// the supported element types.
func (d *DataFrame) AddColumn(name string, data any) error {
	return d.df.AddColumn(name, unwrapColumn(data))
}

// DropColumn removes a column by name.
func (d *DataFrame) DropColumn(name string) error { return d.df.DropColumn(name) }

// Set adds or replaces a column; replacement skips the row-count sentry.
func (d *DataFrame) Set(name string, data any) error {
	return d.df.Set(name, unwrapColumn(data))
}

// Column returns the column with the given name.
func (d *DataFrame) Column(name string) (*Series, bool) {
	col, ok := d.df.Column(name)
	if !ok {
		return nil, false
	}
	return &Series{s: col}, true
}

// Columns returns the column names in order.
func (d *DataFrame) Columns() []string { return d.df.Columns() }

// HasColumn returns true if the DataFrame has the given column.
func (d *DataFrame) HasColumn(name string) bool { return d.df.HasColumn(name) }

// Len returns the number of rows.
func (d *DataFrame) Len() int { return d.df.Len() }

// Width returns the number of columns.
func (d *DataFrame) Width() int { return d.df.Width() }

// Copy returns a shallow copy sharing the underlying columns.
func (d *DataFrame) Copy() *DataFrame { return &DataFrame{df: d.df.Copy()} }

// Concat concatenates this DataFrame with others row-wise.
func (d *DataFrame) Concat(others ...*DataFrame) (*DataFrame, error) {
	internal := make([]*dataframe.DataFrame, len(others))
	for i, other := range others {
		internal[i] = other.df
	}
	return wrapDataFrame(d.df.Concat(internal...))
}

// Loc builds a new DataFrame by row-slicing the selected columns.
func (d *DataFrame) Loc(start, stop int, cols ...string) (*DataFrame, error) {
	return wrapDataFrame(d.df.Loc(start, stop, cols...))
}

// AsMatrix exports the selected columns as a dense column-major matrix.
func (d *DataFrame) AsMatrix(cols ...string) (*Matrix, error) {
	return d.df.AsMatrix(cols...)
}

// OneHotEncoding expands the named column into indicator columns appended
// to a copy of the table.
func (d *DataFrame) OneHotEncoding(column, prefix string, cats []float64, prefixSep string, dt DType) (*DataFrame, error) {
	return wrapDataFrame(d.df.OneHotEncoding(column, prefix, cats, prefixSep, dt))
}

// String returns a preview of the table.
func (d *DataFrame) String() string { return d.df.String() }

func wrapDataFrame(df *dataframe.DataFrame, err error) (*DataFrame, error) {
	if err != nil {
		return nil, err
	}
	return &DataFrame{df: df}, nil
}

func unwrapColumn(data any) any {
	if s, ok := data.(*Series); ok {
		return s.s
	}
	return data
}

// Arrow interop

// ToRecord exports a DataFrame as an Arrow record.
func ToRecord(d *DataFrame, mem memory.Allocator) (arrow.Record, error) {
	return interop.ToRecord(d.df, mem)
}

// FromRecord imports an Arrow record as a DataFrame.
func FromRecord(rec arrow.Record, mem memory.Allocator) (*DataFrame, error) {
	return wrapDataFrame(interop.FromRecord(rec, mem))
}
