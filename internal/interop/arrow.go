// Package interop converts between the columnar data model and Apache
// Arrow records. Validity transfers bit-exactly in both directions; Arrow
// packs its bitmap with the same least-significant-bit-first convention
// the null mask uses.
package interop

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/prajaktapitale29/pygdf/internal/dataframe"
	"github.com/prajaktapitale29/pygdf/internal/dtype"
	"github.com/prajaktapitale29/pygdf/internal/errors"
	"github.com/prajaktapitale29/pygdf/internal/series"
)

// ToRecord exports a DataFrame as an Arrow record. Categorical columns
// become dictionary arrays with string values; null rows become Arrow
// nulls. The caller owns the returned record.
func ToRecord(df *dataframe.DataFrame, mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	names := df.Columns()
	fields := make([]arrow.Field, 0, len(names))
	arrs := make([]arrow.Array, 0, len(names))
	defer func() {
		for _, a := range arrs {
			a.Release()
		}
	}()

	for _, name := range names {
		col, _ := df.Column(name)
		arr, err := toArray(col, mem)
		if err != nil {
			return nil, err
		}
		arrs = append(arrs, arr)
		fields = append(fields, arrow.Field{
			Name:     name,
			Type:     arr.DataType(),
			Nullable: col.HasNullMask(),
		})
	}

	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, arrs, int64(df.Len())), nil
}

func toArray(col *series.Series, mem memory.Allocator) (arrow.Array, error) {
	if dtype.IsCategorical(col.DType()) {
		return toDictionary(col, mem)
	}

	var bld array.Builder
	switch {
	case col.DType().Equal(dtype.Int8):
		bld = array.NewInt8Builder(mem)
	case col.DType().Equal(dtype.Int32):
		bld = array.NewInt32Builder(mem)
	case col.DType().Equal(dtype.Int64):
		bld = array.NewInt64Builder(mem)
	case col.DType().Equal(dtype.Uint8):
		bld = array.NewUint8Builder(mem)
	case col.DType().Equal(dtype.Float32):
		bld = array.NewFloat32Builder(mem)
	case col.DType().Equal(dtype.Float64):
		bld = array.NewFloat64Builder(mem)
	case col.DType().Equal(dtype.Bool):
		bld = array.NewBooleanBuilder(mem)
	default:
		return nil, errors.Newf(errors.KindNotSupported, "ToRecord", "dtype %s has no arrow mapping", col.DType().Name())
	}
	defer bld.Release()

	for i := 0; i < col.Len(); i++ {
		v, err := col.At(i)
		if err != nil {
			return nil, err
		}
		if v == nil {
			bld.AppendNull()
			continue
		}
		switch b := bld.(type) {
		case *array.Int8Builder:
			b.Append(v.(int8))
		case *array.Int32Builder:
			b.Append(v.(int32))
		case *array.Int64Builder:
			b.Append(v.(int64))
		case *array.Uint8Builder:
			b.Append(v.(uint8))
		case *array.Float32Builder:
			b.Append(v.(float32))
		case *array.Float64Builder:
			b.Append(v.(float64))
		case *array.BooleanBuilder:
			b.Append(v.(bool))
		}
	}
	return bld.NewArray(), nil
}

func toDictionary(col *series.Series, mem memory.Allocator) (arrow.Array, error) {
	cat, err := col.Cat()
	if err != nil {
		return nil, err
	}

	idx := array.NewInt32Builder(mem)
	defer idx.Release()
	codes, err := cat.Codes()
	if err != nil {
		return nil, err
	}
	for i := 0; i < codes.Len(); i++ {
		v, err := codes.At(i)
		if err != nil {
			return nil, err
		}
		if v == nil {
			idx.AppendNull()
			continue
		}
		idx.Append(v.(int32))
	}
	indices := idx.NewArray()
	defer indices.Release()

	vb := array.NewStringBuilder(mem)
	defer vb.Release()
	for _, c := range cat.Categories() {
		vb.Append(c)
	}
	values := vb.NewArray()
	defer values.Release()

	dt := &arrow.DictionaryType{
		IndexType: arrow.PrimitiveTypes.Int32,
		ValueType: arrow.BinaryTypes.String,
		Ordered:   cat.Ordered(),
	}
	return array.NewDictionaryArray(dt, indices, values), nil
}

// FromRecord imports an Arrow record as a DataFrame. Dictionary arrays
// with string values become categorical columns; Arrow nulls become null
// rows.
func FromRecord(rec arrow.Record, mem memory.Allocator) (*dataframe.DataFrame, error) {
	df := dataframe.New(mem)
	for i, field := range rec.Schema().Fields() {
		col, err := fromArray(rec.Column(i), mem)
		if err != nil {
			return nil, errors.NewColumn(errors.KindType, "FromRecord", field.Name, err.Error())
		}
		if err := df.AddColumn(field.Name, col); err != nil {
			return nil, err
		}
	}
	return df, nil
}

func fromArray(arr arrow.Array, mem memory.Allocator) (*series.Series, error) {
	switch a := arr.(type) {
	case *array.Int8:
		return fromPrimitive(a, a.Value, mem)
	case *array.Int32:
		return fromPrimitive(a, a.Value, mem)
	case *array.Int64:
		return fromPrimitive(a, a.Value, mem)
	case *array.Uint8:
		return fromPrimitive(a, a.Value, mem)
	case *array.Float32:
		return fromPrimitive(a, a.Value, mem)
	case *array.Float64:
		return fromPrimitive(a, a.Value, mem)
	case *array.Boolean:
		return fromPrimitive(a, a.Value, mem)
	case *array.Dictionary:
		return fromDictionary(a, mem)
	default:
		return nil, errors.Newf(errors.KindNotSupported, "FromRecord", "arrow type %s has no dtype mapping", arr.DataType().Name())
	}
}

func fromPrimitive[T interface {
	int8 | int32 | int64 | uint8 | float32 | float64 | bool
}](arr arrow.Array, value func(int) T, mem memory.Allocator) (*series.Series, error) {
	n := arr.Len()
	values := make([]T, n)
	for i := 0; i < n; i++ {
		if !arr.IsNull(i) {
			values[i] = value(i)
		}
	}
	if arr.NullN() == 0 {
		return series.FromSlice(values, mem), nil
	}
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		valid[i] = arr.IsValid(i)
	}
	return series.FromSliceWithValidity(values, valid, mem)
}

func fromDictionary(arr *array.Dictionary, mem memory.Allocator) (*series.Series, error) {
	values, ok := arr.Dictionary().(*array.String)
	if !ok {
		return nil, errors.Newf(errors.KindNotSupported, "FromRecord",
			"dictionary values of type %s are not categories", arr.Dictionary().DataType().Name())
	}
	categories := make([]string, values.Len())
	for i := range categories {
		categories[i] = values.Value(i)
	}

	codes := make([]int32, arr.Len())
	for i := range codes {
		if arr.IsNull(i) {
			codes[i] = -1
			continue
		}
		codes[i] = int32(arr.GetValueIndex(i))
	}

	dt, ok := arr.DataType().(*arrow.DictionaryType)
	return series.FromCategorical(codes, categories, ok && dt.Ordered, mem)
}
