// Package series implements the typed, optionally-nullable column built
// from a data buffer and an optional packed null mask.
//
// A Series is immutable in practice: nearly every operation returns a new
// Series sharing unmodified sub-buffers, built by copy-on-construct with
// selective field replacement. The only in-place mutation in the system
// is buffer growth, which always happens on freshly allocated storage.
package series

import (
	"sync"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/prajaktapitale29/pygdf/internal/buffer"
	"github.com/prajaktapitale29/pygdf/internal/compute"
	"github.com/prajaktapitale29/pygdf/internal/dtype"
	"github.com/prajaktapitale29/pygdf/internal/errors"
)

// Series is a typed column: a data buffer, an optional null mask, a
// cached null count and a dtype-specific element strategy.
type Series struct {
	size      int
	dt        dtype.DType
	data      *buffer.Buffer
	mask      *buffer.Buffer
	nullCount int
	impl      strategy
	mem       memory.Allocator
}

// Compute backend used by all series operations. Swappable so the column
// layer stays decoupled from the kernel implementation.
var (
	backendMu sync.RWMutex
	backend   compute.Backend
)

// SetBackend installs a compute backend for all series operations.
// Passing nil restores the default CPU backend.
func SetBackend(b compute.Backend) {
	backendMu.Lock()
	defer backendMu.Unlock()
	backend = b
}

// Backend returns the active compute backend.
func Backend() compute.Backend {
	backendMu.RLock()
	b := backend
	backendMu.RUnlock()
	if b == nil {
		return compute.Default()
	}
	return b
}

// fields is the constructor-argument snapshot used by copy-on-construct:
// take the current fields, override some, rebuild.
type fields struct {
	size      int
	dt        dtype.DType
	data      *buffer.Buffer
	mask      *buffer.Buffer
	nullCount int // -1 means recompute from the mask
	impl      strategy
}

// autoNullCount requests null-count recomputation during construction.
const autoNullCount = -1

// construct builds a Series from a field snapshot, normalizing the dtype,
// defaulting the strategy, and recomputing the null count from the mask
// when asked to.
func construct(f fields, mem memory.Allocator) (*Series, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	dt, err := dtype.Normalize(f.dt)
	if err != nil {
		return nil, errors.Wrap(errors.KindType, "New", err)
	}

	impl := f.impl
	if impl == nil {
		if ct, ok := dt.(*dtype.Categorical); ok {
			impl = categoricalStrategy{ct: ct}
		} else {
			impl = numericalStrategy{dt: dt}
		}
	}

	nullCount := f.nullCount
	if nullCount == autoNullCount {
		if f.mask != nil {
			nullCount = f.size - Backend().CountSetBits(f.mask, f.size)
		} else {
			nullCount = 0
		}
	}

	return &Series{
		size:      f.size,
		dt:        dt,
		data:      f.data,
		mask:      f.mask,
		nullCount: nullCount,
		impl:      impl,
		mem:       mem,
	}, nil
}

// fields returns the copy-on-construct snapshot of s.
func (s *Series) fields() fields {
	return fields{
		size:      s.size,
		dt:        s.dt,
		data:      s.data,
		mask:      s.mask,
		nullCount: s.nullCount,
		impl:      s.impl,
	}
}

// FromSlice creates a Series from a Go slice, copying the values.
func FromSlice[T buffer.Element](values []T, mem memory.Allocator) *Series {
	buf := buffer.FromSlice(values, mem)
	s, err := FromBuffer(buf)
	if err != nil {
		// The buffer dtype is always a known primitive here.
		panic(err)
	}
	return s
}

// FromBuffer creates a mask-free Series wrapping an existing buffer.
func FromBuffer(buf *buffer.Buffer) (*Series, error) {
	return construct(fields{
		size: buf.Len(),
		dt:   buf.DType(),
		data: buf,
	}, nil)
}

// FromMasked creates a Series over data with a packed null mask.
// nullCount may be autoNullCount-style negative to compute it from the
// mask.
func FromMasked(data, mask *buffer.Buffer, nullCount int) (*Series, error) {
	s, err := FromBuffer(data)
	if err != nil {
		return nil, err
	}
	return s.SetMask(mask, nullCount)
}

// FromSliceWithValidity creates a Series from values plus a dense
// validity slice, packing it into a bitmask.
func FromSliceWithValidity[T buffer.Element](values []T, valid []bool, mem memory.Allocator) (*Series, error) {
	if len(valid) != len(values) {
		return nil, errors.Newf(errors.KindSizeMismatch, "New",
			"validity length %d does not match value length %d", len(valid), len(values))
	}
	return FromMasked(buffer.FromSlice(values, mem), buffer.BoolmaskToBitmask(valid, mem), autoNullCount)
}

// FromCategorical creates a categorical Series from integer codes and a
// category list. Code -1 marks a null row; the validity mask is derived
// from it.
func FromCategorical(codes []int32, categories []string, ordered bool, mem memory.Allocator) (*Series, error) {
	ct, err := dtype.NewCategorical(categories, dtype.Int32, ordered)
	if err != nil {
		return nil, errors.Wrap(errors.KindType, "FromCategorical", err)
	}

	f := fields{
		size: len(codes),
		dt:   ct,
		data: buffer.FromSlice(codes, mem),
		impl: categoricalStrategy{ct: ct},
	}

	nulls := 0
	valid := make([]bool, len(codes))
	for i, code := range codes {
		valid[i] = code != -1
		if code == -1 {
			nulls++
		}
	}
	if nulls > 0 {
		f.mask = buffer.BoolmaskToBitmask(valid, mem)
		f.nullCount = nulls
	}
	return construct(f, mem)
}

// FromAny coerces a column-like value into a Series. Supported inputs are
// *Series (returned as-is), *buffer.Buffer, and slices of the supported
// element types.
func FromAny(v any, mem memory.Allocator) (*Series, error) {
	switch x := v.(type) {
	case *Series:
		return x, nil
	case *buffer.Buffer:
		return FromBuffer(x)
	case []int8:
		return FromSlice(x, mem), nil
	case []int32:
		return FromSlice(x, mem), nil
	case []int64:
		return FromSlice(x, mem), nil
	case []int:
		conv := make([]int64, len(x))
		for i, e := range x {
			conv[i] = int64(e)
		}
		return FromSlice(conv, mem), nil
	case []uint8:
		return FromSlice(x, mem), nil
	case []float32:
		return FromSlice(x, mem), nil
	case []float64:
		return FromSlice(x, mem), nil
	case []bool:
		return FromSlice(x, mem), nil
	default:
		return nil, errors.Newf(errors.KindType, "FromAny", "cannot coerce %T into a Series", v)
	}
}

// Len returns the size of the Series including null values.
func (s *Series) Len() int { return s.size }

// DType returns the dtype of the Series.
func (s *Series) DType() dtype.DType { return s.dt }

// Data returns the data buffer.
func (s *Series) Data() *buffer.Buffer { return s.data }

// NullCount returns the cached number of null values.
func (s *Series) NullCount() int { return s.nullCount }

// HasNullMask reports whether a null mask is present.
func (s *Series) HasNullMask() bool { return s.mask != nil }

// NullMask returns the mask buffer, failing when the Series has none.
func (s *Series) NullMask() (*buffer.Buffer, error) {
	if s.mask == nil {
		return nil, errors.New(errors.KindInvalidValue, "NullMask", "series has no null mask")
	}
	return s.mask, nil
}

// Cat returns the categorical accessor; non-categorical series fail with
// a type error.
func (s *Series) Cat() (*CatAccessor, error) {
	return s.impl.cat(s)
}

// SetMask returns a new Series with mask replacing any prior mask. The
// mask element type must be a single byte wide. A negative nullCount
// recomputes the count from the mask; a non-negative one is cached as
// given without validation.
func (s *Series) SetMask(mask *buffer.Buffer, nullCount int) (*Series, error) {
	if dt := mask.DType(); !dt.Equal(dtype.Uint8) && !dt.Equal(dtype.Int8) {
		return nil, errors.Newf(errors.KindType, "SetMask", "mask must be of byte; but got %s", dt.Name())
	}
	f := s.fields()
	f.mask = mask
	if nullCount < 0 {
		nullCount = autoNullCount
	}
	f.nullCount = nullCount
	return construct(f, s.mem)
}

// At returns the element at row i cast to its host representation, or nil
// when the row is null. Negative indices wrap from the end once; anything
// outside [0, size) after normalization fails with an index error.
func (s *Series) At(i int) (any, error) {
	if i < 0 {
		i += s.size
	}
	if i < 0 || i >= s.size {
		return nil, errors.Newf(errors.KindIndex, "At", "index %d out of range [0, %d)", i, s.size)
	}
	if s.mask != nil && !buffer.MaskGet(s.mask, i) {
		return nil, nil
	}
	return s.data.At(i)
}

// Slice returns a new Series over rows [start, stop). Negative bounds
// wrap from the end and are clamped to the column. When nulls are
// present the mask sub-range is derived at byte granularity —
// CalcChunkSize(start) to CalcChunkSize(stop) — which is only bit-exact
// for starts that are multiples of eight; that approximation is part of
// the slicing contract.
func (s *Series) Slice(start, stop int) (*Series, error) {
	start, stop = s.normalizeRange(start, stop)

	subdata, err := s.data.Slice(start, stop)
	if err != nil {
		return nil, err
	}

	f := s.fields()
	f.size = stop - start
	f.data = subdata
	f.mask = nil
	f.nullCount = 0

	if s.nullCount > 0 {
		mstart := buffer.CalcChunkSize(start, dtype.MaskBitsize)
		mstop := buffer.CalcChunkSize(stop, dtype.MaskBitsize)
		if mstop > s.mask.Len() {
			mstop = s.mask.Len()
		}
		if mstart > mstop {
			mstart = mstop
		}
		submask, err := s.mask.Slice(mstart, mstop)
		if err != nil {
			return nil, err
		}
		f.mask = submask
		f.nullCount = autoNullCount
	}
	return construct(f, s.mem)
}

func (s *Series) normalizeRange(start, stop int) (int, int) {
	if start < 0 {
		start += s.size
	}
	if stop < 0 {
		stop += s.size
	}
	if start < 0 {
		start = 0
	}
	if stop > s.size {
		stop = s.size
	}
	if stop < start {
		stop = start
	}
	return start, stop
}

// Append returns a new Series holding the rows of s followed by the rows
// of other (coerced through FromAny). The result wraps fresh storage
// sized to the combined length; null masks from either operand are not
// carried over.
func (s *Series) Append(other any) (*Series, error) {
	o, err := FromAny(other, s.mem)
	if err != nil {
		return nil, err
	}
	newbuf := buffer.FromEmpty(s.data.DType(), s.size+o.size, s.mem)
	for _, src := range []*buffer.Buffer{s.data, o.data} {
		if err := newbuf.Extend(src); err != nil {
			return nil, err
		}
	}
	return FromBuffer(newbuf)
}
