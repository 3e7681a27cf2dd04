// Package buffer implements the fixed-capacity typed memory region backing
// every column.
//
// A Buffer tracks a size and a capacity over contiguous storage of one
// element type. Capacity is fixed at construction and never reallocated:
// append and extend grow size within capacity, and slicing produces a
// borrowed view aliasing the parent storage. Views must never be appended
// to; growth always happens on an owned buffer.
package buffer

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/prajaktapitale29/pygdf/internal/dtype"
	"github.com/prajaktapitale29/pygdf/internal/errors"
)

// Element constrains the Go scalar types a Buffer can hold.
type Element interface {
	~int8 | ~int32 | ~int64 | ~uint8 | ~float32 | ~float64 | ~bool
}

// Buffer is a size-tracked, fixed-capacity linear memory region of one
// element type. All elements in [0, size) are defined; [size, capacity)
// is reserved headroom.
type Buffer struct {
	dt       dtype.DType
	data     []byte // capacity * element-size bytes
	size     int
	capacity int
	view     bool
	mem      memory.Allocator
}

// FromEmpty creates an owned buffer with size 0 and the given fixed
// capacity. mem defaults to the Go allocator when nil.
func FromEmpty(dt dtype.DType, capacity int, mem memory.Allocator) *Buffer {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &Buffer{
		dt:       dt,
		data:     mem.Allocate(capacity * dt.Size()),
		capacity: capacity,
		mem:      mem,
	}
}

// Uninitialized creates an owned buffer with size == capacity == n whose
// elements are zeroed and meant to be overwritten by a kernel.
func Uninitialized(dt dtype.DType, n int, mem memory.Allocator) *Buffer {
	b := FromEmpty(dt, n, mem)
	b.size = n
	return b
}

// FromSlice creates an owned buffer holding a copy of values, with
// size == capacity == len(values). The dtype is inferred from T.
func FromSlice[T Element](values []T, mem memory.Allocator) *Buffer {
	b := FromEmpty(dtypeFor[T](), len(values), mem)
	copyIn(b, 0, values)
	b.size = len(values)
	return b
}

// FromBytes creates an owned buffer over a copy of raw element bytes.
// The byte length must be a whole number of elements; a remainder means
// the storage is not a contiguous rank-1 region of dt and fails with a
// layout error.
func FromBytes(dt dtype.DType, raw []byte, mem memory.Allocator) (*Buffer, error) {
	if len(raw)%dt.Size() != 0 {
		return nil, errors.Newf(errors.KindLayout, "FromBytes",
			"%d bytes is not a whole number of %s elements", len(raw), dt.Name())
	}
	b := FromEmpty(dt, len(raw)/dt.Size(), mem)
	copy(b.data, raw)
	b.size = b.capacity
	return b, nil
}

// DType returns the element type of the buffer.
func (b *Buffer) DType() dtype.DType { return b.dt }

// Len returns the number of defined elements.
func (b *Buffer) Len() int { return b.size }

// Cap returns the fixed capacity in elements.
func (b *Buffer) Cap() int { return b.capacity }

// Avail returns the remaining element headroom.
func (b *Buffer) Avail() int { return b.capacity - b.size }

// IsView reports whether the buffer borrows another buffer's storage.
func (b *Buffer) IsView() bool { return b.view }

// Bytes returns the raw bytes of the defined region [0, size). The slice
// aliases the buffer storage.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.size*b.dt.Size()]
}

// At returns the element at index i boxed as its Go scalar type.
// Negative indices wrap from the end; anything outside [0, size) after
// normalization fails with an index error.
func (b *Buffer) At(i int) (any, error) {
	if i < 0 {
		i += b.size
	}
	if i < 0 || i >= b.size {
		return nil, errors.Newf(errors.KindIndex, "At", "index %d out of range [0, %d)", i, b.size)
	}
	switch b.dt.Kind() {
	case dtype.KindBool:
		return raw[uint8](b)[i] != 0, nil
	case dtype.KindUint:
		return raw[uint8](b)[i], nil
	case dtype.KindFloat:
		if b.dt.Size() == 4 {
			return raw[float32](b)[i], nil
		}
		return raw[float64](b)[i], nil
	default:
		switch b.dt.Size() {
		case 1:
			return raw[int8](b)[i], nil
		case 4:
			return raw[int32](b)[i], nil
		default:
			return raw[int64](b)[i], nil
		}
	}
}

// Set overwrites the element at index i, casting the value to the buffer
// dtype. Negative indices wrap from the end.
func (b *Buffer) Set(i int, value any) error {
	if i < 0 {
		i += b.size
	}
	if i < 0 || i >= b.size {
		return errors.Newf(errors.KindIndex, "Set", "index %d out of range [0, %d)", i, b.size)
	}
	f, err := toFloat64(value)
	if err != nil {
		return errors.Wrap(errors.KindType, "Set", err)
	}
	b.store(i, f)
	return nil
}

// Slice returns a borrowed view over [start, stop). The view aliases the
// parent storage and its capacity equals its size, so it can never be
// appended to.
func (b *Buffer) Slice(start, stop int) (*Buffer, error) {
	if start < 0 || stop < start || stop > b.size {
		return nil, errors.Newf(errors.KindIndex, "Slice", "range [%d, %d) out of bounds for size %d", start, stop, b.size)
	}
	es := b.dt.Size()
	return &Buffer{
		dt:       b.dt,
		data:     b.data[start*es : stop*es],
		size:     stop - start,
		capacity: stop - start,
		view:     true,
		mem:      b.mem,
	}, nil
}

// Append writes one element at the current size, casting it to the buffer
// dtype, and advances size by one. Fails with a capacity error when no
// headroom remains; a failed append leaves size unchanged.
func (b *Buffer) Append(value any) error {
	if err := b.sentryGrowable("Append", 1); err != nil {
		return err
	}
	f, err := toFloat64(value)
	if err != nil {
		return errors.Wrap(errors.KindType, "Append", err)
	}
	b.store(b.size, f)
	b.size++
	return nil
}

// Extend writes every element of other starting at the current size,
// casting to the buffer dtype, and advances size by other.Len(). The
// capacity sentry runs before any write, so a failed extend leaves size
// unchanged.
func (b *Buffer) Extend(other *Buffer) error {
	if err := b.sentryGrowable("Extend", other.size); err != nil {
		return err
	}
	if b.dt.Equal(other.dt) {
		copy(b.data[b.size*b.dt.Size():], other.Bytes())
		b.size += other.size
		return nil
	}
	for i := range other.size {
		v, err := other.At(i)
		if err != nil {
			return err
		}
		f, err := toFloat64(v)
		if err != nil {
			return errors.Wrap(errors.KindType, "Extend", err)
		}
		b.store(b.size+i, f)
	}
	b.size += other.size
	return nil
}

// ExtendSlice appends every element of values to b, casting to the buffer
// dtype. The capacity sentry runs before any write.
func ExtendSlice[T Element](b *Buffer, values []T) error {
	if err := b.sentryGrowable("Extend", len(values)); err != nil {
		return err
	}
	if b.dt.Equal(dtypeFor[T]()) {
		copyIn(b, b.size, values)
	} else {
		for i, v := range values {
			f, err := toFloat64(v)
			if err != nil {
				return errors.Wrap(errors.KindType, "Extend", err)
			}
			b.store(b.size+i, f)
		}
	}
	b.size += len(values)
	return nil
}

// Astype returns b itself when dt is unchanged, and otherwise an owned
// buffer of the same length with every element cast to dt.
func (b *Buffer) Astype(dt dtype.DType) (*Buffer, error) {
	if b.dt.Equal(dt) {
		return b, nil
	}
	out := FromEmpty(dt, b.size, b.mem)
	for i := range b.size {
		v, err := b.At(i)
		if err != nil {
			return nil, err
		}
		f, err := toFloat64(v)
		if err != nil {
			return nil, errors.Wrap(errors.KindType, "Astype", err)
		}
		out.store(i, f)
	}
	out.size = b.size
	return out, nil
}

// String implements fmt.Stringer.
func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer[%s; size=%d cap=%d view=%t]", b.dt.Name(), b.size, b.capacity, b.view)
}

// Values returns the defined elements of b as a typed slice sharing b's
// storage. T must match the buffer dtype; a mismatch is a programming
// error in kernel dispatch and panics.
func Values[T Element](b *Buffer) []T {
	if !b.dt.Equal(dtypeFor[T]()) {
		panic(fmt.Sprintf("buffer: dtype mismatch: buffer holds %s", b.dt.Name()))
	}
	return raw[T](b)[:b.size]
}

func (b *Buffer) sentryGrowable(op string, needed int) error {
	if b.view {
		return errors.New(errors.KindNotSupported, op, "buffer is a borrowed view; growth requires an owned buffer")
	}
	if needed > b.Avail() {
		return errors.Newf(errors.KindCapacity, op,
			"insufficient space in buffer: need %d, have %d", needed, b.Avail())
	}
	return nil
}

// store writes the float64-widened value at element index i, narrowing to
// the buffer dtype. Only used on cross-dtype writes; same-dtype paths copy
// bytes losslessly.
func (b *Buffer) store(i int, f float64) {
	switch b.dt.Kind() {
	case dtype.KindBool:
		var v uint8
		if f != 0 {
			v = 1
		}
		raw[uint8](b)[i] = v
	case dtype.KindUint:
		raw[uint8](b)[i] = uint8(f)
	case dtype.KindFloat:
		if b.dt.Size() == 4 {
			raw[float32](b)[i] = float32(f)
		} else {
			raw[float64](b)[i] = f
		}
	default:
		switch b.dt.Size() {
		case 1:
			raw[int8](b)[i] = int8(f)
		case 4:
			raw[int32](b)[i] = int32(f)
		default:
			raw[int64](b)[i] = int64(f)
		}
	}
}

func raw[T Element](b *Buffer) []T {
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b.data[0])), b.capacity)
}

func copyIn[T Element](b *Buffer, at int, values []T) {
	if _, ok := any(values).([]bool); ok {
		dst := raw[uint8](b)
		for i, v := range values {
			var e uint8
			if any(v).(bool) {
				e = 1
			}
			dst[at+i] = e
		}
		return
	}
	copy(raw[T](b)[at:], values)
}

func dtypeFor[T Element]() dtype.DType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return dtype.Int8
	case int32:
		return dtype.Int32
	case int64:
		return dtype.Int64
	case uint8:
		return dtype.Uint8
	case float32:
		return dtype.Float32
	case float64:
		return dtype.Float64
	case bool:
		return dtype.Bool
	default:
		panic(fmt.Sprintf("buffer: unsupported element type %T", zero))
	}
}

func toFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case nil:
		return math.NaN(), nil
	default:
		return 0, fmt.Errorf("cannot cast %T to a buffer element", v)
	}
}
