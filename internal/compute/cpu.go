package compute

import (
	"math"
	"math/bits"
	"sync"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/prajaktapitale29/pygdf/internal/buffer"
	"github.com/prajaktapitale29/pygdf/internal/config"
	"github.com/prajaktapitale29/pygdf/internal/dtype"
	"github.com/prajaktapitale29/pygdf/internal/errors"
	"github.com/prajaktapitale29/pygdf/internal/logging"
	"github.com/prajaktapitale29/pygdf/internal/parallel"
)

// CPU is the default compute backend. Kernels run on typed views of the
// input buffers and fan out to a worker pool above the configured row
// threshold.
type CPU struct {
	cfg  config.Config
	pool *parallel.WorkerPool
	mem  memory.Allocator
}

// NewCPU creates a CPU backend. mem defaults to the Go allocator when nil.
func NewCPU(cfg config.Config, mem memory.Allocator) *CPU {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &CPU{
		cfg:  cfg.WithDefaults(),
		pool: parallel.NewWorkerPool(cfg.WorkerPoolSize),
		mem:  mem,
	}
}

var (
	defaultOnce    sync.Once
	defaultBackend *CPU
)

// Default returns the process-wide CPU backend built from the global
// configuration.
func Default() Backend {
	defaultOnce.Do(func() {
		defaultBackend = NewCPU(config.GetGlobalConfig(), nil)
	})
	return defaultBackend
}

// BinaryOp implements Backend.
func (c *CPU) BinaryOp(op Op, lhs, lmask, rhs, rmask, out, outMask *buffer.Buffer) (int, error) {
	n := lhs.Len()
	if rhs.Len() != n || out.Len() != n {
		return 0, errors.Newf(errors.KindSizeMismatch, "BinaryOp",
			"operand sizes differ: lhs=%d rhs=%d out=%d", n, rhs.Len(), out.Len())
	}
	if !lhs.DType().Equal(rhs.DType()) {
		return 0, errors.Newf(errors.KindType, "BinaryOp",
			"operand dtypes differ: %s vs %s", lhs.DType().Name(), rhs.DType().Name())
	}
	logging.L().Debug("binary op",
		zap.String("op", op.String()),
		zap.String("dtype", lhs.DType().Name()),
		zap.Int("rows", n))

	run := func(start, stop int) error {
		return binaryRange(op, lhs, rhs, out, start, stop)
	}
	if err := c.execute(n, run); err != nil {
		return 0, err
	}

	if outMask == nil {
		return 0, nil
	}
	return c.intersectMasks(lmask, rmask, outMask, n), nil
}

// UnaryOp implements Backend.
func (c *CPU) UnaryOp(op Op, in, out *buffer.Buffer) error {
	n := in.Len()
	if out.Len() != n {
		return errors.Newf(errors.KindSizeMismatch, "UnaryOp",
			"operand sizes differ: in=%d out=%d", n, out.Len())
	}
	logging.L().Debug("unary op",
		zap.String("op", op.String()),
		zap.String("dtype", in.DType().Name()),
		zap.Int("rows", n))
	return c.execute(n, func(start, stop int) error {
		return unaryRange(op, in, out, start, stop)
	})
}

// execute runs a range kernel either inline or chunked over the pool.
func (c *CPU) execute(n int, run func(start, stop int) error) error {
	if n < c.cfg.ParallelThreshold {
		return run(0, n)
	}
	chunks := parallel.Chunks(n, c.cfg.ChunkSize)
	errs := parallel.ProcessIndexed(c.pool, chunks, func(_ int, ch parallel.Chunk) error {
		return run(ch.Start, ch.Stop)
	})
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// intersectMasks writes the validity intersection of lmask and rmask into
// outMask and returns the null count over n rows. A nil input mask means
// all rows valid; so does any byte past the end of a short mask.
func (c *CPU) intersectMasks(lmask, rmask, outMask *buffer.Buffer, n int) int {
	out := outMask.Bytes()
	nbytes := buffer.CalcChunkSize(n, dtype.MaskBitsize)
	var lb, rb []byte
	if lmask != nil {
		lb = lmask.Bytes()
	}
	if rmask != nil {
		rb = rmask.Bytes()
	}
	byteAt := func(m []byte, i int) byte {
		if m == nil || i >= len(m) {
			return 0xFF
		}
		return m[i]
	}
	for i := 0; i < nbytes && i < len(out); i++ {
		out[i] = byteAt(lb, i) & byteAt(rb, i)
	}
	return n - c.CountSetBits(outMask, n)
}

// CountSetBits implements Backend. Bits past the end of a short mask
// count as set (valid).
func (c *CPU) CountSetBits(mask *buffer.Buffer, nbits int) int {
	bytes := mask.Bytes()
	count := 0
	full := nbits / dtype.MaskBitsize
	for i := 0; i < full; i++ {
		if i >= len(bytes) {
			count += dtype.MaskBitsize * (full - i)
			break
		}
		count += bits.OnesCount8(bytes[i])
	}
	if rem := nbits % dtype.MaskBitsize; rem != 0 {
		if full >= len(bytes) {
			count += rem
		} else {
			count += bits.OnesCount8(bytes[full] & (1<<rem - 1))
		}
	}
	return count
}

// CompactDense implements Backend.
func (c *CPU) CompactDense(data, mask *buffer.Buffer) (int, *buffer.Buffer, error) {
	n := data.Len()
	out := buffer.FromEmpty(data.DType(), n, c.mem)
	for i := 0; i < n; i++ {
		if !buffer.MaskGet(mask, i) {
			continue
		}
		elem, err := data.Slice(i, i+1)
		if err != nil {
			return 0, nil, err
		}
		if err := out.Extend(elem); err != nil {
			return 0, nil, err
		}
	}
	return out.Len(), out, nil
}

// FillNull implements Backend.
func (c *CPU) FillNull(data, mask *buffer.Buffer, value any) (*buffer.Buffer, error) {
	out, err := buffer.FromBytes(data.DType(), data.Bytes(), c.mem)
	if err != nil {
		return nil, err
	}
	for i := 0; i < out.Len(); i++ {
		if buffer.MaskGet(mask, i) {
			continue
		}
		if err := out.Set(i, value); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReduceMin implements Backend.
func (c *CPU) ReduceMin(data *buffer.Buffer) (any, error) {
	switch dt := data.DType(); {
	case dt.Equal(dtype.Int8):
		return reduceMin(buffer.Values[int8](data), math.MaxInt8), nil
	case dt.Equal(dtype.Int32):
		return reduceMin(buffer.Values[int32](data), math.MaxInt32), nil
	case dt.Equal(dtype.Int64):
		return reduceMin(buffer.Values[int64](data), math.MaxInt64), nil
	case dt.Equal(dtype.Uint8):
		return reduceMin(buffer.Values[uint8](data), math.MaxUint8), nil
	case dt.Equal(dtype.Float32):
		return reduceMin(buffer.Values[float32](data), math.MaxFloat32), nil
	case dt.Equal(dtype.Float64):
		return reduceMin(buffer.Values[float64](data), math.MaxFloat64), nil
	default:
		return nil, errors.Newf(errors.KindNotSupported, "ReduceMin", "dtype %s", dt.Name())
	}
}

// ReduceMax implements Backend.
func (c *CPU) ReduceMax(data *buffer.Buffer) (any, error) {
	switch dt := data.DType(); {
	case dt.Equal(dtype.Int8):
		return reduceMax(buffer.Values[int8](data), math.MinInt8), nil
	case dt.Equal(dtype.Int32):
		return reduceMax(buffer.Values[int32](data), math.MinInt32), nil
	case dt.Equal(dtype.Int64):
		return reduceMax(buffer.Values[int64](data), math.MinInt64), nil
	case dt.Equal(dtype.Uint8):
		return reduceMax(buffer.Values[uint8](data), 0), nil
	case dt.Equal(dtype.Float32):
		return reduceMax(buffer.Values[float32](data), -math.MaxFloat32), nil
	case dt.Equal(dtype.Float64):
		return reduceMax(buffer.Values[float64](data), -math.MaxFloat64), nil
	default:
		return nil, errors.Newf(errors.KindNotSupported, "ReduceMax", "dtype %s", dt.Name())
	}
}

// ReduceMeanVar implements Backend.
func (c *CPU) ReduceMeanVar(data *buffer.Buffer) (float64, float64, error) {
	switch dt := data.DType(); {
	case dt.Equal(dtype.Int8):
		mu, v := meanVar(buffer.Values[int8](data))
		return mu, v, nil
	case dt.Equal(dtype.Int32):
		mu, v := meanVar(buffer.Values[int32](data))
		return mu, v, nil
	case dt.Equal(dtype.Int64):
		mu, v := meanVar(buffer.Values[int64](data))
		return mu, v, nil
	case dt.Equal(dtype.Uint8):
		mu, v := meanVar(buffer.Values[uint8](data))
		return mu, v, nil
	case dt.Equal(dtype.Float32):
		mu, v := meanVar(buffer.Values[float32](data))
		return mu, v, nil
	case dt.Equal(dtype.Float64):
		mu, v := meanVar(buffer.Values[float64](data))
		return mu, v, nil
	default:
		return 0, 0, errors.Newf(errors.KindNotSupported, "ReduceMeanVar", "dtype %s", dt.Name())
	}
}

// SampleUnique implements Backend. Distinct values are tracked by hashing
// raw element bytes, so the scan stops as soon as k distinct values are
// found.
func (c *CPU) SampleUnique(data *buffer.Buffer, k int) (*buffer.Buffer, error) {
	out := buffer.FromEmpty(data.DType(), k, c.mem)
	if k <= 0 {
		return out, nil
	}
	es := data.DType().Size()
	raw := data.Bytes()
	seen := make(map[uint64]struct{}, k)
	for i := 0; i < data.Len() && out.Len() < k; i++ {
		h := xxhash.Sum64(raw[i*es : (i+1)*es])
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		elem, err := data.Slice(i, i+1)
		if err != nil {
			return nil, err
		}
		if err := out.Extend(elem); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EqualConstant implements Backend.
func (c *CPU) EqualConstant(data *buffer.Buffer, constant float64, out dtype.DType) (*buffer.Buffer, error) {
	res := buffer.Uninitialized(out, data.Len(), c.mem)
	for i := 0; i < data.Len(); i++ {
		v, err := data.At(i)
		if err != nil {
			return nil, err
		}
		hit := 0
		if scalarToFloat(v) == constant {
			hit = 1
		}
		if err := res.Set(i, hit); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// LinearRescale implements Backend.
func (c *CPU) LinearRescale(data *buffer.Buffer, lo, hi float64) (*buffer.Buffer, error) {
	out := buffer.Uninitialized(dtype.Float64, data.Len(), c.mem)
	span := hi - lo
	vals := buffer.Values[float64](out)
	for i := 0; i < data.Len(); i++ {
		v, err := data.At(i)
		if err != nil {
			return nil, err
		}
		vals[i] = (scalarToFloat(v) - lo) / span
	}
	return out, nil
}

// Cast implements Backend.
func (c *CPU) Cast(data *buffer.Buffer, target dtype.DType) (*buffer.Buffer, error) {
	return data.Astype(target)
}

func scalarToFloat(v any) float64 {
	switch x := v.(type) {
	case int8:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint8:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}
