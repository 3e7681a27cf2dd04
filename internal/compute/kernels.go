package compute

import (
	"math"

	"golang.org/x/exp/constraints"
)

type number interface {
	constraints.Integer | constraints.Float
}

func isFloat[T number]() bool {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

// arithChunk applies a binary arithmetic op over rows [start, stop).
// Integer division by zero writes zero rather than faulting; masked rows
// hold garbage inputs by contract and their outputs are never observed.
func arithChunk[T number](op Op, lhs, rhs, out []T, start, stop int) {
	switch op {
	case OpAdd:
		for i := start; i < stop; i++ {
			out[i] = lhs[i] + rhs[i]
		}
	case OpSub:
		for i := start; i < stop; i++ {
			out[i] = lhs[i] - rhs[i]
		}
	case OpMul:
		for i := start; i < stop; i++ {
			out[i] = lhs[i] * rhs[i]
		}
	case OpDiv:
		if isFloat[T]() {
			for i := start; i < stop; i++ {
				out[i] = lhs[i] / rhs[i]
			}
			return
		}
		for i := start; i < stop; i++ {
			if rhs[i] == 0 {
				out[i] = 0
				continue
			}
			out[i] = lhs[i] / rhs[i]
		}
	case OpFloorDiv:
		if isFloat[T]() {
			for i := start; i < stop; i++ {
				out[i] = T(math.Floor(float64(lhs[i]) / float64(rhs[i])))
			}
			return
		}
		for i := start; i < stop; i++ {
			if rhs[i] == 0 {
				out[i] = 0
				continue
			}
			out[i] = lhs[i] / rhs[i]
		}
	}
}

// compareChunk applies a binary comparison op over rows [start, stop),
// writing 1/0 into the boolean output.
func compareChunk[T number](op Op, lhs, rhs []T, out []uint8, start, stop int) {
	for i := start; i < stop; i++ {
		var hit bool
		switch op {
		case OpEq:
			hit = lhs[i] == rhs[i]
		case OpNe:
			hit = lhs[i] != rhs[i]
		case OpLt:
			hit = lhs[i] < rhs[i]
		case OpLe:
			hit = lhs[i] <= rhs[i]
		case OpGt:
			hit = lhs[i] > rhs[i]
		case OpGe:
			hit = lhs[i] >= rhs[i]
		}
		if hit {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
}

// roundChunk applies ceil/floor over rows [start, stop). Integral dtypes
// round to themselves.
func roundChunk[T number](op Op, in, out []T, start, stop int) {
	if !isFloat[T]() {
		copy(out[start:stop], in[start:stop])
		return
	}
	switch op {
	case OpCeil:
		for i := start; i < stop; i++ {
			out[i] = T(math.Ceil(float64(in[i])))
		}
	case OpFloor:
		for i := start; i < stop; i++ {
			out[i] = T(math.Floor(float64(in[i])))
		}
	}
}

func reduceMin[T number](vals []T, seed T) T {
	out := seed
	for _, v := range vals {
		if v < out {
			out = v
		}
	}
	return out
}

func reduceMax[T number](vals []T, seed T) T {
	out := seed
	for _, v := range vals {
		if v > out {
			out = v
		}
	}
	return out
}

// meanVar computes the mean and population variance in two passes of
// float64 accumulation.
func meanVar[T number](vals []T) (float64, float64) {
	n := float64(len(vals))
	if len(vals) == 0 {
		return math.NaN(), math.NaN()
	}
	var sum float64
	for _, v := range vals {
		sum += float64(v)
	}
	mu := sum / n
	var acc float64
	for _, v := range vals {
		d := float64(v) - mu
		acc += d * d
	}
	return mu, acc / n
}
