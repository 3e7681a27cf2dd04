package buffer

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/prajaktapitale29/pygdf/internal/dtype"
)

// Null-mask convention: bit idx%8 of byte idx/8 is 1 when row idx is
// valid and 0 when it is null. A mask buffer holds CalcChunkSize(rows, 8)
// uint8 elements.

// CalcChunkSize returns the number of bitsize-bit elements needed to hold
// n bits. With bitsize 8 this is the mask byte length for n rows, and it
// is also used for the byte-granularity mask offsets when slicing a
// masked column.
func CalcChunkSize(n, bitsize int) int {
	return (n + bitsize - 1) / bitsize
}

// BoolmaskToBitmask packs a dense validity slice into a mask buffer.
func BoolmaskToBitmask(valid []bool, mem memory.Allocator) *Buffer {
	b := FromEmpty(dtype.Mask, CalcChunkSize(len(valid), dtype.MaskBitsize), mem)
	b.size = b.capacity
	bytes := raw[uint8](b)
	for i, v := range valid {
		if v {
			bytes[i/dtype.MaskBitsize] |= 1 << (i % dtype.MaskBitsize)
		}
	}
	return b
}

// MaskGet reads validity bit idx from a mask buffer. Bits past the end of
// the mask read as valid: byte-granularity mask slicing can leave a mask
// one byte short of its column, and the missing tail means "no nulls
// recorded there".
func MaskGet(mask *Buffer, idx int) bool {
	bytes := mask.Bytes()
	if idx/dtype.MaskBitsize >= len(bytes) {
		return true
	}
	return bytes[idx/dtype.MaskBitsize]&(1<<(idx%dtype.MaskBitsize)) != 0
}

// MaskSetBit sets or clears validity bit idx in packed mask bytes.
func MaskSetBit(mask []byte, idx int, valid bool) {
	if valid {
		mask[idx/dtype.MaskBitsize] |= 1 << (idx % dtype.MaskBitsize)
	} else {
		mask[idx/dtype.MaskBitsize] &^= 1 << (idx % dtype.MaskBitsize)
	}
}
