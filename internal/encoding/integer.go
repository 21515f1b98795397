package encoding

import (
	"fmt"
	"math"

	"github.com/seismic-go/mseedpack/endian"
	"github.com/seismic-go/mseedpack/errs"
)

// FixedResult reports one fixed-width packing pass (integer, float, or
// text): how many payload bytes and samples were written.
type FixedResult struct {
	BytesWritten    int
	SamplesConsumed int
}

// PackInt16 writes the leading run of samples into dst as 16-bit
// integers in the given word order, up to floor(len(dst)/2) samples.
// A sample outside the int16 range is an error, and the returned
// result then counts no bytes and no samples. Unused tail bytes of dst
// are zeroed.
func PackInt16(dst []byte, samples []int32, order endian.EndianEngine) (FixedResult, error) {
	n := min(len(dst)/2, len(samples))
	for i, s := range samples[:n] {
		if s < math.MinInt16 || s > math.MaxInt16 {
			return FixedResult{}, fmt.Errorf("%w: %d exceeds 16 bits", errs.ErrSampleOverflow, s)
		}
		order.PutUint16(dst[i*2:i*2+2], uint16(int16(s)))
	}
	zeroTail(dst, n*2)

	return FixedResult{BytesWritten: n * 2, SamplesConsumed: n}, nil
}

// PackInt24 writes the leading run of samples as three bytes each in
// the given word order, up to floor(len(dst)/3) samples. A sample
// outside the signed 24-bit range is an error.
func PackInt24(dst []byte, samples []int32, order endian.EndianEngine) (FixedResult, error) {
	const lo, hi = -1 << 23, 1<<23 - 1

	n := min(len(dst)/3, len(samples))

	// The three low-order bytes of a 32-bit word sit at positions 1..3
	// in big-endian order and 0..2 in little-endian.
	var probe [2]byte
	order.PutUint16(probe[:], 1)
	first := 1
	if probe[0] == 1 {
		first = 0
	}

	var word [4]byte
	for i, s := range samples[:n] {
		if s < lo || s > hi {
			return FixedResult{}, fmt.Errorf("%w: %d exceeds 24 bits", errs.ErrSampleOverflow, s)
		}
		order.PutUint32(word[:], uint32(s))
		copy(dst[i*3:i*3+3], word[first:first+3])
	}
	zeroTail(dst, n*3)

	return FixedResult{BytesWritten: n * 3, SamplesConsumed: n}, nil
}

// PackInt32 writes the leading run of samples as 32-bit integers in the
// given word order, up to floor(len(dst)/4) samples. Every int32 fits,
// so PackInt32 cannot fail.
func PackInt32(dst []byte, samples []int32, order endian.EndianEngine) (FixedResult, error) {
	n := min(len(dst)/4, len(samples))
	for i, s := range samples[:n] {
		order.PutUint32(dst[i*4:i*4+4], uint32(s))
	}
	zeroTail(dst, n*4)

	return FixedResult{BytesWritten: n * 4, SamplesConsumed: n}, nil
}

// zeroTail pads dst from offset to its end, the record-padding behavior
// qlib2's pack routines apply when the final record is not full.
func zeroTail(dst []byte, from int) {
	for i := from; i < len(dst); i++ {
		dst[i] = 0
	}
}
