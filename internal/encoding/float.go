package encoding

import (
	"math"

	"github.com/seismic-go/mseedpack/endian"
)

// PackFloat32 writes the leading run of samples into dst as IEEE-754
// 32-bit values in the given word order, up to floor(len(dst)/4)
// samples. Every float32 is representable, so there is no failure
// path. Unused tail bytes of dst are zeroed.
func PackFloat32(dst []byte, samples []float32, order endian.EndianEngine) FixedResult {
	n := min(len(dst)/4, len(samples))
	for i, s := range samples[:n] {
		order.PutUint32(dst[i*4:i*4+4], math.Float32bits(s))
	}
	zeroTail(dst, n*4)

	return FixedResult{BytesWritten: n * 4, SamplesConsumed: n}
}

// PackFloat64 writes the leading run of samples into dst as IEEE-754
// 64-bit values in the given word order, up to floor(len(dst)/8)
// samples.
func PackFloat64(dst []byte, samples []float64, order endian.EndianEngine) FixedResult {
	n := min(len(dst)/8, len(samples))
	for i, s := range samples[:n] {
		order.PutUint64(dst[i*8:i*8+8], math.Float64bits(s))
	}
	zeroTail(dst, n*8)

	return FixedResult{BytesWritten: n * 8, SamplesConsumed: n}
}
