package encoding

import "math"

// SaturatingDiff fills dst[i] with the 32-bit-saturated difference
// between consecutive samples: dst[0] = samples[0] - xm1, dst[i] =
// samples[i] - samples[i-1] for i >= 1. Differences are computed in
// 64-bit arithmetic and clamped into [math.MinInt32, math.MaxInt32]
// before truncation, so an overflowing difference is represented
// honestly rather than silently wrapped and the encoder can reject it.
//
// dst must have the same length as samples; callers typically obtain
// it from internal/pool.GetDiffSlice to avoid an allocation per call.
func SaturatingDiff(samples []int32, xm1 int32, dst []int32) []int32 {
	prev := int64(xm1)
	for i, s := range samples {
		d := int64(s) - prev
		dst[i] = saturate32(d)
		prev = int64(s)
	}

	return dst[:len(samples)]
}

func saturate32(d int64) int32 {
	switch {
	case d > math.MaxInt32:
		return math.MaxInt32
	case d < math.MinInt32:
		return math.MinInt32
	default:
		return int32(d)
	}
}
