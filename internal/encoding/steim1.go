package encoding

import (
	"github.com/seismic-go/mseedpack/endian"
	"github.com/seismic-go/mseedpack/internal/pool"
)

// steim1Buckets lists Steim-1's three nibble shapes, greediest (most
// diffs consumed per word) first: four 8-bit diffs, two 16-bit diffs,
// one full 32-bit diff. The 32-bit bucket always fits any saturated
// int32 difference, so Steim-1 packing never fails to represent a
// value.
var steim1Buckets = []steimBucket{
	{nibble: 0b01, width: 8, count: 4},
	{nibble: 0b10, width: 16, count: 2},
	{nibble: 0b11, width: 32, count: 1},
}

// PackSteim1 Steim-1-encodes the leading run of samples into dst, which
// must be a non-zero multiple of FrameSize bytes. order governs the
// byte order of every emitted word (the trace's data_wordorder).
//
// diffs, when non-nil, must hold the precomputed first differences for
// samples (same length); when nil, they are derived from samples and
// xm1 on a pooled scratch slice. A caller packing one stream across
// several records computes diffs once and passes successive tails, so
// the per-record windows stay mutually consistent.
func PackSteim1(dst []byte, samples, diffs []int32, xm1 int32, order endian.EndianEngine) (SteimResult, error) {
	if diffs == nil {
		buf, release := pool.GetDiffSlice(len(samples))
		defer release()
		diffs = SaturatingDiff(samples, xm1, buf)
	}

	return packSteim(dst, samples, diffs, steim1Buckets, order)
}
