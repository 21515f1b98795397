package encoding

import (
	"github.com/seismic-go/mseedpack/endian"
	"github.com/seismic-go/mseedpack/internal/pool"
)

// steim2Buckets lists Steim-2's seven nibble/dnib shapes, greediest
// first, per the SEED manual's Steim-2 word layout: nibble 01 alone
// means four 8-bit diffs; nibble 10 selects the wide shapes (one
// 30-bit, two 15-bit, three 10-bit) via the word's own top two bits;
// nibble 11 selects the narrow shapes (five 6-bit, six 5-bit, seven
// 4-bit) the same way. The widest bucket holds only 30 bits, which is
// what lets Steim-2 reject a saturated difference where Steim-1
// cannot.
var steim2Buckets = []steimBucket{
	{nibble: 0b11, dnib: 0b10, hasDnib: true, width: 4, count: 7},
	{nibble: 0b11, dnib: 0b01, hasDnib: true, width: 5, count: 6},
	{nibble: 0b11, dnib: 0b00, hasDnib: true, width: 6, count: 5},
	{nibble: 0b01, width: 8, count: 4},
	{nibble: 0b10, dnib: 0b11, hasDnib: true, width: 10, count: 3},
	{nibble: 0b10, dnib: 0b10, hasDnib: true, width: 15, count: 2},
	{nibble: 0b10, dnib: 0b01, hasDnib: true, width: 30, count: 1},
}

// PackSteim2 Steim-2-encodes the leading run of samples into dst, which
// must be a non-zero multiple of FrameSize bytes. order governs the
// byte order of every emitted word.
//
// diffs follows the same contract as in PackSteim1: precomputed first
// differences when non-nil, derived from samples and xm1 otherwise.
func PackSteim2(dst []byte, samples, diffs []int32, xm1 int32, order endian.EndianEngine) (SteimResult, error) {
	if diffs == nil {
		buf, release := pool.GetDiffSlice(len(samples))
		defer release()
		diffs = SaturatingDiff(samples, xm1, buf)
	}

	return packSteim(dst, samples, diffs, steim2Buckets, order)
}
