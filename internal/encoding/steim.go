package encoding

import (
	"fmt"

	"github.com/seismic-go/mseedpack/endian"
	"github.com/seismic-go/mseedpack/errs"
)

// wordsPerFrame and FrameSize are the Steim frame geometry constants:
// every frame is 16 32-bit words, word 0 carries the 2-bit nibble for
// each of the frame's 16 words.
const wordsPerFrame = 16

// FrameSize is the byte length of one Steim frame.
const FrameSize = wordsPerFrame * 4

// steimBucket is one nibble-tagged sub-packing of a 32-bit word: count
// diffs of width bits each, optionally qualified by a 2-bit dnib
// sub-selector carried in the word's own top two bits when a nibble
// value is shared by more than one bucket shape.
type steimBucket struct {
	nibble  uint8
	dnib    uint8
	hasDnib bool
	width   int
	count   int
}

func (b steimBucket) fits(diffs []int32) bool {
	if len(diffs) < b.count {
		return false
	}

	lo := -(int32(1) << uint(b.width-1))
	hi := (int32(1) << uint(b.width-1)) - 1
	for _, d := range diffs[:b.count] {
		if d < lo || d > hi {
			return false
		}
	}

	return true
}

func mask32(bits int) uint32 {
	if bits >= 32 {
		return 0xFFFFFFFF
	}

	return (uint32(1) << uint(bits)) - 1
}

func (b steimBucket) pack(diffs []int32) uint32 {
	var packed uint32
	for _, d := range diffs[:b.count] {
		packed = (packed << uint(b.width)) | (uint32(d) & mask32(b.width))
	}

	if !b.hasDnib {
		return packed
	}

	return (uint32(b.dnib) << 30) | (packed & mask32(30))
}

// pickBucket returns the first bucket (in caller-supplied, greediest-first
// order) whose fixed diff count all fit within diffs, or false if none
// do — the bucket consuming the most still-available diffs without
// overflow wins.
func pickBucket(buckets []steimBucket, diffs []int32) (steimBucket, bool) {
	for _, b := range buckets {
		if b.fits(diffs) {
			return b, true
		}
	}

	return steimBucket{}, false
}

func nibbleControlWord(nibble [wordsPerFrame]uint8) uint32 {
	var word uint32
	for _, n := range nibble {
		word = (word << 2) | uint32(n&0x3)
	}

	return word
}

// steimResult mirrors the (nframes, nsamples) pair qlib2's
// pack_steim1/pack_steim2 report. The x0/xn reserved words in frame 0
// are written separately by patchIntegrationConstants once the caller
// knows the raw sample values at the consumed boundary.
type steimResult struct {
	Frames  int
	Samples int
}

// SteimResult is what PackSteim1 and PackSteim2 report back: the byte
// and sample counts of one packed record payload plus the forward and
// reverse integration constants written into frame 0.
type SteimResult struct {
	BytesWritten    int
	SamplesConsumed int
	X0, Xn          int32
}

// packSteim runs the frame packer over the given bucket table and, when
// at least one sample was consumed, patches frame 0's integration
// constants from the raw sample values at the consumed boundary.
func packSteim(dst []byte, samples, diffs []int32, buckets []steimBucket, order endian.EndianEngine) (SteimResult, error) {
	res, err := packSteimFrames(dst, diffs, buckets, order)
	if err != nil {
		return SteimResult{}, err
	}

	out := SteimResult{
		BytesWritten:    res.Frames * FrameSize,
		SamplesConsumed: res.Samples,
	}
	if res.Samples > 0 {
		out.X0 = samples[0]
		out.Xn = samples[res.Samples-1]
		patchIntegrationConstants(dst, order, out.X0, out.Xn)
	}

	return out, nil
}

// packSteimFrames fills dst (a multiple of FrameSize bytes) with Steim
// frames built from diffs using the given greedy bucket order, honoring
// order for the serialized word byte order. It stops when either dst's
// frame capacity or diffs is exhausted, zero-pads any unfilled frame,
// and returns errs.ErrCompress if some remaining difference cannot be
// represented even by the narrowest-count (widest-per-value) bucket.
func packSteimFrames(dst []byte, diffs []int32, buckets []steimBucket, order endian.EndianEngine) (steimResult, error) {
	if len(dst)%FrameSize != 0 {
		return steimResult{}, fmt.Errorf("%w: steim destination must be a multiple of %d bytes", errs.ErrInvalidArgument, FrameSize)
	}

	frames := len(dst) / FrameSize
	grid := make([][wordsPerFrame]uint32, frames)
	nibbles := make([][wordsPerFrame]uint8, frames)

	pos := 0
	framesUsed := 0
	for f := 0; f < frames && pos < len(diffs); f++ {
		reserved := 1
		if f == 0 {
			reserved = 3
		}

		slot := reserved
		for slot < wordsPerFrame && pos < len(diffs) {
			remaining := diffs[pos:]

			chosen, ok := pickBucket(buckets, remaining)
			if !ok {
				return steimResult{}, errs.ErrCompress
			}

			grid[f][slot] = chosen.pack(remaining)
			nibbles[f][slot] = chosen.nibble
			slot++
			pos += chosen.count
		}

		framesUsed = f + 1
	}

	if framesUsed == 0 {
		if len(diffs) > 0 {
			return steimResult{}, errs.ErrCompress
		}
		if frames == 0 {
			return steimResult{}, nil
		}
		framesUsed = 1
	}

	for f := 0; f < framesUsed; f++ {
		grid[f][0] = nibbleControlWord(nibbles[f])
		for i := 0; i < wordsPerFrame; i++ {
			order.PutUint32(dst[f*FrameSize+i*4:f*FrameSize+i*4+4], grid[f][i])
		}
	}
	for i := framesUsed * FrameSize; i < len(dst); i++ {
		dst[i] = 0
	}

	return steimResult{Frames: framesUsed, Samples: pos}, nil
}

// patchIntegrationConstants overwrites frame 0's reserved words 1 and 2
// with the forward/reverse integration constants, once the caller knows
// them.
func patchIntegrationConstants(dst []byte, order endian.EndianEngine, x0, xn int32) {
	order.PutUint32(dst[4:8], uint32(x0))
	order.PutUint32(dst[8:12], uint32(xn))
}
