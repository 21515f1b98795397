package header

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"

	"github.com/seismic-go/mseedpack/errs"
	"github.com/seismic-go/mseedpack/format"
	"github.com/seismic-go/mseedpack/trace"
)

// blocketteHeaderSize is the 4-byte {type, next-offset} prefix common to
// every blockette, not counted in trace.Blockette.Body.
const blocketteHeaderSize = 4

// Blockette1000Size is the total on-wire size of a blockette 1000
// (4-byte chain header + 4-byte body): encoding, word order, the
// base-2 log of blksize, and one reserved byte.
const Blockette1000Size = 8

// Blockette100Size is the total on-wire size of a blockette 100
// (4-byte chain header + 8-byte body): an IEEE-754 actual rate plus
// flags and padding.
const Blockette100Size = 12

func buildBlockette1000(tr *trace.Header) []byte {
	body := make([]byte, Blockette1000Size-blocketteHeaderSize)
	body[0] = tr.DataType.EncodingCode()
	body[1] = byte(tr.DataWordOrder)
	body[2] = byte(bits.Len(uint(tr.Blksize)) - 1)
	body[3] = 0

	return body
}

// NewRateBlockette builds a blockette 100 carrying an actual sample rate
// override, for callers that need a measured rate distinct from the
// trace's nominal rational rate.
func NewRateBlockette(actualRate float64) *trace.Blockette {
	body := make([]byte, Blockette100Size-blocketteHeaderSize)
	binary.BigEndian.PutUint32(body[0:4], math.Float32bits(float32(actualRate)))
	body[4] = 0
	body[5], body[6], body[7] = 0, 0, 0

	return &trace.Blockette{Code: format.BlocketteRate, Body: body}
}

// ActualRate extracts the rate carried by a blockette 100, as built by
// NewRateBlockette.
func ActualRate(b *trace.Blockette) float64 {
	bits32 := binary.BigEndian.Uint32(b.Body[0:4])

	return float64(math.Float32frombits(bits32))
}

// writeBlockettes serializes chain into dst in order, returning the
// blockette count and total bytes written. Each blockette's next-offset
// field is patched to the absolute byte offset (from the start of the
// record) of the following blockette, or 0 for the last.
func writeBlockettes(dst []byte, chain *trace.Blockette) (int, int, error) {
	be := format.HeaderByteOrder()

	nblk := 0
	offset := 0
	for b := chain; b != nil; b = b.Next {
		size := blocketteHeaderSize + len(b.Body)
		if offset+size > len(dst) {
			return 0, 0, fmt.Errorf("%w: blockette chain exceeds first_data budget", errs.ErrHeaderInit)
		}

		nextOff := uint16(0)
		if b.Next != nil {
			nextOff = uint16(FixedHeaderSize + offset + size)
		}

		be.PutUint16(dst[offset:offset+2], b.Code)
		be.PutUint16(dst[offset+2:offset+4], nextOff)
		copy(dst[offset+blocketteHeaderSize:offset+size], b.Body)

		offset += size
		nblk++
	}

	return nblk, offset, nil
}
