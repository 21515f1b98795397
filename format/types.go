// Package format defines the wire-level constants shared by every layer of
// mseedpack: the miniSEED data-type tags, the on-disk encoding codes carried
// in blockette 1000, and the blockette type codes the header library
// recognizes.
package format

import "github.com/seismic-go/mseedpack/endian"

// DataType tags the on-disk sample encoding a trace packs to. It is the Go
// analogue of qlib2's DATA_HDR.data_type field.
type DataType uint8

const (
	// Unknown is only valid when the trace's sample rate is zero, in which
	// case samples are opaque bytes packed by the text path.
	Unknown DataType = iota
	Steim1
	Steim2
	Int16
	Int24
	Int32
	FloatSP // IEEE 754 32-bit
	FloatDP // IEEE 754 64-bit
)

func (t DataType) String() string {
	switch t {
	case Unknown:
		return "UNKNOWN"
	case Steim1:
		return "STEIM1"
	case Steim2:
		return "STEIM2"
	case Int16:
		return "INT_16"
	case Int24:
		return "INT_24"
	case Int32:
		return "INT_32"
	case FloatSP:
		return "IEEE_FP_SP"
	case FloatDP:
		return "IEEE_FP_DP"
	default:
		return "INVALID"
	}
}

// IsInteger reports whether t is one of the predictor-continuity-relevant
// encodings (Steim or fixed-width integer): the only encodings for which
// xm1/xm2/x0/xn carry meaning across calls.
func (t DataType) IsInteger() bool {
	switch t {
	case Steim1, Steim2, Int16, Int24, Int32:
		return true
	default:
		return false
	}
}

// EncodingCode returns the SEED data-format code recorded in blockette 1000
// for t. These are the standard FDSN/SEED manual codes, not mseedpack
// inventions, so records this library writes are byte-compatible with any
// reader that honors blockette 1000.
func (t DataType) EncodingCode() uint8 {
	switch t {
	case Unknown:
		return 0 // ASCII / opaque
	case Int16:
		return 1
	case Int24:
		return 2
	case Int32:
		return 3
	case FloatSP:
		return 4
	case FloatDP:
		return 5
	case Steim1:
		return 10
	case Steim2:
		return 11
	default:
		return 0xFF
	}
}

// Blockette type codes recognized by the header package.
const (
	BlocketteRate    = 100  // actual sample rate override
	BlocketteEncoder = 1000 // required encoding/word-order/record-length descriptor
)

// HeaderByteOrder returns the byte order used to serialize the SDR fixed
// header and blockette chain. SEED would allow the header its own word
// order; this library always writes it in network byte order (big-endian)
// regardless of a trace's data_wordorder, which only governs the payload.
func HeaderByteOrder() endian.EndianEngine {
	return endian.Big.Engine()
}
