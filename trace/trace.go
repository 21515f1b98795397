// Package trace defines the mutable trace-header data model that the
// packing pipeline reads and advances.
//
// Everything here is a plain, data-only model. The operations that know how
// to turn a Header into SDR fixed-header bytes, walk its blockette chain,
// or do calendar arithmetic on it live in the sibling header package, which
// the packing core consumes as opaque operations rather than owning.
package trace

import (
	"time"

	"github.com/seismic-go/mseedpack/endian"
	"github.com/seismic-go/mseedpack/format"
	"github.com/seismic-go/mseedpack/internal/hash"
)

// Blockette is one node of the blockette chain attached to a trace. The
// core only ever reads this chain opaquely (walking it to find blockette
// 100) or passes it to the header package for serialization; it never
// interprets Body itself.
type Blockette struct {
	Code uint16
	Body []byte
	Next *Blockette
}

// Clone deep-copies a blockette chain starting at b (b may be nil).
func (b *Blockette) Clone() *Blockette {
	if b == nil {
		return nil
	}

	body := make([]byte, len(b.Body))
	copy(body, b.Body)

	return &Blockette{Code: b.Code, Body: body, Next: b.Next.Clone()}
}

// Header is the per-trace descriptor (qlib2's DATA_HDR): channel identity,
// timing, nominal rate, predictor continuity state, and the desired
// on-disk encoding. It is provided and owned by the caller; a packing call
// clones it internally for the duration of the call and writes back a
// small, documented set of fields whenever the call emitted at least one
// record, including a call that then stops with an error.
type Header struct {
	// Identity is opaque to the packing core; it never affects packing
	// decisions, only the bytes written into the SDR fixed header.
	Network  string
	Station  string
	Location string
	Channel  string

	BegTime time.Time // start time of the first sample in this trace
	HdrTime time.Time // start time the next record header built from this trace will carry

	// SampleRate/SampleRateMult express the nominal rational rate. A zero
	// SampleRate marks a "text"/opaque channel.
	SampleRate     float64
	SampleRateMult int16

	NumSamples int // remaining unpacked samples, decremented by the driver
	SeqNo      int // monotonically increasing record number

	DataType      format.DataType
	DataWordOrder endian.WordOrder

	Blksize   int // power of two in [128, 8192]
	FirstData int // byte offset where payload begins, set by header.InitHeader

	// Predictor continuity state (meaningful only when DataType.IsInteger()).
	Xm1, Xm2 int32 // last, next-to-last sample previously emitted
	X0, Xn   int32 // first, last sample of the most recently packed buffer

	// Blockettes is the trace's own persistent blockette chain (e.g. a
	// blockette 100 carrying an actual-rate override). It is distinct from
	// the one-time "extra blockettes" a caller may pass to a single pack
	// call.
	Blockettes *Blockette
}

// New creates a Header for the given channel identity, start time, nominal
// rate, data type, and record size, applying any Options.
func New(
	network, station, location, channel string,
	begTime time.Time,
	sampleRate float64, sampleRateMult int16,
	dataType format.DataType,
	blksize int,
	opts ...Option,
) (*Header, error) {
	h := &Header{
		Network:        network,
		Station:        station,
		Location:       location,
		Channel:        channel,
		BegTime:        begTime,
		HdrTime:        begTime,
		SampleRate:     sampleRate,
		SampleRateMult: sampleRateMult,
		DataType:       dataType,
		DataWordOrder:  endian.Big,
		Blksize:        blksize,
	}

	if err := apply(h, opts); err != nil {
		return nil, err
	}

	return h, nil
}

// StreamKey returns a stable digest of the trace's channel identity,
// suitable as a structured-logging correlation key. It carries no
// wire-format meaning.
func (h *Header) StreamKey() uint64 {
	return hash.StreamKey(h.Network, h.Station, h.Location, h.Channel)
}

// IsText reports whether h describes an opaque/text channel: UNKNOWN data
// type with a zero nominal sample rate.
func (h *Header) IsText() bool {
	return h.DataType == format.Unknown && h.SampleRate == 0
}
