// Package endian provides byte-order ("word order", in SEED terminology)
// utilities for binary encoding and decoding of miniSEED records.
//
// SEED lets header fields and the data payload each independently select
// big-endian ("SEED order") or little-endian word order. This package
// extends the standard encoding/binary package by combining ByteOrder and
// AppendByteOrder into a single EndianEngine, letting packers append
// multi-byte fields without the extra temp-buffer copy a plain ByteOrder
// requires:
//
//	engine := endian.ForWordOrder(endian.Big)
//	buf = engine.AppendUint32(buf, uint32(sample))
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use; the returned
// EndianEngine values are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface. binary.LittleEndian and binary.BigEndian both
// satisfy it without modification.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// WordOrder is the SEED "data_wordorder" selector: the byte order used for
// multi-byte fields in a record's payload. The fixed header and blockette
// chain are always written big-endian (see format.HeaderByteOrder).
type WordOrder uint8

const (
	// Big is SEED order (network byte order), the default for new traces.
	Big WordOrder = 0
	// Little is selectable per-trace via trace.Header.DataWordOrder.
	Little WordOrder = 1
)

// Engine returns the EndianEngine corresponding to w.
func (w WordOrder) Engine() EndianEngine {
	if w == Little {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

func (w WordOrder) String() string {
	if w == Little {
		return "little"
	}

	return "big"
}

// ForWordOrder returns the EndianEngine for the given WordOrder. It is a
// convenience wrapper around WordOrder.Engine for call sites that only have
// the raw selector on hand (read off a trace header or blockette 1000).
func ForWordOrder(w WordOrder) EndianEngine {
	return w.Engine()
}
