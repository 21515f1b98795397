// Package hash computes the stable stream-identity digest used for
// diagnostics. It is never part of the wire format: station, channel,
// network, and location remain opaque to the packing core; this digest
// only gives logging and continuity diagnostics a compact, comparable
// key.
package hash

import "github.com/cespare/xxhash/v2"

// StreamKey computes a stable 64-bit digest of a channel identity tuple.
func StreamKey(network, station, location, channel string) uint64 {
	var buf [256]byte
	b := buf[:0]
	b = append(b, network...)
	b = append(b, '.')
	b = append(b, station...)
	b = append(b, '.')
	b = append(b, location...)
	b = append(b, '.')
	b = append(b, channel...)

	return xxhash.Sum64(b)
}
