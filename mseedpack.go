// Package mseedpack encodes streams of scientific time-series samples
// into fixed-size miniSEED data records, the standardized container
// format seismological archives use to carry continuous sensor
// observations together with timing, provenance, and format metadata.
//
// # Core Features
//
//   - Steim-1 and Steim-2 differential frame compression with exact
//     predictor-state continuity across calls
//   - Fixed-width 16/24/32-bit integer, IEEE-754 single/double, and
//     opaque text payload encodings
//   - Byte-exact SDR fixed headers and blockette chains, with payload
//     word order selectable per trace
//   - Caller-owned or library-grown output buffers
//
// # Basic Usage
//
// Creating a trace and packing samples:
//
//	import "github.com/seismic-go/mseedpack"
//
//	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
//	tr, _ := trace.New("NC", "BKS", "00", "BHZ", start, 100, 1, format.Steim2, 512)
//
//	samples := []int32{100, 101, 103, 106, 110}
//	res, err := mseedpack.Pack(tr, nil, samples, nil)
//	if err != nil {
//	    return err
//	}
//	// res.Data holds res.Records complete 512-byte miniSEED records;
//	// tr now carries the advanced time, sequence number, and
//	// compressor state for the next contiguous call.
//
// # Package Structure
//
// This package provides a thin top-level wrapper over the pack package.
// For the full surface — per-encoding entry points and caller-supplied
// difference buffers — use pack directly;
// trace and header expose the data model and the SDR/blockette layer.
package mseedpack

import (
	"github.com/seismic-go/mseedpack/pack"
	"github.com/seismic-go/mseedpack/trace"
)

// Result is the outcome of a packing call; see pack.Result.
type Result = pack.Result

// Pack encodes samples into miniSEED records in tr's data format,
// dispatching exactly like pack.Data.
func Pack(tr *trace.Header, extra *trace.Blockette, samples any, dst []byte) (Result, error) {
	return pack.Data(tr, extra, samples, dst)
}
