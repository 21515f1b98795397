// Package pack turns a trace of samples into fixed-size miniSEED data
// records. The entry points mirror qlib2's ms_pack2 surface: Data dispatches on the trace's data type, and the typed
// functions (Steim1, Steim2, Int16, Int24, Int32, FloatSP, FloatDP,
// Text) pack one specific encoding.
//
// Every call follows the same contract. The trace header is read, and —
// only when at least one record was emitted — a documented set of
// fields is written back: begin/header time, sequence number, remaining
// sample count, and the compressor continuity state x0/xn/xm1/xm2.
// Feeding the updated header the next contiguous span of samples
// produces a bit-identical continuation of the stream.
//
// Output goes either into a caller-owned buffer (dst non-nil; packing
// stops without error when the next record no longer fits) or into a
// library-owned buffer that grows in batches of pool.MallocIncrement
// records and is returned as Result.Data, sized to exactly
// Records*Blksize bytes.
package pack

import (
	"fmt"

	"github.com/seismic-go/mseedpack/errs"
	"github.com/seismic-go/mseedpack/format"
	"github.com/seismic-go/mseedpack/internal/encoding"
	"github.com/seismic-go/mseedpack/internal/pool"
	"github.com/seismic-go/mseedpack/trace"
)

// Result reports one packing call: the number of records emitted, the
// number of samples consumed from the input, and — in library-owned
// buffer mode only — the emitted records themselves.
type Result struct {
	Records int
	Samples int
	// Data holds exactly Records*Blksize bytes when the call allocated
	// its own output buffer (dst == nil); it is nil in caller-owned
	// mode and after a terminal error.
	Data []byte
}

// Data packs samples into miniSEED records in the trace's data format.
// samples must be the slice type matching that format: []int32 for
// Steim and fixed-integer encodings, []float32 / []float64 for the IEEE
// encodings, and []byte for a text channel (UNKNOWN data type with zero
// sample rate). extra is a chain of onetime blockettes written into the
// first emitted record only.
func Data(tr *trace.Header, extra *trace.Blockette, samples any, dst []byte) (Result, error) {
	switch tr.DataType {
	case format.Steim1:
		s, err := coerce[int32](tr, samples)
		if err != nil {
			return Result{}, err
		}

		return Steim1(tr, extra, s, nil, dst)
	case format.Steim2:
		s, err := coerce[int32](tr, samples)
		if err != nil {
			return Result{}, err
		}

		return Steim2(tr, extra, s, nil, dst)
	case format.Int16:
		s, err := coerce[int32](tr, samples)
		if err != nil {
			return Result{}, err
		}

		return Int16(tr, extra, s, dst)
	case format.Int24:
		s, err := coerce[int32](tr, samples)
		if err != nil {
			return Result{}, err
		}

		return Int24(tr, extra, s, dst)
	case format.Int32:
		s, err := coerce[int32](tr, samples)
		if err != nil {
			return Result{}, err
		}

		return Int32(tr, extra, s, dst)
	case format.FloatSP:
		s, err := coerce[float32](tr, samples)
		if err != nil {
			return Result{}, err
		}

		return FloatSP(tr, extra, s, dst)
	case format.FloatDP:
		s, err := coerce[float64](tr, samples)
		if err != nil {
			return Result{}, err
		}

		return FloatDP(tr, extra, s, dst)
	case format.Unknown:
		// UNKNOWN is only a text channel at rate zero; with a real rate
		// it is an unimplemented format, not a silent fallthrough.
		if tr.SampleRate == 0 {
			s, err := coerce[byte](tr, samples)
			if err != nil {
				return Result{}, err
			}

			return Text(tr, extra, s, dst)
		}

		return Result{}, fmt.Errorf("%w: UNKNOWN data type with non-zero sample rate", errs.ErrUnimplementedFormat)
	default:
		return Result{}, fmt.Errorf("%w: %s", errs.ErrUnimplementedFormat, tr.DataType)
	}
}

// Steim1 packs samples into Steim-1 records. diffs, when non-nil, must
// hold the precomputed first differences for samples (diffs[0] seeded
// with tr.Xm1); when nil they are computed on a pooled scratch slice
// with 32-bit saturation.
func Steim1(tr *trace.Header, extra *trace.Blockette, samples, diffs []int32, dst []byte) (Result, error) {
	return steim(tr, extra, format.Steim1, samples, diffs, dst)
}

// Steim2 packs samples into Steim-2 records; see Steim1 for the diffs
// contract. A difference too large for Steim-2's widest (30-bit) bucket
// surfaces as errs.ErrCompress.
func Steim2(tr *trace.Header, extra *trace.Blockette, samples, diffs []int32, dst []byte) (Result, error) {
	return steim(tr, extra, format.Steim2, samples, diffs, dst)
}

func steim(tr *trace.Header, extra *trace.Blockette, want format.DataType, samples, diffs []int32, dst []byte) (Result, error) {
	if err := wantType(tr, want); err != nil {
		return Result{}, err
	}

	if diffs == nil {
		if len(samples) > 0 {
			buf, release := pool.GetDiffSlice(len(samples))
			defer release()
			diffs = encoding.SaturatingDiff(samples, tr.Xm1, buf)
		}
	} else if len(diffs) != len(samples) {
		return Result{}, fmt.Errorf("%w: diff buffer length %d != sample count %d", errs.ErrInvalidArgument, len(diffs), len(samples))
	}

	enc := &steimEncoder{two: want == format.Steim2, samples: samples, diffs: diffs}

	return run(tr, extra, enc, dst)
}

// Int16 packs samples into 16-bit integer records; a sample outside the
// int16 range is an error.
func Int16(tr *trace.Header, extra *trace.Blockette, samples []int32, dst []byte) (Result, error) {
	if err := wantType(tr, format.Int16); err != nil {
		return Result{}, err
	}

	return run(tr, extra, &intEncoder{samples: samples, write: encoding.PackInt16}, dst)
}

// Int24 packs samples into 24-bit integer records; a sample outside the
// signed 24-bit range is an error.
func Int24(tr *trace.Header, extra *trace.Blockette, samples []int32, dst []byte) (Result, error) {
	if err := wantType(tr, format.Int24); err != nil {
		return Result{}, err
	}

	return run(tr, extra, &intEncoder{samples: samples, write: encoding.PackInt24}, dst)
}

// Int32 packs samples into 32-bit integer records.
func Int32(tr *trace.Header, extra *trace.Blockette, samples []int32, dst []byte) (Result, error) {
	if err := wantType(tr, format.Int32); err != nil {
		return Result{}, err
	}

	return run(tr, extra, &intEncoder{samples: samples, write: encoding.PackInt32}, dst)
}

// FloatSP packs samples into IEEE-754 single-precision records.
func FloatSP(tr *trace.Header, extra *trace.Blockette, samples []float32, dst []byte) (Result, error) {
	if err := wantType(tr, format.FloatSP); err != nil {
		return Result{}, err
	}

	return run(tr, extra, &floatEncoder[float32]{samples: samples, write: encoding.PackFloat32}, dst)
}

// FloatDP packs samples into IEEE-754 double-precision records.
func FloatDP(tr *trace.Header, extra *trace.Blockette, samples []float64, dst []byte) (Result, error) {
	if err := wantType(tr, format.FloatDP); err != nil {
		return Result{}, err
	}

	return run(tr, extra, &floatEncoder[float64]{samples: samples, write: encoding.PackFloat64}, dst)
}

// Text packs opaque log/text bytes; the trace must describe a text
// channel (UNKNOWN data type, zero sample rate).
func Text(tr *trace.Header, extra *trace.Blockette, data []byte, dst []byte) (Result, error) {
	if !tr.IsText() {
		return Result{}, fmt.Errorf("%w: text packing needs an UNKNOWN data type with zero sample rate", errs.ErrInvalidArgument)
	}

	return run(tr, extra, &textEncoder{data: data}, dst)
}

func wantType(tr *trace.Header, want format.DataType) error {
	if tr.DataType != want {
		return fmt.Errorf("%w: trace data type is %s, not %s", errs.ErrInvalidArgument, tr.DataType, want)
	}

	return nil
}

func coerce[T any](tr *trace.Header, samples any) ([]T, error) {
	s, ok := samples.([]T)
	if !ok {
		return nil, fmt.Errorf("%w: %s packing needs %T samples, got %T", errs.ErrInvalidArgument, tr.DataType, []T(nil), samples)
	}

	return s, nil
}
