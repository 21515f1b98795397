package pack

import (
	"fmt"

	"github.com/seismic-go/mseedpack/errs"
	"github.com/seismic-go/mseedpack/format"
	"github.com/seismic-go/mseedpack/header"
	"github.com/seismic-go/mseedpack/internal/pool"
	"github.com/seismic-go/mseedpack/trace"
)

// validBlksize reports whether b is a power of two in [128, 8192], the
// record sizes miniSEED permits.
func validBlksize(b int) bool {
	return b >= 128 && b <= 8192 && b&(b-1) == 0
}

// run is the one packing loop every encoding shares: per record it
// secures capacity,
// materializes the header, hands the payload region to the encoder,
// patches the final sample count, and advances the working header's
// time and sequence number. qlib2 carries four near-identical copies of
// this loop; the payloadEncoder trait lets one suffice.
//
// dst selects the buffer policy: non-nil means caller-owned (stop,
// without error, when the next record no longer fits), nil means
// library-owned with geometric growth.
func run(tr0 *trace.Header, extra *trace.Blockette, enc payloadEncoder, dst []byte) (Result, error) {
	if enc.remaining() <= 0 {
		return Result{}, fmt.Errorf("%w: no samples to pack", errs.ErrInvalidArgument)
	}
	if !validBlksize(tr0.Blksize) {
		return Result{}, fmt.Errorf("%w: got %d", errs.ErrInvalidBlockSize, tr0.Blksize)
	}

	// Work on a private copy; the caller's trace only changes at exit.
	hdr := header.Duplicate(tr0)
	order := hdr.DataWordOrder.Engine()
	blk := hdr.Blksize

	borrowed := dst != nil
	var owned *pool.RecordBuffer
	if !borrowed {
		owned = pool.NewRecordBuffer(blk)
	}

	records, consumed := 0, 0
	var packErr error

	for enc.remaining() > 0 {
		var rec []byte
		if borrowed {
			if len(dst)-records*blk < blk {
				break
			}
			rec = dst[records*blk : (records+1)*blk]
		} else {
			if !owned.EnsureNext() {
				return Result{}, fmt.Errorf("%w: growing record buffer", errs.ErrAlloc)
			}
			rec = owned.NextRecord()
		}

		if err := header.InitHeader(rec, hdr, extra); err != nil {
			return Result{}, err
		}
		// Onetime blockettes go into the first record only.
		extra = nil

		k, err := enc.encodeRecord(rec[hdr.FirstData:blk], order)
		if err != nil {
			// Abandon the current record: its region may be partially
			// written but it is not counted as emitted.
			packErr = err
			break
		}
		if k == 0 {
			break
		}

		hdr.NumSamples = k
		if err := header.UpdateHeader(rec, hdr); err != nil {
			return Result{}, err
		}

		advanceTime(hdr, k)
		hdr.SeqNo++
		hdr.NumSamples = 0

		consumed += k
		records++
		if !borrowed {
			owned.CommitRecord()
		}
	}

	// Post-call trace state reflects only records actually emitted; a
	// capacity stop before the first record leaves the caller's trace
	// untouched.
	if consumed > 0 {
		tr0.BegTime = hdr.BegTime
		tr0.HdrTime = hdr.HdrTime
		tr0.SeqNo = hdr.SeqNo
		tr0.NumSamples -= consumed
		updatePredictor(tr0, enc, consumed)
	}

	res := Result{Records: records, Samples: consumed}
	if !borrowed && packErr == nil {
		res.Data = owned.Bytes()
	}

	return res, packErr
}

// advanceTime moves the working header's begin and header times past n
// just-packed samples. A blockette 100 on the trace supplies a measured
// actual rate that supersedes the nominal rational rate.
func advanceTime(hdr *trace.Header, n int) {
	if b, ok := header.FindBlockette(hdr, format.BlocketteRate); ok {
		if actual := header.ActualRate(b); actual > 0 {
			us := float64(n) / actual * 1e6
			hdr.BegTime = header.AddDTime(hdr.BegTime, us)
			hdr.HdrTime = header.AddDTime(hdr.HdrTime, us)

			return
		}
	}

	d := header.TimeInterval(n, hdr.SampleRate, hdr.SampleRateMult)
	hdr.BegTime = header.AddTime(hdr.BegTime, d)
	hdr.HdrTime = header.AddTime(hdr.HdrTime, d)
}

// updatePredictor writes the compressor continuity state for the whole
// consumed span back to the caller's trace. consumed must be >= 1. For
// encodings where the predictor carries no meaning the fields are
// zeroed so stale integer state cannot leak into a later Steim call on
// the same trace.
func updatePredictor(tr *trace.Header, enc payloadEncoder, consumed int) {
	if !enc.predictorRelevant() {
		tr.X0, tr.Xn, tr.Xm1, tr.Xm2 = 0, 0, 0, 0

		return
	}

	if consumed == 1 {
		s := enc.sample(0)
		tr.Xm2 = tr.Xm1
		tr.Xm1 = s
		tr.X0 = s
		tr.Xn = s

		return
	}

	tr.X0 = enc.sample(0)
	tr.Xn = enc.sample(consumed - 1)
	tr.Xm1 = enc.sample(consumed - 1)
	tr.Xm2 = enc.sample(consumed - 2)
}
