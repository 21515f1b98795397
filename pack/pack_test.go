package pack

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seismic-go/mseedpack/endian"
	"github.com/seismic-go/mseedpack/errs"
	"github.com/seismic-go/mseedpack/format"
	"github.com/seismic-go/mseedpack/header"
	"github.com/seismic-go/mseedpack/trace"
)

// SEED fixed-header offsets used to spot-check emitted records; see
// header/fixed.go for the full layout.
const (
	offNumSamples = 30
	offBegData    = 44
)

var testStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestTrace(t *testing.T, dataType format.DataType, blksize int, opts ...trace.Option) *trace.Header {
	t.Helper()
	tr, err := trace.New("NC", "BKS", "00", "BHZ", testStart, 100, 1, dataType, blksize, opts...)
	require.NoError(t, err)

	return tr
}

func be() endian.EndianEngine { return endian.Big.Engine() }

func TestSteim2SingleRecord(t *testing.T) {
	tr := newTestTrace(t, format.Steim2, 512, trace.WithPredictorState(99, 98))
	tr.NumSamples = 8
	samples := []int32{100, 101, 103, 106, 110, 115, 121, 128}

	res, err := Data(tr, nil, samples, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Records)
	require.Equal(t, 8, res.Samples)
	require.Len(t, res.Data, 512)

	firstData := int(be().Uint16(res.Data[offBegData : offBegData+2]))
	require.Equal(t, 64, firstData)
	require.Equal(t, uint16(8), be().Uint16(res.Data[offNumSamples:offNumSamples+2]))

	// Frame 0's forward and reverse integration constants.
	require.Equal(t, int32(100), int32(be().Uint32(res.Data[firstData+4:firstData+8])))
	require.Equal(t, int32(128), int32(be().Uint32(res.Data[firstData+8:firstData+12])))

	// Predictor continuity and telemetry state written back.
	require.Equal(t, int32(128), tr.Xm1)
	require.Equal(t, int32(121), tr.Xm2)
	require.Equal(t, int32(100), tr.X0)
	require.Equal(t, int32(128), tr.Xn)

	require.Equal(t, 1, tr.SeqNo)
	require.Equal(t, 0, tr.NumSamples)
	require.Equal(t, testStart.Add(80*time.Millisecond), tr.BegTime)
}

func TestSteim1AllZerosRecord(t *testing.T) {
	tr := newTestTrace(t, format.Steim1, 4096)
	samples := make([]int32, 1000)

	res, err := Data(tr, nil, samples, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Records)
	require.Equal(t, 1000, res.Samples)
	require.Equal(t, uint16(1000), be().Uint16(res.Data[offNumSamples:offNumSamples+2]))

	// Zero diffs pack four-per-word into Steim-1's 8-bit bucket: frame
	// 0's control word tags slots 3..15 with nibble 01.
	require.Equal(t, uint32(0x01555555), be().Uint32(res.Data[64:68]))
	require.Zero(t, tr.Xm1)
	require.Zero(t, tr.Xm2)
}

func TestInt32BigEndianRecord(t *testing.T) {
	tr := newTestTrace(t, format.Int32, 512)
	samples := make([]int32, 112)
	for i := range samples {
		samples[i] = int32(i + 1)
	}

	res, err := Data(tr, nil, samples, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Records)
	require.Equal(t, 112, res.Samples)

	// (512-64)/4 = 112 samples exactly fill the record.
	require.Equal(t, []byte{0, 0, 0, 1}, res.Data[64:68])
	require.Equal(t, uint32(112), be().Uint32(res.Data[508:512]))
	require.Equal(t, uint16(112), be().Uint16(res.Data[offNumSamples:offNumSamples+2]))

	require.Equal(t, int32(112), tr.Xm1)
	require.Equal(t, int32(111), tr.Xm2)
}

func TestCallerOwnedTooSmallIsNotAnError(t *testing.T) {
	tr := newTestTrace(t, format.Steim2, 512)
	before := *header.Duplicate(tr)

	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = 0xAB
	}

	res, err := Data(tr, nil, []int32{1, 2, 3}, buf)
	require.NoError(t, err)
	require.Zero(t, res.Records)
	require.Zero(t, res.Samples)
	require.Nil(t, res.Data)

	for _, b := range buf {
		require.Equal(t, byte(0xAB), b)
	}

	// Nothing consumed, so the caller's trace is untouched.
	require.Equal(t, before.BegTime, tr.BegTime)
	require.Equal(t, before.SeqNo, tr.SeqNo)
	require.Equal(t, before.Xm1, tr.Xm1)
}

func TestSteim2OverflowSurfacesCompressError(t *testing.T) {
	tr := newTestTrace(t, format.Steim2, 512, trace.WithPredictorState(math.MinInt32, 0))

	res, err := Data(tr, nil, []int32{math.MaxInt32}, nil)
	require.ErrorIs(t, err, errs.ErrCompress)
	require.Equal(t, -2, errs.Code(err))
	require.Zero(t, res.Records)
	require.Nil(t, res.Data)

	// No record was emitted, so no state changed.
	require.Equal(t, int32(math.MinInt32), tr.Xm1)
	require.Zero(t, tr.SeqNo)
}

// randomWalk builds a deterministic sample stream whose diffs span the
// narrow Steim-2 buckets.
func randomWalk(n int) []int32 {
	samples := make([]int32, n)
	v := int32(0)
	state := uint32(0x12345)
	for i := range samples {
		state = state*1664525 + 1013904223
		v += int32(state%61) - 30
		samples[i] = v
	}

	return samples
}

func TestSplitCallsMatchSingleCall(t *testing.T) {
	samples := randomWalk(8000)

	whole := newTestTrace(t, format.Steim2, 512)
	single, err := Data(whole, nil, samples, nil)
	require.NoError(t, err)
	require.Greater(t, single.Records, 1)
	require.Equal(t, 8000, single.Samples)
	require.Len(t, single.Data, single.Records*512)

	// Split on a record boundary near the middle: a continuation can
	// only be byte-identical when the first call ends exactly where a
	// record of the single call ends.
	split := 0
	for i := 0; i < single.Records && split < 4000; i++ {
		split += int(be().Uint16(single.Data[i*512+offNumSamples : i*512+offNumSamples+2]))
	}
	require.Greater(t, split, 0)
	require.Less(t, split, 8000)

	tr := newTestTrace(t, format.Steim2, 512)
	first, err := Data(tr, nil, samples[:split], nil)
	require.NoError(t, err)
	require.Equal(t, split, first.Samples)

	second, err := Data(tr, nil, samples[split:], nil)
	require.NoError(t, err)
	require.Equal(t, 8000-split, second.Samples)

	require.Equal(t, single.Records, first.Records+second.Records)
	joined := append(append([]byte{}, first.Data...), second.Data...)
	require.Equal(t, single.Data, joined)

	require.Equal(t, whole.BegTime, tr.BegTime)
	require.Equal(t, whole.SeqNo, tr.SeqNo)
	require.Equal(t, whole.Xm1, tr.Xm1)
	require.Equal(t, whole.Xm2, tr.Xm2)
}

func TestInt16MultiRecord(t *testing.T) {
	tr := newTestTrace(t, format.Int16, 128)
	tr.NumSamples = 80
	samples := make([]int32, 80)
	for i := range samples {
		samples[i] = int32(i - 40)
	}

	res, err := Data(tr, nil, samples, nil)
	require.NoError(t, err)

	// 128-byte records hold (128-64)/2 = 32 samples each.
	require.Equal(t, 3, res.Records)
	require.Equal(t, 80, res.Samples)

	counts := []uint16{32, 32, 16}
	for i, want := range counts {
		rec := res.Data[i*128 : (i+1)*128]
		require.Equal(t, want, be().Uint16(rec[offNumSamples:offNumSamples+2]))
		require.Equal(t, byte('0'), rec[0])
		require.Equal(t, byte('0'+i), rec[5], "sequence numbers advance per record")
	}

	// Record 1 starts 32 samples past the trace start: 0.32 s is 3200
	// ticks of 0.1 ms in the BTIME fraction field.
	require.Equal(t, uint16(3200), be().Uint16(res.Data[128+28:128+30]))

	require.Equal(t, 3, tr.SeqNo)
	require.Equal(t, 0, tr.NumSamples)
	require.Equal(t, testStart.Add(800*time.Millisecond), tr.BegTime)
	require.Equal(t, int32(39), tr.Xm1)
	require.Equal(t, int32(38), tr.Xm2)
}

func TestCallerOwnedPartialThenResume(t *testing.T) {
	samples := make([]int32, 40)
	for i := range samples {
		samples[i] = int32(i * 3)
	}

	whole := newTestTrace(t, format.Int32, 128)
	single, err := Data(whole, nil, samples, nil)
	require.NoError(t, err)
	require.Equal(t, 3, single.Records)

	tr := newTestTrace(t, format.Int32, 128)
	buf := make([]byte, 2*128)
	res, err := Data(tr, nil, samples, buf)
	require.NoError(t, err)
	require.Equal(t, 2, res.Records)
	require.Equal(t, 32, res.Samples)

	buf2 := make([]byte, 128)
	res2, err := Data(tr, nil, samples[res.Samples:], buf2)
	require.NoError(t, err)
	require.Equal(t, 1, res2.Records)
	require.Equal(t, 8, res2.Samples)

	joined := append(append([]byte{}, buf...), buf2...)
	require.Equal(t, single.Data, joined)
}

func TestFloatPathZeroesPredictorState(t *testing.T) {
	tr := newTestTrace(t, format.FloatSP, 128, trace.WithPredictorState(55, 44))

	res, err := Data(tr, nil, []float32{1.5, -2.5, 3.25}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Records)
	require.Equal(t, 3, res.Samples)
	require.Equal(t, math.Float32bits(1.5), be().Uint32(res.Data[64:68]))

	require.Zero(t, tr.X0)
	require.Zero(t, tr.Xn)
	require.Zero(t, tr.Xm1)
	require.Zero(t, tr.Xm2)
}

func TestFloatDPRecord(t *testing.T) {
	tr := newTestTrace(t, format.FloatDP, 128)

	res, err := Data(tr, nil, []float64{math.Pi}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Records)
	require.Equal(t, math.Float64bits(math.Pi), be().Uint64(res.Data[64:72]))
}

func TestTextChannel(t *testing.T) {
	tr, err := trace.New("NC", "BKS", "00", "LOG", testStart, 0, 0, format.Unknown, 128)
	require.NoError(t, err)

	data := make([]byte, 100)
	for i := range data {
		data[i] = byte('a' + i%26)
	}

	res, err := Data(tr, nil, data, nil)
	require.NoError(t, err)

	// 64 payload bytes per 128-byte record; one "sample" per byte.
	require.Equal(t, 2, res.Records)
	require.Equal(t, 100, res.Samples)
	require.Equal(t, uint16(64), be().Uint16(res.Data[offNumSamples:offNumSamples+2]))
	require.Equal(t, uint16(36), be().Uint16(res.Data[128+offNumSamples:128+offNumSamples+2]))
	require.Equal(t, data[:64], res.Data[64:128])
	require.Equal(t, data[64:], res.Data[128+64:128+100])

	// Zero sample rate: time never advances, predictor stays zeroed.
	require.Equal(t, testStart, tr.BegTime)
	require.Equal(t, 2, tr.SeqNo)
	require.Zero(t, tr.Xm1)
}

func TestUnknownTypeWithRateIsHardError(t *testing.T) {
	tr := newTestTrace(t, format.Unknown, 512)

	_, err := Data(tr, nil, []byte("not really text"), nil)
	require.ErrorIs(t, err, errs.ErrUnimplementedFormat)
	require.Equal(t, -1, errs.Code(err))
}

func TestBlockette100OverridesNominalRate(t *testing.T) {
	tr := newTestTrace(t, format.Steim2, 512,
		trace.WithBlockette(header.NewRateBlockette(50)))
	samples := make([]int32, 100)

	res, err := Data(tr, nil, samples, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Records)

	// 100 samples at the measured 50 Hz, not the nominal 100 Hz.
	require.Equal(t, testStart.Add(2*time.Second), tr.BegTime)
}

func TestExtraBlockettesOnlyInFirstRecord(t *testing.T) {
	tr := newTestTrace(t, format.Int16, 128)
	extra := &trace.Blockette{Code: 201, Body: []byte{0, 0, 0, 0}}
	samples := make([]int32, 64) // two records

	res, err := Data(tr, extra, samples, nil)
	require.NoError(t, err)
	require.Equal(t, 2, res.Records)

	// Record 0 carries the synthesized blockette 1000 followed by the
	// onetime blockette; record 1 carries only the blockette 1000.
	require.Equal(t, uint16(1000), be().Uint16(res.Data[48:50]))
	require.Equal(t, uint16(201), be().Uint16(res.Data[56:58]))
	require.Equal(t, byte(2), res.Data[39])
	require.Equal(t, uint16(1000), be().Uint16(res.Data[128+48:128+50]))
	require.Equal(t, byte(1), res.Data[128+39])
}

func TestLittleEndianPayload(t *testing.T) {
	tr := newTestTrace(t, format.Int32, 128, trace.WithWordOrder(endian.Little))

	res, err := Data(tr, nil, []int32{1}, nil)
	require.NoError(t, err)

	// Blockette 1000 advertises encoding 3, little word order, 2^7.
	require.Equal(t, byte(3), res.Data[52])
	require.Equal(t, byte(1), res.Data[53])
	require.Equal(t, byte(7), res.Data[54])

	require.Equal(t, []byte{1, 0, 0, 0}, res.Data[64:68])
}

func TestInvalidArguments(t *testing.T) {
	tr := newTestTrace(t, format.Steim2, 512)

	_, err := Data(tr, nil, []int32{}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	tr.Blksize = 100
	_, err = Data(tr, nil, []int32{1}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidBlockSize)
	require.Equal(t, -1, errs.Code(err))

	tr.Blksize = 16384
	_, err = Data(tr, nil, []int32{1}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidBlockSize)
}

func TestTypedEntryPointRejectsMismatchedTrace(t *testing.T) {
	tr := newTestTrace(t, format.Steim2, 512)

	_, err := Steim1(tr, nil, []int32{1, 2}, nil, nil)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = Int16(tr, nil, []int32{1, 2}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestDataRejectsMismatchedSampleType(t *testing.T) {
	tr := newTestTrace(t, format.Steim2, 512)

	_, err := Data(tr, nil, []float64{1}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestSingleSampleShiftsPredictorPair(t *testing.T) {
	tr := newTestTrace(t, format.Int32, 128, trace.WithPredictorState(7, 3))

	_, err := Data(tr, nil, []int32{9}, nil)
	require.NoError(t, err)

	require.Equal(t, int32(9), tr.Xm1)
	require.Equal(t, int32(7), tr.Xm2)
	require.Equal(t, int32(9), tr.X0)
	require.Equal(t, int32(9), tr.Xn)
}

func TestInt16OverflowAbandonsRecord(t *testing.T) {
	tr := newTestTrace(t, format.Int16, 128)

	res, err := Data(tr, nil, []int32{1, 2, 1 << 20}, nil)
	require.ErrorIs(t, err, errs.ErrSampleOverflow)
	require.Zero(t, res.Records)
	require.Zero(t, res.Samples)
	require.Zero(t, tr.SeqNo)
}
