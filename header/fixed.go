// Package header implements the SDR header layer: fixed-header layout,
// the blockette linked list, and calendar arithmetic. The packing
// driver in package pack consumes these as opaque operations; it never
// pokes at header bytes directly.
package header

import (
	"fmt"
	"time"

	"github.com/seismic-go/mseedpack/errs"
	"github.com/seismic-go/mseedpack/format"
	"github.com/seismic-go/mseedpack/trace"
)

// FixedHeaderSize is the byte length of the SEED fixed section of data
// header, before any blockettes.
const FixedHeaderSize = 48

// Byte offsets within the fixed header, per the SEED manual's fixed
// section of data header layout.
const (
	offSeqNum     = 0  // 6 ASCII digits
	offQuality    = 6  // 1 byte
	offReserved   = 7  // 1 byte, space
	offStation    = 8  // 5 bytes
	offLocation   = 13 // 2 bytes
	offChannel    = 15 // 3 bytes
	offNetwork    = 18 // 2 bytes
	offStartTime  = 20 // 10-byte BTIME
	offNumSamples = 30 // uint16
	offRateFactor = 32 // int16
	offRateMult   = 34 // int16
	offActivity   = 36 // 1 byte
	offIOFlags    = 37 // 1 byte
	offDQFlags    = 38 // 1 byte
	offNumBlks    = 39 // 1 byte
	offTimeCorr   = 40 // int32
	offBegData    = 44 // uint16, first_data
	offBegBlks    = 46 // uint16, offset of first blockette
)

const btimeSize = 10

// putBTIME writes t as a SEED BTIME: 2-byte year, 2-byte day-of-year,
// 1-byte hour, 1-byte minute, 1-byte second, 1 unused byte, 2-byte
// .0001-second ticks. Always big-endian regardless of data_wordorder;
// this library writes the fixed header in network byte order.
func putBTIME(dst []byte, t time.Time) {
	ut := t.UTC()
	be := format.HeaderByteOrder()
	be.PutUint16(dst[0:2], uint16(ut.Year()))
	be.PutUint16(dst[2:4], uint16(ut.YearDay()))
	dst[4] = byte(ut.Hour())
	dst[5] = byte(ut.Minute())
	dst[6] = byte(ut.Second())
	dst[7] = 0
	ticks := uint16(ut.Nanosecond() / 100000)
	be.PutUint16(dst[8:10], ticks)
}

func getBTIME(src []byte) time.Time {
	be := format.HeaderByteOrder()
	year := int(be.Uint16(src[0:2]))
	yday := int(be.Uint16(src[2:4]))
	hour := int(src[4])
	min := int(src[5])
	sec := int(src[6])
	ticks := int(be.Uint16(src[8:10]))

	return time.Date(year, time.January, 1, hour, min, sec, ticks*100000, time.UTC).
		AddDate(0, 0, yday-1)
}

func putFixedStr(dst []byte, s string, pad byte) {
	n := copy(dst, s)
	for ; n < len(dst); n++ {
		dst[n] = pad
	}
}

// rateFactor converts a rational nominal rate into the SEED packed
// "sample rate factor" convention: positive means samples/second,
// negative means the reciprocal (seconds/sample), chosen to avoid
// truncating a sub-1Hz rate to zero.
func rateFactor(rate float64) int16 {
	if rate == 0 {
		return 0
	}
	if rate >= 1 {
		return int16(rate + 0.5)
	}

	return -int16(1/rate + 0.5)
}

// InitHeader materializes the fixed SDR header and blockette chain for
// one record into dst[:tr.Blksize], ensures a blockette 1000 is present
// (synthesizing one from tr's DataType/DataWordOrder/Blksize if the
// caller didn't supply one via extra), and sets tr.FirstData to the
// byte offset where the payload begins.
//
// extra is prepended ahead of tr's own persistent blockette chain for
// this record only; it is the caller's responsibility to pass it on
// the first record of a call only.
func InitHeader(dst []byte, tr *trace.Header, extra *trace.Blockette) error {
	if len(dst) < FixedHeaderSize {
		return fmt.Errorf("%w: record buffer shorter than fixed header", errs.ErrHeaderInit)
	}

	for i := range dst[:FixedHeaderSize] {
		dst[i] = 0
	}

	be := format.HeaderByteOrder()

	putFixedStr(dst[offSeqNum:offSeqNum+6], fmt.Sprintf("%06d", (tr.SeqNo%1000000+1000000)%1000000), '0')
	dst[offQuality] = 'D'
	dst[offReserved] = ' '
	putFixedStr(dst[offStation:offStation+5], tr.Station, ' ')
	putFixedStr(dst[offLocation:offLocation+2], tr.Location, ' ')
	putFixedStr(dst[offChannel:offChannel+3], tr.Channel, ' ')
	putFixedStr(dst[offNetwork:offNetwork+2], tr.Network, ' ')
	putBTIME(dst[offStartTime:offStartTime+btimeSize], tr.HdrTime)
	be.PutUint16(dst[offNumSamples:offNumSamples+2], 0) // patched by UpdateHeader
	be.PutUint16(dst[offRateFactor:offRateFactor+2], uint16(rateFactor(tr.SampleRate)))
	be.PutUint16(dst[offRateMult:offRateMult+2], uint16(tr.SampleRateMult))
	dst[offActivity] = 0
	dst[offIOFlags] = 0
	dst[offDQFlags] = 0

	chain := extra.Clone()
	if last := chain; last != nil {
		for last.Next != nil {
			last = last.Next
		}
		last.Next = tr.Blockettes.Clone()
	} else {
		chain = tr.Blockettes.Clone()
	}
	if findCode(chain, format.BlocketteEncoder) == nil {
		chain = &trace.Blockette{
			Code: format.BlocketteEncoder,
			Body: buildBlockette1000(tr),
			Next: chain,
		}
	}

	nblk, n, err := writeBlockettes(dst[FixedHeaderSize:], chain)
	if err != nil {
		return err
	}

	dst[offNumBlks] = byte(nblk)
	be.PutUint16(dst[offBegBlks:offBegBlks+2], uint16(FixedHeaderSize))

	// The payload starts on the next 64-byte boundary past the blockette
	// chain, so Steim frames always begin frame-aligned and
	// (blksize - first_data) stays a multiple of 64.
	firstData := (FixedHeaderSize + n + 63) &^ 63
	if firstData > len(dst) {
		return fmt.Errorf("%w: blockette chain leaves no payload room", errs.ErrHeaderInit)
	}
	for i := FixedHeaderSize + n; i < firstData; i++ {
		dst[i] = 0
	}

	be.PutUint16(dst[offBegData:offBegData+2], uint16(firstData))
	be.PutUint32(dst[offTimeCorr:offTimeCorr+4], 0)

	tr.FirstData = firstData

	return nil
}

// UpdateHeader rewrites the fields that change once the payload is
// known: the record's final sample count.
func UpdateHeader(dst []byte, tr *trace.Header) error {
	if len(dst) < FixedHeaderSize {
		return fmt.Errorf("%w: record buffer shorter than fixed header", errs.ErrHeaderInit)
	}

	be := format.HeaderByteOrder()
	be.PutUint16(dst[offNumSamples:offNumSamples+2], uint16(tr.NumSamples))

	return nil
}

// Duplicate deep-clones tr, including its blockette chain, so the
// driver can mutate a working copy across a call without aliasing the
// caller's header.
func Duplicate(tr *trace.Header) *trace.Header {
	dup := *tr
	dup.Blockettes = tr.Blockettes.Clone()

	return &dup
}

// FindBlockette walks tr's persistent blockette chain for the given
// type code.
func FindBlockette(tr *trace.Header, code uint16) (*trace.Blockette, bool) {
	b := findCode(tr.Blockettes, code)
	if b == nil {
		return nil, false
	}

	return b, true
}

func findCode(chain *trace.Blockette, code uint16) *trace.Blockette {
	for b := chain; b != nil; b = b.Next {
		if b.Code == code {
			return b
		}
	}

	return nil
}
