package pack

import (
	"fmt"

	"github.com/seismic-go/mseedpack/endian"
	"github.com/seismic-go/mseedpack/errs"
	"github.com/seismic-go/mseedpack/internal/encoding"
)

// payloadEncoder is the capability set the record loop needs from an
// encoding: pack the leading run of remaining samples into one record's
// payload region, and expose the consumed samples when the predictor
// continuity contract applies.
type payloadEncoder interface {
	// remaining reports how many samples are left to pack.
	remaining() int
	// encodeRecord packs the leading run of the remaining samples into
	// payload and advances past the consumed run. It reports how many
	// samples it consumed; on error nothing is considered consumed.
	encodeRecord(payload []byte, order endian.EndianEngine) (int, error)
	// predictorRelevant reports whether x0/xn/xm1/xm2 carry meaning for
	// this encoding.
	predictorRelevant() bool
	// sample returns the i-th sample of the call's input as an int32.
	// Only meaningful when predictorRelevant reports true.
	sample(i int) int32
}

// steimEncoder drives PackSteim1/PackSteim2 over precomputed
// whole-call differences, so every record's diff window agrees with
// its neighbors.
type steimEncoder struct {
	two     bool // Steim-2 bucket table instead of Steim-1
	samples []int32
	diffs   []int32
	pos     int
}

func (e *steimEncoder) remaining() int { return len(e.samples) - e.pos }

func (e *steimEncoder) encodeRecord(payload []byte, order endian.EndianEngine) (int, error) {
	frames := len(payload) / encoding.FrameSize
	if frames == 0 {
		return 0, fmt.Errorf("%w: record leaves no room for a Steim frame", errs.ErrInvalidArgument)
	}

	region := payload[:frames*encoding.FrameSize]

	var res encoding.SteimResult
	var err error
	if e.two {
		res, err = encoding.PackSteim2(region, e.samples[e.pos:], e.diffs[e.pos:], 0, order)
	} else {
		res, err = encoding.PackSteim1(region, e.samples[e.pos:], e.diffs[e.pos:], 0, order)
	}
	if err != nil {
		return 0, err
	}

	e.pos += res.SamplesConsumed

	return res.SamplesConsumed, nil
}

func (e *steimEncoder) predictorRelevant() bool { return true }
func (e *steimEncoder) sample(i int) int32      { return e.samples[i] }

// intEncoder drives one of the fixed-width integer writers. The
// predictor state is still maintained for these encodings so a caller
// may switch the trace to a Steim channel between calls.
type intEncoder struct {
	samples []int32
	pos     int
	write   func([]byte, []int32, endian.EndianEngine) (encoding.FixedResult, error)
}

func (e *intEncoder) remaining() int { return len(e.samples) - e.pos }

func (e *intEncoder) encodeRecord(payload []byte, order endian.EndianEngine) (int, error) {
	res, err := e.write(payload, e.samples[e.pos:], order)
	if err != nil {
		return 0, err
	}

	e.pos += res.SamplesConsumed

	return res.SamplesConsumed, nil
}

func (e *intEncoder) predictorRelevant() bool { return true }
func (e *intEncoder) sample(i int) int32      { return e.samples[i] }

// floatEncoder drives the IEEE-754 writers. Predictor fields are
// zeroed on exit, so sample is never consulted.
type floatEncoder[T float32 | float64] struct {
	samples []T
	pos     int
	write   func([]byte, []T, endian.EndianEngine) encoding.FixedResult
}

func (e *floatEncoder[T]) remaining() int { return len(e.samples) - e.pos }

func (e *floatEncoder[T]) encodeRecord(payload []byte, order endian.EndianEngine) (int, error) {
	res := e.write(payload, e.samples[e.pos:], order)
	e.pos += res.SamplesConsumed

	return res.SamplesConsumed, nil
}

func (e *floatEncoder[T]) predictorRelevant() bool { return false }
func (e *floatEncoder[T]) sample(int) int32        { return 0 }

// textEncoder copies opaque log/text bytes; one "sample" is one byte.
type textEncoder struct {
	data []byte
	pos  int
}

func (e *textEncoder) remaining() int { return len(e.data) - e.pos }

func (e *textEncoder) encodeRecord(payload []byte, _ endian.EndianEngine) (int, error) {
	res := encoding.PackText(payload, e.data[e.pos:])
	e.pos += res.SamplesConsumed

	return res.SamplesConsumed, nil
}

func (e *textEncoder) predictorRelevant() bool { return false }
func (e *textEncoder) sample(int) int32        { return 0 }
