package trace

import (
	"time"

	"github.com/seismic-go/mseedpack/endian"
	"github.com/seismic-go/mseedpack/internal/options"
)

// Option configures a Header at construction time.
type Option = options.Option[*Header]

func apply(h *Header, opts []Option) error {
	return options.Apply(h, opts...)
}

// WithWordOrder sets the payload word order for the trace. The fixed
// header is always written big-endian.
func WithWordOrder(w endian.WordOrder) Option {
	return options.NoError(func(h *Header) { h.DataWordOrder = w })
}

// WithHdrTime overrides the initial HdrTime (defaults to BegTime).
func WithHdrTime(t time.Time) Option {
	return options.NoError(func(h *Header) { h.HdrTime = t })
}

// WithBlockette prepends a persistent blockette (e.g. an actual-rate
// blockette 100) to the trace's blockette chain.
func WithBlockette(b *Blockette) Option {
	return options.NoError(func(h *Header) {
		b.Next = h.Blockettes
		h.Blockettes = b
	})
}

// WithPredictorState seeds the Steim/integer predictor continuity state,
// used when resuming packing of a stream whose prior two samples are
// known but were packed by a previous, unrelated Header value.
func WithPredictorState(xm1, xm2 int32) Option {
	return options.NoError(func(h *Header) {
		h.Xm1 = xm1
		h.Xm2 = xm2
	})
}
