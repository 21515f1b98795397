package header

import (
	"math"
	"time"
)

// TimeInterval returns the elapsed duration covered by n samples at the
// given rational nominal rate. SEED sign conventions apply to both
// factors: a negative rate means seconds-per-sample, a negative
// multiplier divides instead of multiplies. A zero rate (text/opaque
// channels) yields zero.
func TimeInterval(n int, rate float64, mult int16) time.Duration {
	if rate == 0 || n <= 0 {
		return 0
	}

	effective := rate
	if effective < 0 {
		effective = -1 / effective
	}
	switch {
	case mult > 0:
		effective *= float64(mult)
	case mult < 0:
		effective /= float64(-mult)
	}

	seconds := float64(n) / effective

	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// AddTime returns t advanced by d.
func AddTime(t time.Time, d time.Duration) time.Time {
	return t.Add(d)
}

// AddDTime returns t advanced by a floating-point microsecond count, as
// used when a blockette 100's actual_rate (rather than the nominal
// rational rate) governs the advance.
func AddDTime(t time.Time, microseconds float64) time.Time {
	return t.Add(time.Duration(math.Round(microseconds * float64(time.Microsecond))))
}
