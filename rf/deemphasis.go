/*
DESCRIPTION
  deemphasis.go implements the charge-compensated deemphasis stage that
  converts a demodulated frequency estimate into a 16-bit luma sample.
*/

package rf

import (
	"math"

	"github.com/wbirkmaier/ld-decode/dsp"
)

const (
	lumaLow  = 7600000.0
	lumaHigh = 9300000.0
)

// runningMean16 is the 16-tap unweighted running-mean FIR used to smooth
// the sample-to-sample delta feeding the charge adjustment curve.
var runningMean16 = func() []float64 {
	c := make([]float64, 16)
	for i := range c {
		c[i] = 1.0 / 16.0
	}
	return c
}()

// Deemphasis applies the single-sample-feedback charge compensator to a
// stream of demodulated frequency estimates, producing 16-bit output
// samples scaled to the configured luma range.
//
// A Deemphasis is not safe for concurrent use.
type Deemphasis struct {
	charge float64
	prev   float64
	avg    *dsp.Filter
}

// NewDeemphasis constructs a Deemphasis with its charge compensator at rest.
func NewDeemphasis() *Deemphasis {
	return &Deemphasis{
		prev: 8700000,
		avg:  dsp.New(runningMean16, nil),
	}
}

// Feed advances the compensator by one frequency estimate in Hz. A zero
// input (the demodulator's mute marker) is passed through as a zero output
// sample rather than being charge-compensated.
func (d *Deemphasis) Feed(n float64) uint16 {
	if n <= 0 {
		return 0
	}

	adj := math.Pow(d.avg.Feed(math.Abs(n-d.prev))/400000.0, 0.60)
	d.charge += n - d.prev
	d.prev = n

	f := 0.85 - adj*0.50
	if f < 0 {
		f = 0
	}
	n -= d.charge * f
	d.charge *= 0.88

	n -= lumaLow
	n /= lumaHigh - lumaLow
	if n < 0 {
		n = 0
	}

	out := 1 + math.Round(n*57344.0)
	if out > 65535 {
		out = 65535
	}
	return uint16(out)
}
