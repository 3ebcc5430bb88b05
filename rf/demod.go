/*
DESCRIPTION
  demod.go implements the heterodyne FM demodulator that converts a raw RF
  sample block into a luma-frequency estimate per sample.
*/

// Package rf provides the RF-to-luma FM demodulator and deemphasis stages
// of the decode pipeline.
package rf

import (
	"math"

	"github.com/pkg/errors"

	"github.com/wbirkmaier/ld-decode/dsp"
)

// chz is the capture frequency basis (315/88 * 8 MHz), used to convert a
// candidate carrier frequency into cycles per sample for the per-candidate
// phasor tables.
const chz = 1000000.0 * (315.0 / 88.0) * 8.0

const agcBins = 40

// Demodulator estimates the instantaneous luma frequency of an RF sample
// block by mixing against a set of candidate carrier frequencies and
// picking, each sample, the candidate whose phase advanced least from the
// previous sample.
//
// A Demodulator is not safe for concurrent use; each decode stream should
// own its own instance.
type Demodulator struct {
	linelen   int
	fb        []float64
	prefilt   []*dsp.Filter
	fi, fq    []*dsp.Filter
	post      *dsp.Filter
	sinTab    [][]float64 // sinTab[candidate][sample]
	cosTab    [][]float64
	avglevel  [agcBins]float64
	minOffset int

	phase []float64 // per-candidate phase carried across Process calls
}

// NewDemodulator constructs a Demodulator for the given block length and
// candidate carrier frequencies (Hz). prefilt is applied, in order, to every
// raw sample before candidate mixing. filt is the per-candidate I/Q lowpass
// prototype; it is cloned independently for the I and Q arm of each
// candidate so their running state never aliases. post, if non-nil, is
// applied to the selected per-sample frequency estimate before output.
// minOffset is the leading warm-up length, in samples, whose output is
// suppressed on every call to Process.
func NewDemodulator(linelen int, fb []float64, prefilt []*dsp.Filter, filt []*dsp.Filter, post *dsp.Filter, minOffset int) (*Demodulator, error) {
	if linelen <= 0 {
		return nil, errors.New("rf: linelen must be positive")
	}
	if len(fb) == 0 {
		return nil, errors.New("rf: at least one candidate frequency required")
	}
	if len(filt) != len(fb) {
		return nil, errors.New("rf: filt must have one entry per candidate frequency")
	}
	if minOffset < 0 || minOffset >= linelen {
		return nil, errors.New("rf: minOffset must be non-negative and less than linelen")
	}

	d := &Demodulator{
		linelen:   linelen,
		fb:        append([]float64(nil), fb...),
		prefilt:   prefilt,
		post:      post,
		minOffset: minOffset,
		phase:     make([]float64, len(fb)),
	}

	for j, f := range fb {
		fmult := f / chz
		sinRow := make([]float64, linelen)
		cosRow := make([]float64, linelen)
		for i := 0; i < linelen; i++ {
			sinRow[i] = math.Sin(float64(i) * 2 * math.Pi * fmult)
			cosRow[i] = math.Cos(float64(i) * 2 * math.Pi * fmult)
		}
		d.sinTab = append(d.sinTab, sinRow)
		d.cosTab = append(d.cosTab, cosRow)

		d.fi = append(d.fi, filt[j].Clone())
		d.fq = append(d.fq, filt[j].Clone())
	}

	for i := range d.avglevel {
		d.avglevel[i] = 30
	}

	return d, nil
}

// MinOffset returns the configured leading warm-up length, in samples, that
// Process suppresses from its output on every call.
func (d *Demodulator) MinOffset() int { return d.minOffset }

// Process demodulates one sample block, returning one frequency estimate in
// Hz per input sample from index MinOffset onward (the leading warm-up
// samples are dropped), with muted samples reported as 0. A block
// shorter than the configured linelen yields a nil slice (the caller is
// expected to accumulate more samples and retry).
func (d *Demodulator) Process(in []float64) []float64 {
	if len(in) < d.linelen {
		return nil
	}

	out := make([]float64, 0, len(in))
	nCand := len(d.fb)
	angle := make([]float64, nCand)
	level := make([]float64, nCand)

	for i, n := range in {
		for _, f := range d.prefilt {
			n = f.Feed(n)
		}

		peak := 500000.0
		pf := 0.0
		npeak := 0

		for j, f := range d.fb {
			var sinV, cosV float64
			if i < d.linelen {
				sinV, cosV = d.sinTab[j][i], d.cosTab[j][i]
			} else {
				w := float64(i) * 2 * math.Pi * (f / chz)
				sinV, cosV = math.Sin(w), math.Cos(w)
			}
			fci := d.fi[j].Feed(n * sinV)
			fcq := d.fq[j].Feed(-n * cosV)
			at2 := dsp.FastAtan2(fci, fcq)

			level[j] = math.Hypot(fci, fcq)

			a := at2 - d.phase[j]
			if a > math.Pi {
				a -= 2 * math.Pi
			} else if a < -math.Pi {
				a += 2 * math.Pi
			}
			angle[j] = a

			if math.Abs(a) < math.Abs(peak) {
				npeak = j
				peak = a
				pf = f + (f/2.0)*a
			}
			d.phase[j] = at2
		}

		thisout := pf
		if d.post != nil {
			thisout = d.post.Feed(pf)
		}

		if i < d.minOffset {
			continue
		}

		bin := int((thisout - 7600000) / 200000)
		if bin < 0 {
			bin = 0
		}
		if bin >= agcBins {
			bin = agcBins - 1
		}
		d.avglevel[bin] *= 0.9
		d.avglevel[bin] += level[npeak] * 0.1

		if level[npeak]/d.avglevel[bin] > 0.3 {
			out = append(out, thisout)
		} else {
			out = append(out, 0)
		}
	}

	return out
}
