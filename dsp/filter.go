/*
DESCRIPTION
  filter.go provides a generic direct-form FIR/IIR filter with per-instance
  state, the foundation for every DSP stage in the RF demodulator and comb
  decoder.
*/

// Package dsp provides the direct-form filter kernel and the normative
// coefficient vectors shared by the RF demodulator and comb decoder.
package dsp

// Filter is an ordered sequence of numerator coefficients b, optionally the
// same number of denominator coefficients a, and two sliding windows
// (input/output history). A zero Filter is not usable; construct one with
// New.
//
// Filter is a value type in the sense that Clone duplicates coefficients
// and resets state; the Filter itself is held and fed through a pointer so
// that repeated Feed calls mutate a single instance's history in place.
type Filter struct {
	order int // len(b), i.e. number of taps.
	isIIR bool
	a     []float64
	b     []float64
	x     []float64 // Input history, x[0] is most recent.
	y     []float64 // Output history, y[0] is most recent.
}

// New constructs a Filter from numerator coefficients b and, optionally,
// denominator coefficients a. A nil (or empty) a means a pure FIR filter
// with an implicit a = [1].
func New(b, a []float64) *Filter {
	f := &Filter{
		order: len(b),
		isIIR: len(a) > 0,
		b:     append([]float64(nil), b...),
	}
	if f.isIIR {
		f.a = append([]float64(nil), a...)
	} else {
		f.a = []float64{1}
	}
	f.x = make([]float64, f.order)
	f.y = make([]float64, f.order)
	return f
}

// Clone duplicates a Filter's coefficients into a new Filter with freshly
// cleared (zeroed) history.
func (f *Filter) Clone() *Filter {
	nf := &Filter{
		order: f.order,
		isIIR: f.isIIR,
		a:     append([]float64(nil), f.a...),
		b:     append([]float64(nil), f.b...),
		x:     make([]float64, f.order),
		y:     make([]float64, f.order),
	}
	return nf
}

// Clear fills both the input and output histories with val.
func (f *Filter) Clear(val float64) {
	for i := range f.x {
		f.x[i] = val
		f.y[i] = val
	}
}

// Feed advances the filter by one sample and returns the new output.
//
//	y[0] = (sum_k b[k]*x[k] - sum_{k>0} a[k]*y[k]) / a[0]
//
// with a == [1] for a pure FIR path.
func (f *Filter) Feed(val float64) float64 {
	// Shift histories: position 0 is freed for the new sample/output.
	copy(f.x[1:], f.x[:f.order-1])
	if f.isIIR {
		copy(f.y[1:], f.y[:f.order-1])
	}
	f.x[0] = val

	var y0 float64
	if f.isIIR {
		a0 := f.a[0]
		for o := 0; o < f.order; o++ {
			y0 += (f.b[o] / a0) * f.x[o]
			if o > 0 {
				y0 -= (f.a[o] / a0) * f.y[o]
			}
		}
	} else if f.order == 13 {
		// Pipeline-friendly unrolled path for the common 13-tap case, a
		// direct port of the original's cycled-destination accumulation.
		var t [4]float64
		t[0] = f.b[0] * f.x[0]
		t[1] = f.b[1] * f.x[1]
		t[2] = f.b[2] * f.x[2]
		t[3] = f.b[3] * f.x[3]
		t[0] += f.b[4] * f.x[4]
		t[1] += f.b[5] * f.x[5]
		t[2] += f.b[6] * f.x[6]
		t[3] += f.b[7] * f.x[7]
		t[0] += f.b[8] * f.x[8]
		t[1] += f.b[9] * f.x[9]
		t[2] += f.b[10] * f.x[10]
		t[3] += f.b[11] * f.x[11]
		y0 = t[0] + t[1] + t[2] + t[3] + f.b[12]*f.x[12]
	} else {
		for o := 0; o < f.order; o++ {
			y0 += f.b[o] * f.x[o]
		}
	}

	f.y[0] = y0
	return y0
}

// Value returns the most recent output without feeding a new sample.
func (f *Filter) Value() float64 { return f.y[0] }

// Order returns the number of taps (len(b)).
func (f *Filter) Order() int { return f.order }
