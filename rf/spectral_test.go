package rf

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/mjibson/go-dsp/fft"
)

// TestDemodulatorDominantFrequencyBin feeds a pure cosine at one candidate
// frequency and checks that the dominant bin of the demodulated output's
// spectrum sits near DC, i.e. the demodulated "frequency" stream is
// approximately constant rather than oscillating at the input carrier.
func TestDemodulatorDominantFrequencyBin(t *testing.T) {
	d := newTestDemod(t)
	const f = 8700000.0
	n := 8192
	in := make([]float64, n)
	for i := range in {
		phase := float64(i) * 2 * math.Pi * (f / chz)
		in[i] = 64*math.Cos(phase) + 128
	}

	out := d.Process(in)
	if len(out) < 1024 {
		t.Fatalf("expected at least 1024 output samples, got %d", len(out))
	}

	tail := out[len(out)-1024:]
	spectrum := fft.FFTReal(tail)

	dcMag := cmplx.Abs(spectrum[0])
	total := 0.0
	for _, c := range spectrum {
		total += cmplx.Abs(c)
	}

	if total == 0 {
		t.Fatal("zero-energy spectrum")
	}
	if dcMag/total < 0.2 {
		t.Errorf("DC bin carries only %.2f%% of spectral energy, want a dominant near-DC component for a converged demod stream", 100*dcMag/total)
	}
}
