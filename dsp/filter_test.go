package dsp

import (
	"math"
	"testing"
)

func TestFIRConstantInput(t *testing.T) {
	// A normalised low-pass fed a constant should converge to that constant.
	f := New(LPF50x16, nil)
	const in = 1234.5
	var out float64
	for i := 0; i < 200; i++ {
		out = f.Feed(in)
	}
	sum := 0.0
	for _, c := range LPF50x16 {
		sum += c
	}
	want := in * sum
	if math.Abs(out-want) > 1e-6 {
		t.Errorf("converged output = %v, want %v", out, want)
	}
}

func TestFeedLinearity(t *testing.T) {
	// Feeding a scaled input through two fresh filters of identical
	// coefficients should scale the output identically (FIR linearity).
	in := []float64{0.1, -0.4, 0.9, 1.2, -2.3, 0.0, 5.5}
	const k = 3.0

	f1 := New(Boost40, nil)
	f2 := New(Boost40, nil)

	for _, v := range in {
		o1 := f1.Feed(v)
		o2 := f2.Feed(k * v)
		if math.Abs(o2-k*o1) > 1e-9 {
			t.Fatalf("linearity violated: f(kx)=%v, k*f(x)=%v", o2, k*o1)
		}
	}
}

func TestCloneIsIndependentAndDeterministic(t *testing.T) {
	f := New(Hamming17, nil)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		f.Feed(v)
	}
	clone := f.Clone()

	if clone.Value() != 0 {
		t.Errorf("clone history not cleared, Value() = %v", clone.Value())
	}

	// Feeding the same sequence into both should now produce identical
	// outputs, since clone started from a clean, identical-coefficient state.
	fresh := New(Hamming17, nil)
	seq := []float64{7, -2, 0.5, 3, 3, 3}
	for _, v := range seq {
		a := clone.Feed(v)
		b := fresh.Feed(v)
		if a != b {
			t.Fatalf("clone diverged from fresh filter: %v != %v", a, b)
		}
	}
}

func TestIIRAllpass(t *testing.T) {
	f := New(Allpass32B, Allpass32A)
	if f.Order() != len(Allpass32B) {
		t.Fatalf("Order() = %d, want %d", f.Order(), len(Allpass32B))
	}
	// An IIR filter fed zeros from a cleared state stays at zero.
	for i := 0; i < 10; i++ {
		if out := f.Feed(0); out != 0 {
			t.Fatalf("feed(0) from zero state = %v, want 0", out)
		}
	}
}

func TestClear(t *testing.T) {
	f := New(LPF50x16, nil)
	f.Feed(100)
	f.Feed(200)
	f.Clear(42)
	if f.Value() != 42 {
		t.Errorf("Value() after Clear(42) = %v, want 42", f.Value())
	}
}

func TestFastAtan2Accuracy(t *testing.T) {
	const tol = 0.005
	cases := []struct{ y, x float64 }{
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
		{0, 1}, {0, -1}, {1, 0}, {-1, 0},
		{0.1, 5}, {5, 0.1}, {-3, 7}, {7, -3},
	}
	for _, c := range cases {
		got := FastAtan2(c.y, c.x)
		want := math.Atan2(c.y, c.x)
		if math.Abs(got-want) > tol {
			t.Errorf("FastAtan2(%v, %v) = %v, want ~%v (tol %v)", c.y, c.x, got, want, tol)
		}
	}
}
