package comb

import (
	"testing"

	"github.com/ausocean/utils/logging"

	"github.com/wbirkmaier/ld-decode/comb/flow"
	"github.com/wbirkmaier/ld-decode/ldconfig"
)

type dumbLogger struct{}

func (dumbLogger) Log(int8, string, ...interface{}) {}
func (dumbLogger) SetLevel(int8)                    {}
func (dumbLogger) Debug(string, ...interface{})     {}
func (dumbLogger) Info(string, ...interface{})      {}
func (dumbLogger) Warning(string, ...interface{})   {}
func (dumbLogger) Error(string, ...interface{})     {}
func (dumbLogger) Fatal(string, ...interface{})     {}

var _ logging.Logger = dumbLogger{}

func smallConfig() ldconfig.Config {
	return ldconfig.Config{
		Logger:                dumbLogger{},
		FieldWidth:            120,
		FieldHeight:           20,
		ActiveVideoStart:      20,
		ActiveVideoEnd:        100,
		FirstVisibleFrameLine: 2,
		FilterDepth:           2,
		Adaptive2D:            true,
		ColorLPF:              true,
		BlackIRE:              15360,
		WhiteIRE:              51200,
	}
}

func constantField(cfg ldconfig.Config, val uint16) []uint16 {
	out := make([]uint16, cfg.FieldWidth*cfg.FieldHeight)
	for i := range out {
		out[i] = val
	}
	return out
}

func TestDecoderConstantInputProducesGreyFrame(t *testing.T) {
	cfg := smallConfig()
	dec, err := NewDecoder(cfg, nil)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	const midGrey = 32768
	f1 := constantField(cfg, midGrey)
	f2 := constantField(cfg, midGrey)

	rgb, err := dec.Process(f1, f2, 50, 1, 1)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(rgb) == 0 {
		t.Fatal("expected non-empty RGB output")
	}

	// A flat composite signal carries no chroma (I=Q=0 at every pixel), so
	// Y passes through the YIQ-to-RGB matrix unchanged on all three
	// channels: every active pixel should equal the same computable grey
	// level, and every pixel outside the active window should stay zero.
	want := scaleIRE(midGrey, cfg.BlackIRE, cfg.WhiteIRE)

	for i := 0; i+2 < len(rgb); i += 3 {
		px := i / 3
		col := px % cfg.FieldWidth
		line := px / cfg.FieldWidth
		active := line >= cfg.FirstVisibleFrameLine && col >= cfg.ActiveVideoStart && col < cfg.ActiveVideoEnd

		r, g, b := rgb[i], rgb[i+1], rgb[i+2]
		if r != g || g != b {
			t.Fatalf("pixel %d not grey: r=%d g=%d b=%d", px, r, g, b)
		}
		if active && r != want {
			t.Fatalf("active pixel %d = %d, want computed grey level %d", px, r, want)
		}
		if !active && r != 0 {
			t.Fatalf("inactive pixel %d = %d, want 0", px, r)
		}
	}
}

func TestDecoderWarmingUpSentinel(t *testing.T) {
	cfg := smallConfig()
	cfg.FilterDepth = 3
	cfg.OpticalFlow = false

	dec, err := NewDecoder(cfg, nil)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	f1 := constantField(cfg, 32768)
	f2 := constantField(cfg, 32768)

	for i := 0; i < 2; i++ {
		_, err := dec.Process(f1, f2, 50, 1, 1)
		if err != ErrWarmingUp {
			t.Fatalf("Process call %d: got err=%v, want ErrWarmingUp", i, err)
		}
	}

	rgb, err := dec.Process(f1, f2, 50, 1, 1)
	if err != nil {
		t.Fatalf("expected third Process call to succeed, got %v", err)
	}
	if len(rgb) == 0 {
		t.Fatal("expected non-empty RGB output after warm-up")
	}
}

func TestDecoderOpticalFlowRequiresEstimator(t *testing.T) {
	cfg := smallConfig()
	cfg.FilterDepth = 3
	cfg.OpticalFlow = true

	if _, err := NewDecoder(cfg, nil); err == nil {
		t.Fatal("expected error constructing decoder with OpticalFlow but no Estimator")
	}

	if _, err := NewDecoder(cfg, flow.NewFarneback()); err != nil {
		t.Fatalf("NewDecoder with estimator supplied: %v", err)
	}
}
