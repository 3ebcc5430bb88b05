package ldconfig

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type dumbLogger struct{}

func (dumbLogger) Log(int8, string, ...interface{}) {}
func (dumbLogger) SetLevel(int8)                    {}
func (dumbLogger) Debug(string, ...interface{})     {}
func (dumbLogger) Info(string, ...interface{})      {}
func (dumbLogger) Warning(string, ...interface{})   {}
func (dumbLogger) Error(string, ...interface{})     {}
func (dumbLogger) Fatal(string, ...interface{})     {}

func TestValidateDefaults(t *testing.T) {
	dl := dumbLogger{}
	got := Config{Logger: dl}
	if err := got.Validate(); err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	want := Config{
		Logger:                dl,
		FieldWidth:            defaultFieldWidth,
		FieldHeight:           defaultFieldHeight,
		ActiveVideoStart:      defaultActiveVideoStart,
		ActiveVideoEnd:        defaultActiveVideoEnd,
		FirstVisibleFrameLine: defaultFirstVisibleFrameLine,
		FilterDepth:           defaultFilterDepth,
		BlackIRE:              defaultBlackIRE,
		WhiteIRE:              defaultWhiteIRE,
		CandidateFreqs:        DefaultCandidateFreqs,
		LineLen:               defaultLineLen,
		MinOffset:             defaultMinOffset,
	}

	if !cmp.Equal(got, want) {
		t.Errorf("configs not equal\nwant: %+v\ngot: %+v", want, got)
	}
}

func TestValidateRejectsBadActiveVideoRange(t *testing.T) {
	c := Config{Logger: dumbLogger{}, ActiveVideoStart: 100, ActiveVideoEnd: 50}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for ActiveVideoEnd <= ActiveVideoStart")
	}
}

func TestValidateRejectsOversizedGeometry(t *testing.T) {
	cases := []Config{
		{Logger: dumbLogger{}, FieldWidth: 2000},
		{Logger: dumbLogger{}, ActiveVideoStart: 8, ActiveVideoEnd: 100},
		{Logger: dumbLogger{}, FieldHeight: 400},
	}
	for i, c := range cases {
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected error for out-of-range geometry, got nil", i)
		}
	}
}

func TestValidateRejectsOpticalFlowWithoutDepth3(t *testing.T) {
	c := Config{Logger: dumbLogger{}, FilterDepth: 2, OpticalFlow: true}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for OpticalFlow without FilterDepth 3")
	}
}

func TestUpdate(t *testing.T) {
	dl := dumbLogger{}
	c := Config{Logger: dl}
	c.Update(map[string]string{
		KeyFieldWidth:     "910",
		KeyAdaptive2D:     "true",
		KeyBlackIRE:       "7.5",
		KeyCandidateFreqs: "8100000,8700000,9300000",
	})

	if c.FieldWidth != 910 {
		t.Errorf("FieldWidth = %d, want 910", c.FieldWidth)
	}
	if !c.Adaptive2D {
		t.Error("Adaptive2D = false, want true")
	}
	if c.BlackIRE != 7.5 {
		t.Errorf("BlackIRE = %v, want 7.5", c.BlackIRE)
	}
	want := []float64{8100000, 8700000, 9300000}
	if !cmp.Equal(c.CandidateFreqs, want) {
		t.Errorf("CandidateFreqs = %v, want %v", c.CandidateFreqs, want)
	}
}
