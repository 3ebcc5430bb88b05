package rf

import (
	"bytes"
	"io"
	"testing"

	"github.com/ausocean/utils/logging"

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

func TestPipelineHandlesShortRead(t *testing.T) {
	cfg := &ldconfig.Config{Logger: dumbLogger{}}
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	// Fewer bytes than one block; Run must return cleanly on the
	// resulting EOF rather than erroring.
	in := bytes.NewReader(make([]byte, 100))
	var out bytes.Buffer
	if err := p.Run(in, &out); err != nil {
		t.Fatalf("Run with short input: %v", err)
	}
}

func TestPipelineProcessesOneBlock(t *testing.T) {
	cfg := &ldconfig.Config{Logger: dumbLogger{}}
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	// 2048 is ldconfig's default LineLen, which NewPipeline used here since
	// cfg.LineLen is left at its zero value.
	raw := make([]byte, 2048+500)
	for i := range raw {
		raw[i] = byte(128 + 10*(i%7-3))
	}

	var out bytes.Buffer
	if err := p.Run(bytes.NewReader(raw), &out); err != nil && err != io.EOF {
		t.Fatalf("Run: %v", err)
	}
	if out.Len() == 0 {
		t.Error("expected some output bytes from a full block")
	}
	if out.Len()%2 != 0 {
		t.Errorf("output length %d not a multiple of 2 (uint16 samples)", out.Len())
	}
}
