/*
DESCRIPTION
  ld-comb-decode reads a stream of NTSC field-pair records and writes the
  decoded RGB48 frame stream.

  Usage:
    ld-comb-decode [-width n] [-height n] [-depth n] [-flow] [input-file|-]

  Each input record is a recordHeader (see comb/pipeline.go) followed by
  two fieldWidth*fieldHeight little-endian uint16 field buffers.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"

	"github.com/wbirkmaier/ld-decode/comb"
	"github.com/wbirkmaier/ld-decode/comb/flow"
	"github.com/wbirkmaier/ld-decode/ldconfig"
)

func main() {
	width := flag.Int("width", 0, "field width in samples (default 910)")
	height := flag.Int("height", 0, "field height in lines (default 263)")
	depth := flag.Int("depth", 0, "comb filter depth, 1-3 (default 3)")
	adaptive2D := flag.Bool("adaptive-2d", true, "enable adaptive 1D/2D comb mixing")
	colorLPF := flag.Bool("color-lpf", true, "enable the dedicated colour low-pass filter")
	colorLPFHQ := flag.Bool("color-lpf-hq", true, "select the high-quality colour low-pass variant")
	useFlow := flag.Bool("flow", false, "gate 3D comb decoding with dense optical flow")
	blackAndWhite := flag.Bool("bw", false, "disable chroma decoding")
	verbosity := flag.Int("log-level", int(logging.Info), "log verbosity (0=Debug .. 4=Fatal)")
	flag.Parse()

	log := logging.New(int8(*verbosity), os.Stderr, true)

	cfg := ldconfig.Config{
		Logger:        log,
		FieldWidth:    *width,
		FieldHeight:   *height,
		FilterDepth:   *depth,
		Adaptive2D:    *adaptive2D,
		ColorLPF:      *colorLPF,
		ColorLPFHQ:    *colorLPFHQ,
		OpticalFlow:   *useFlow,
		BlackAndWhite: *blackAndWhite,
	}

	var flowEst flow.Estimator
	if *useFlow {
		flowEst = flow.NewFarneback()
	}

	p, err := comb.NewPipeline(cfg, flowEst)
	if err != nil {
		log.Fatal("could not build comb pipeline", "error", err.Error())
		os.Exit(1)
	}

	in, err := openInput(flag.Arg(0))
	if err != nil {
		log.Fatal("could not open input", "error", err.Error())
		os.Exit(1)
	}
	defer in.Close()

	if err := p.Run(in, os.Stdout); err != nil {
		log.Fatal("comb pipeline failed", "error", err.Error())
		os.Exit(1)
	}
}

func openInput(name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return os.Stdin, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	return f, nil
}
