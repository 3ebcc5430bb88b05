/*
DESCRIPTION
  pipeline.go drives the comb Decoder over a stream of field-pair records,
  the Go equivalent of the reference decoder's capture-to-RGB conversion
  loop.
*/

package comb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ausocean/utils/logging"

	"github.com/wbirkmaier/ld-decode/comb/flow"
	"github.com/wbirkmaier/ld-decode/ldconfig"
)

// recordHeader is the fixed-size metadata prefix preceding each field
// pair's raw samples: first/second field phase IDs and the frame's median
// burst level in IRE, each a little-endian value.
type recordHeader struct {
	FirstPhaseID  int32
	SecondPhaseID int32
	BurstMedianIRE float64
}

const recordHeaderSize = 4 + 4 + 8

// Pipeline reads a sequence of field-pair records from an io.Reader and
// writes the resulting RGB48 frames to an io.Writer, skipping the warm-up
// period the Decoder needs before it has enough ring history.
type Pipeline struct {
	dec *Decoder
	log logging.Logger
	fw  int
	fh  int
}

// NewPipeline constructs a Pipeline from a validated ldconfig.Config. flowEst
// may be nil unless cfg.OpticalFlow is set.
func NewPipeline(cfg ldconfig.Config, flowEst flow.Estimator) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("comb: invalid config: %w", err)
	}

	dec, err := NewDecoder(cfg, flowEst)
	if err != nil {
		return nil, fmt.Errorf("comb: could not build decoder: %w", err)
	}

	return &Pipeline{dec: dec, log: cfg.Logger, fw: cfg.FieldWidth, fh: cfg.FieldHeight}, nil
}

// Run reads field-pair records from r until EOF and writes each decoded
// RGB48 frame, as packed little-endian uint16 samples, to w. Warm-up
// frames (ErrWarmingUp) are consumed silently; any other error aborts the
// run.
func (p *Pipeline) Run(r io.Reader, w io.Writer) error {
	fieldSamples := p.fw * p.fh
	headerBuf := make([]byte, recordHeaderSize)
	firstField := make([]uint16, fieldSamples)
	secondField := make([]uint16, fieldSamples)

	for {
		if _, err := io.ReadFull(r, headerBuf); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("comb: reading record header: %w", err)
		}
		hdr := recordHeader{
			FirstPhaseID:   int32(binary.LittleEndian.Uint32(headerBuf[0:4])),
			SecondPhaseID:  int32(binary.LittleEndian.Uint32(headerBuf[4:8])),
			BurstMedianIRE: math.Float64frombits(binary.LittleEndian.Uint64(headerBuf[8:16])),
		}

		if err := binary.Read(r, binary.LittleEndian, &firstField); err != nil {
			return fmt.Errorf("comb: reading first field: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &secondField); err != nil {
			return fmt.Errorf("comb: reading second field: %w", err)
		}

		rgb, err := p.dec.Process(firstField, secondField, hdr.BurstMedianIRE, int(hdr.FirstPhaseID), int(hdr.SecondPhaseID))
		if err != nil {
			if errors.Is(err, ErrWarmingUp) {
				p.log.Debug("comb: warming up")
				continue
			}
			return fmt.Errorf("comb: decode failed: %w", err)
		}

		if err := binary.Write(w, binary.LittleEndian, rgb); err != nil {
			return fmt.Errorf("comb: write failed: %w", err)
		}
	}
}
