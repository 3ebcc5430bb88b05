/*
DESCRIPTION
  pipeline.go drives the RF demodulator and deemphasis stages over a byte
  stream, the Go equivalent of the reference decoder's read-feed-write
  main loop.
*/

package rf

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ausocean/utils/logging"

	"github.com/wbirkmaier/ld-decode/dsp"
	"github.com/wbirkmaier/ld-decode/ldconfig"
)

// Pipeline reads raw RF bytes, demodulates them to a luma frequency per
// sample, deemphasises the result, and writes little-endian uint16 luma
// samples to an output stream.
type Pipeline struct {
	demod     *Demodulator
	deemp     *Deemphasis
	log       logging.Logger
	blockSize int // raw bytes read and demodulated per iteration; cfg.LineLen.
}

// NewPipeline constructs a Pipeline from a validated ldconfig.Config. It
// applies the default RF prefilter and I/Q lowpass per candidate frequency
// configured in cfg.CandidateFreqs, sizing the per-iteration demodulation
// block to cfg.LineLen and the warm-up gate to cfg.MinOffset.
func NewPipeline(cfg *ldconfig.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rf: invalid config: %w", err)
	}

	cfg.Logger.Debug("building rf demodulator", "candidates", cfg.CandidateFreqs, "lineLen", cfg.LineLen, "minOffset", cfg.MinOffset)

	prefilt := []*dsp.Filter{dsp.New(dsp.Boost40, nil)}
	filt := make([]*dsp.Filter, len(cfg.CandidateFreqs))
	for i := range filt {
		filt[i] = dsp.New(dsp.LPF50x16, nil)
	}

	demod, err := NewDemodulator(cfg.LineLen, cfg.CandidateFreqs, prefilt, filt, nil, cfg.MinOffset)
	if err != nil {
		return nil, fmt.Errorf("rf: could not build demodulator: %w", err)
	}
	cfg.Logger.Info("rf demodulator ready")

	return &Pipeline{
		demod:     demod,
		deemp:     NewDeemphasis(),
		log:       cfg.Logger,
		blockSize: cfg.LineLen,
	}, nil
}

// Run reads raw RF samples from r until EOF, demodulating and
// deemphasising them in blockSize-byte chunks, and writes the resulting
// little-endian uint16 luma stream to w. Run returns nil on a clean EOF.
func (p *Pipeline) Run(r io.Reader, w io.Writer) error {
	blockSize := p.blockSize
	buf := make([]byte, blockSize)
	filled, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("rf: initial read failed: %w", err)
	}

	for filled == blockSize {
		din := make([]float64, blockSize)
		for i, b := range buf {
			din[i] = float64(b)
		}

		outline := p.demod.Process(din)

		// Process suppresses its leading MinOffset warm-up samples, so
		// outline holds fewer samples than the input block. Advancing by
		// exactly len(outline) slides the window forward by what was
		// actually emitted, leaving the unconsumed tail of buf (including
		// the warm-up region for the next block) at the front, matching
		// the reference decoder's memmove(inbuf, &inbuf[len], ...).
		advance := len(outline)

		out := make([]uint16, len(outline))
		for i, n := range outline {
			out[i] = p.deemp.Feed(n)
		}

		if err := binary.Write(w, binary.LittleEndian, out); err != nil {
			return fmt.Errorf("rf: write failed: %w", err)
		}

		copy(buf, buf[advance:])
		n, err := io.ReadFull(r, buf[blockSize-advance:])
		filled = (blockSize - advance) + n
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				p.log.Info("rf: input exhausted", "bytesRead", filled)
				return nil
			}
			return fmt.Errorf("rf: read failed: %w", err)
		}
	}

	return nil
}
