/*
DESCRIPTION
  decoder.go orchestrates the comb decoder's per-frame pipeline: frame-ring
  ingestion, 1D/2D/3D splitting, IQ recombination, denoise, and YIQ-to-RGB
  conversion.
*/

package comb

import (
	"github.com/pkg/errors"

	"github.com/wbirkmaier/ld-decode/comb/flow"
	"github.com/wbirkmaier/ld-decode/dsp"
	"github.com/wbirkmaier/ld-decode/ldconfig"
)

// Decoder converts successive NTSC field pairs into RGB frames using
// adaptive 1D/2D/3D comb filtering. A Decoder is not safe for concurrent
// use; each decode stream should own its own instance.
type Decoder struct {
	cfg      ldconfig.Config
	flow     flow.Estimator
	ring     [3]*frame // ring[0] newest, ring[1] middle, ring[2] oldest.
	count    int
	prevFlow [2]flow.Field // last sampled luma image per field parity, for opticalFlow3D.

	fHPY, fHPI, fHPQ *dsp.Filter

	ireScale float64
	nrC, nrY float64
	aBurst   float64
	p3Core   float64
	p3Range  float64
	p2Range  float64

	frameHeight int
}

// NewDecoder constructs a Decoder from a validated config. flowEst may be nil
// unless cfg.OpticalFlow is set, in which case it must supply dense flow
// estimates for the 3D comb's motion gating.
func NewDecoder(cfg ldconfig.Config, flowEst flow.Estimator) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "comb: invalid config")
	}
	if cfg.OpticalFlow && flowEst == nil {
		return nil, errors.New("comb: OpticalFlow enabled but no flow.Estimator supplied")
	}

	frameHeight := cfg.FieldHeight*2 - 1

	d := &Decoder{
		cfg:         cfg,
		flow:        flowEst,
		frameHeight: frameHeight,
		fHPY:        dsp.New(dsp.HighPassY, nil),
		fHPI:        dsp.New(dsp.HighPassC, nil),
		fHPQ:        dsp.New(dsp.HighPassC, nil),
	}
	for i := range d.ring {
		d.ring[i] = newFrame(cfg.FieldWidth, frameHeight)
	}

	d.postConfig()
	return d, nil
}

// postConfig recomputes the IRE-scaled thresholds used by the 2D/3D
// splitters and noise reducers, mirroring the reference decoder's
// postConfigurationTasks.
func (d *Decoder) postConfig() {
	d.ireScale = (d.cfg.WhiteIRE - d.cfg.BlackIRE) / 100
	d.nrC = 0.0
	d.nrY = 1.0 * d.ireScale

	if d.cfg.OpticalFlow {
		d.p3Core = 0
		d.p3Range = 0.5
	} else {
		d.p3Core = 1.25 * d.ireScale
		d.p3Range = 5.5 * d.ireScale
	}
	d.p2Range = 10 * d.ireScale
	d.aBurst = -1
	d.count = 0
}

// Process ingests one field pair and advances the frame ring. It returns a
// packed RGB48 frame (three uint16 channels per pixel, line-major, covering
// every frame line; lines before FirstVisibleFrameLine are left zero) once
// the ring holds enough history; until then it returns ErrWarmingUp.
func (d *Decoder) Process(firstField, secondField []uint16, burstMedianIRE float64, firstPhaseID, secondPhaseID int) ([]uint16, error) {
	fw := d.cfg.FieldWidth
	if len(firstField) != fw*d.cfg.FieldHeight || len(secondField) != fw*d.cfg.FieldHeight {
		return nil, errors.New("comb: field buffer size does not match configured geometry")
	}

	// Shift the ring: newest becomes middle, middle becomes oldest.
	d.ring[2], d.ring[1], d.ring[0] = d.ring[1], d.ring[0], d.ring[2]

	cur := d.ring[0]
	cur.burstLevel = burstMedianIRE / 2
	cur.firstFieldPhaseID = firstPhaseID
	cur.secondFieldPhaseID = secondPhaseID
	interlace(cur, firstField, secondField, fw, d.cfg.FieldHeight)

	currentFrameBuffer := 0
	if d.cfg.FilterDepth == 3 {
		currentFrameBuffer = 1
	}

	d.split1D(cur)
	if d.cfg.FilterDepth >= 2 {
		d.split2D(cur)
	}
	d.splitIQ(cur)

	if d.cfg.FilterDepth == 3 {
		if d.cfg.OpticalFlow && d.count >= 1 {
			tmp := cloneYIQ(cur.yiq)
			d.adjustY(cur, tmp)
			d.doYNR(tmp, 4)
			d.doCNR(tmp, 4)
			d.opticalFlow3D(tmp)
		}

		if d.count < 2 {
			d.count++
			return nil, ErrWarmingUp
		}

		target := d.ring[currentFrameBuffer]
		d.split3D(target, d.cfg.OpticalFlow)
	}

	target := d.ring[currentFrameBuffer]
	d.splitIQ(target)

	tmp := cloneYIQ(target.yiq)
	d.adjustY(target, tmp)
	if d.cfg.ColorLPF {
		d.filterIQ(tmp)
	}
	d.doYNR(tmp, 0)
	d.doCNR(tmp, 0)

	out := d.yiqToRGB(target, tmp)
	d.count++
	return out, nil
}

func interlace(f *frame, firstField, secondField []uint16, fieldWidth, fieldHeight int) {
	for fieldLine := 0; fieldLine < fieldHeight; fieldLine++ {
		frameLine := fieldLine * 2
		copy(f.line(frameLine), firstField[fieldLine*fieldWidth:(fieldLine+1)*fieldWidth])
		if frameLine+1 < len(f.yiq) {
			copy(f.line(frameLine+1), secondField[fieldLine*fieldWidth:(fieldLine+1)*fieldWidth])
		}
	}
}

func cloneYIQ(src [][]YIQ) [][]YIQ {
	dst := make([][]YIQ, len(src))
	for i, row := range src {
		dst[i] = append([]YIQ(nil), row...)
	}
	return dst
}
