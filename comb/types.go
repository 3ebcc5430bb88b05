/*
DESCRIPTION
  types.go defines the YIQ pixel and per-field-pair frame buffer shared by
  the comb decoder's splitters and colour-space conversion stages.
*/

// Package comb implements the NTSC composite-to-RGB comb decoder: adaptive
// 1D/2D/3D luma/chroma separation, optional dense-flow-gated 3D mode, and
// YIQ-to-RGB conversion.
package comb

// YIQ is a single decoded pixel in luma/chroma colour space.
type YIQ struct {
	Y, I, Q float64
}

// margin pads every per-line buffer so that the +/-2 sample lookahead used
// by the 1D/2D/3D splitters near the edges of the active video window never
// indexes out of bounds.
const margin = 4

// frame holds one field-pair's worth of decode state: the interlaced raw
// 16-bit samples, the three comb-stage chroma-proxy buffers and their
// per-pixel mix weights, and the resulting YIQ picture.
type frame struct {
	raw []uint16 // frameHeight * fieldWidth, line-major.

	// clp and combk are indexed [stage][lineNumber][h+margin], stage 0 =
	// 1D, 1 = 2D, 2 = 3D, matching frameBuffer[n].clpbuffer /
	// frameBuffer[n].combk in the reference decoder.
	clp   [3][][]float64
	combk [3][][]float64

	yiq [][]YIQ

	burstLevel         float64
	firstFieldPhaseID  int
	secondFieldPhaseID int
}

func newFrame(fieldWidth, frameHeight int) *frame {
	f := &frame{
		raw: make([]uint16, fieldWidth*frameHeight),
		yiq: make([][]YIQ, frameHeight),
	}
	rowLen := fieldWidth + 2*margin
	for stage := 0; stage < 3; stage++ {
		f.clp[stage] = make([][]float64, frameHeight)
		f.combk[stage] = make([][]float64, frameHeight)
		for l := 0; l < frameHeight; l++ {
			f.clp[stage][l] = make([]float64, rowLen)
			f.combk[stage][l] = make([]float64, rowLen)
		}
	}
	for l := range f.yiq {
		f.yiq[l] = make([]YIQ, fieldWidth)
	}
	return f
}

func (f *frame) line(lineNumber int) []uint16 {
	width := len(f.raw) / len(f.yiq)
	return f.raw[lineNumber*width : (lineNumber+1)*width]
}
