/*
DESCRIPTION
  iq.go recombines the weighted 1D/2D/3D chroma-proxy buffers into I/Q
  chroma samples, applies the optional colour low-pass filter, and removes
  the residual chroma carrier from luma.
*/

package comb

import "github.com/wbirkmaier/ld-decode/dsp"

// splitIQ mixes the three comb stages' chroma-proxy buffers by their
// combk weights into a single I/Q chroma estimate per pixel, and copies
// the raw sample into the Y channel.
func (d *Decoder) splitIQ(f *frame) {
	topInvert, bottomInvert := false, false
	if f.firstFieldPhaseID == 2 || f.firstFieldPhaseID == 3 {
		topInvert = true
	}
	if f.secondFieldPhaseID == 1 || f.secondFieldPhaseID == 4 {
		bottomInvert = true
	}

	for lineNumber := d.cfg.FirstVisibleFrameLine; lineNumber < d.frameHeight; lineNumber++ {
		var invert bool
		if lineNumber%2 == 0 {
			topInvert = !topInvert
			invert = topInvert
		} else {
			bottomInvert = !bottomInvert
			invert = bottomInvert
		}

		line := f.line(lineNumber)
		var si, sq float64

		for h := d.cfg.ActiveVideoStart; h < d.cfg.ActiveVideoEnd; h++ {
			hm := h + margin
			phase := h % 4

			cavg := f.clp[2][lineNumber][hm] * f.combk[2][lineNumber][hm]
			cavg += f.clp[1][lineNumber][hm] * f.combk[1][lineNumber][hm]
			cavg += f.clp[0][lineNumber][hm] * f.combk[0][lineNumber][hm]
			cavg /= 2

			if !invert {
				cavg = -cavg
			}

			switch phase {
			case 0:
				si = cavg
			case 1:
				sq = -cavg
			case 2:
				si = -cavg
			case 3:
				sq = cavg
			}

			f.yiq[lineNumber][h].Y = float64(line[h])
			f.yiq[lineNumber][h].I = si
			f.yiq[lineNumber][h].Q = sq

			if d.cfg.BlackAndWhite {
				f.yiq[lineNumber][h].I = 0
				f.yiq[lineNumber][h].Q = 0
			}
		}
	}
}

// filterIQ applies the colour low-pass pair to the already-demodulated I/Q
// channels. When ColorLPFHQ is set, the decoder reuses the I-channel
// filter for Q as well; this reproduces the reference decoder's own
// behaviour (see DESIGN.md) rather than fixing what may have been an
// oversight there.
func (d *Decoder) filterIQ(yiq [][]YIQ) {
	const qOffset = 2

	for lineNumber := d.cfg.FirstVisibleFrameLine; lineNumber < d.frameHeight; lineNumber++ {
		fI := dsp.New(dsp.ColorLPI, nil)
		var fQ *dsp.Filter
		if d.cfg.ColorLPFHQ {
			fQ = dsp.New(dsp.ColorLPI, nil)
		} else {
			fQ = dsp.New(dsp.ColorLPQ, nil)
		}

		var filti, filtq float64
		row := yiq[lineNumber]

		for h := d.cfg.ActiveVideoStart; h < d.cfg.ActiveVideoEnd; h++ {
			phase := h % 4
			switch phase {
			case 0:
				filti = fI.Feed(row[h].I)
			case 1:
				filtq = fQ.Feed(row[h].Q)
			case 2:
				filti = fI.Feed(row[h].I)
			case 3:
				filtq = fQ.Feed(row[h].Q)
			}

			if h-qOffset >= 0 {
				row[h-qOffset].I = filti
				row[h-qOffset].Q = filtq
			}
		}
	}
}

// adjustY removes the residual colour subcarrier from the luma channel by
// reconstructing it from the already-split I/Q samples two columns ahead.
// It reads and rewrites dst in place (callers pass a copy of f.yiq); f
// supplies only the field phase IDs.
func (d *Decoder) adjustY(f *frame, dst [][]YIQ) {
	topInvert, bottomInvert := false, false
	if f.firstFieldPhaseID == 2 || f.firstFieldPhaseID == 3 {
		topInvert = true
	}
	if f.secondFieldPhaseID == 1 || f.secondFieldPhaseID == 4 {
		bottomInvert = true
	}

	for lineNumber := d.cfg.FirstVisibleFrameLine; lineNumber < d.frameHeight; lineNumber++ {
		var invert bool
		if lineNumber%2 == 0 {
			topInvert = !topInvert
			invert = topInvert
		} else {
			bottomInvert = !bottomInvert
			invert = bottomInvert
		}

		row := dst[lineNumber]
		for h := d.cfg.ActiveVideoStart; h < d.cfg.ActiveVideoEnd; h++ {
			if h+2 >= len(row) {
				continue
			}
			phase := h % 4
			src := row[h+2]

			var comp float64
			switch phase {
			case 0:
				comp = src.I
			case 1:
				comp = -src.Q
			case 2:
				comp = -src.I
			case 3:
				comp = src.Q
			}
			if invert {
				comp = -comp
			}
			row[h] = YIQ{Y: row[h].Y + comp, I: src.I, Q: src.Q}
		}
	}
}
