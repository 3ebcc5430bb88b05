/*
DESCRIPTION
  split.go implements the 1D, 2D and 3D comb splitters that separate luma
  and chroma from the composite signal, and the shared combk mixing engine
  that weights their outputs per pixel.
*/

package comb

import (
	"math"

	"github.com/wbirkmaier/ld-decode/dsp"
)

const f3DOffset = 16

// split1D extracts the baseline 1D chroma-proxy signal by comparing each
// sample against its same-phase neighbours two samples away, accumulating
// a filtered estimate per colour subcarrier phase (h%4).
func (d *Decoder) split1D(f *frame) {
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
		fI := dsp.New(dsp.ColorLPI, nil)
		fQ := dsp.New(dsp.ColorLPQ, nil)

		for h := d.cfg.ActiveVideoStart; h < d.cfg.ActiveVideoEnd; h++ {
			phase := h % 4
			tc1 := (float64(line[h+2]) + float64(line[h-2]))/2 - float64(line[h])
			if !invert {
				tc1 = -tc1
			}

			var tc1f float64
			switch phase {
			case 0:
				tc1f = fI.Feed(tc1)
			case 1:
				tc1f = -fQ.Feed(-tc1)
			case 2:
				tc1f = -fI.Feed(-tc1)
			case 3:
				tc1f = fQ.Feed(tc1)
			}

			if !invert {
				tc1 = -tc1
				tc1f = -tc1f
			}

			f.clp[0][lineNumber][h+margin] = tc1
			if d.cfg.FilterDepth == 1 {
				f.clp[0][lineNumber][h-f3DOffset+margin] = tc1f
			}
			f.combk[0][lineNumber][h+margin] = 1
		}
	}
}

// split2D refines the 1D estimate using the previous and next lines of the
// same field parity, gating the correction by how well the neighbouring
// lines agree (the adaptive part of "adaptive2d").
func (d *Decoder) split2D(f *frame) {
	for lineNumber := d.cfg.FirstVisibleFrameLine; lineNumber < d.frameHeight; lineNumber++ {
		if lineNumber >= 4 && lineNumber+2 < d.frameHeight {
			p1 := f.clp[0][lineNumber-2]
			c1 := f.clp[0][lineNumber]
			n1 := f.clp[0][lineNumber+2]

			for h := d.cfg.ActiveVideoStart; h < d.cfg.ActiveVideoEnd; h++ {
				hm := h + margin
				kp := math.Abs(math.Abs(c1[hm])-math.Abs(p1[hm])) +
					math.Abs(math.Abs(c1[hm-1])-math.Abs(p1[hm-1])) -
					(math.Abs(c1[hm])+math.Abs(c1[hm-1]))*0.10
				kn := math.Abs(math.Abs(c1[hm])-math.Abs(n1[hm])) +
					math.Abs(math.Abs(c1[hm-1])-math.Abs(n1[hm-1])) -
					(math.Abs(c1[hm])+math.Abs(n1[hm-1]))*0.10
				kp /= 2
				kn /= 2

				p2Range := 45 * d.ireScale
				kp = clamp(1-(kp/p2Range), 0, 1)
				kn = clamp(1-(kn/p2Range), 0, 1)

				if !d.cfg.Adaptive2D {
					kp, kn = 1, 1
				}

				sc := 1.0
				if kn > 0 || kp > 0 {
					if kn > 3*kp {
						kp = 0
					} else if kp > 3*kn {
						kn = 0
					}
					sc = 2.0 / (kn + kp)
					if sc < 1.0 {
						sc = 1.0
					}
				} else if math.Abs(math.Abs(p1[hm])-math.Abs(n1[hm]))-math.Abs((n1[hm]+p1[hm])*0.2) <= 0 {
					kn, kp = 1, 1
				}

				tc1 := (c1[hm] - p1[hm]) * kp * sc
				tc1 += (c1[hm] - n1[hm]) * kn * sc
				tc1 /= 4

				f.clp[1][lineNumber][hm] = tc1
				f.combk[1][lineNumber][hm] = 1.0
			}
		}

		d.mixWeights(f, lineNumber)
	}
}

// mixWeights recomputes the per-pixel 1D/2D combk shares given whatever 3D
// weight (combk[2]) is already present for the line, shared by split2D and
// split3D as the reference recomputes this identically in both.
func (d *Decoder) mixWeights(f *frame, lineNumber int) {
	for h := d.cfg.ActiveVideoStart; h < d.cfg.ActiveVideoEnd; h++ {
		hm := h + margin
		if lineNumber >= 2 && lineNumber <= d.frameHeight-2 {
			f.combk[1][lineNumber][hm] *= 1 - f.combk[2][lineNumber][hm]
		}
		f.combk[0][lineNumber][hm] = 1 - f.combk[2][lineNumber][hm] - f.combk[1][lineNumber][hm]
	}
}

// split3D compares the current frame against the previous and next
// occurrences of the same raster line, producing the 3D chroma-proxy and,
// unless dense-flow gating (opt_flow) supplies combk[2] directly, a
// motion-confidence weight derived from a smoothed frame-difference proxy.
func (d *Decoder) split3D(f *frame, optFlow bool) {
	lp3D := dsp.New(dsp.Hamming17, nil)

	prevF := d.ring[0]
	nextF := d.ring[2]

	for lineNumber := d.cfg.FirstVisibleFrameLine; lineNumber < d.frameHeight; lineNumber++ {
		line := f.line(lineNumber)
		p3line := prevF.line(lineNumber)
		n3line := nextF.line(lineNumber)

		k := make([]float64, d.cfg.FieldWidth+margin)
		lp3D.Clear(0)
		if d.cfg.FilterDepth >= 3 {
			p0 := prevF.line(lineNumber)
			p1 := d.ring[1].line(lineNumber)
			p2 := nextF.line(lineNumber)
			for h := d.cfg.ActiveVideoStart; h < d.cfg.ActiveVideoEnd; h++ {
				kk := math.Abs(float64(p0[h]) - float64(p2[h]))
				kk += math.Abs((float64(p1[h]) - float64(p2[h])) - (float64(p1[h]) - float64(p0[h])))
				v := lp3D.Feed(kk)
				if h > 12 {
					k[h-8] = v
				}
				if h >= d.cfg.ActiveVideoEnd-4 {
					k[h] = kk
				}
			}
		}

		for h := d.cfg.ActiveVideoStart; h < d.cfg.ActiveVideoEnd; h++ {
			hm := h + margin
			if optFlow {
				f.clp[2][lineNumber][hm] = float64(p3line[h]) - float64(line[h])
			} else {
				f.clp[2][lineNumber][hm] = (float64(p3line[h])+float64(n3line[h]))/2 - float64(line[h])
				f.combk[2][lineNumber][hm] = clamp(1-((k[h]-d.p3Core)/d.p3Range), 0, 1)
			}
		}

		d.mixWeights(f, lineNumber)
	}
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
