/*
DESCRIPTION
  nr.go applies a high-pass-gated soft clip to the Y and I/Q channels, the
  decoder's lightweight noise reduction pass.
*/

package comb

import "math"

// doYNR clips the high-pass residual of the luma channel to +/- nrY
// (floored at min) and subtracts it back out, attenuating high-frequency
// noise without touching the low-frequency picture content.
func (d *Decoder) doYNR(yiq [][]YIQ, min float64) {
	if d.nrY < min {
		d.nrY = min
	}
	if d.nrY <= 0 {
		return
	}

	for lineNumber := d.cfg.FirstVisibleFrameLine; lineNumber < d.frameHeight; lineNumber++ {
		row := yiq[lineNumber]
		hp := make([]float64, len(row)+32)
		// Past ActiveVideoEnd the last active sample is repeated, so the
		// 12-sample lookahead does not see a step into the blank region.
		last := row[d.cfg.ActiveVideoEnd-1].Y
		for h := d.cfg.ActiveVideoStart; h < d.cfg.ActiveVideoEnd+12 && h < len(row); h++ {
			y := row[h].Y
			if h >= d.cfg.ActiveVideoEnd {
				y = last
			}
			hp[h] = d.fHPY.Feed(y)
		}
		for h := d.cfg.ActiveVideoStart; h < d.cfg.ActiveVideoEnd; h++ {
			a := hp[h+12]
			if math.Abs(a) > d.nrY {
				a = math.Copysign(d.nrY, a)
			}
			row[h].Y -= a
		}
	}
}

// doCNR applies the same high-pass-gated soft clip independently to the I
// and Q channels.
func (d *Decoder) doCNR(yiq [][]YIQ, min float64) {
	if d.nrC < min {
		d.nrC = min
	}
	if d.nrC <= 0 {
		return
	}

	for lineNumber := d.cfg.FirstVisibleFrameLine; lineNumber < d.frameHeight; lineNumber++ {
		row := yiq[lineNumber]
		hpI := make([]float64, len(row)+32)
		hpQ := make([]float64, len(row)+32)
		for h := d.cfg.ActiveVideoStart; h < d.cfg.ActiveVideoEnd+12 && h < len(row); h++ {
			hpI[h] = d.fHPI.Feed(row[h].I)
			hpQ[h] = d.fHPQ.Feed(row[h].Q)
		}
		for h := d.cfg.ActiveVideoStart; h < d.cfg.ActiveVideoEnd; h++ {
			ai, aq := hpI[h+12], hpQ[h+12]
			if math.Abs(ai) > d.nrC {
				ai = math.Copysign(d.nrC, ai)
			}
			if math.Abs(aq) > d.nrC {
				aq = math.Copysign(d.nrC, aq)
			}
			row[h].I -= ai
			row[h].Q -= aq
		}
	}
}
