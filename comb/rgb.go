/*
DESCRIPTION
  rgb.go converts a burst-normalised YIQ picture into packed 16-bit RGB
  samples using the standard NTSC conversion matrix.
*/

package comb

import "gonum.org/v1/gonum/mat"

// yiqToRGBMatrix is the standard NTSC YIQ-to-RGB conversion matrix.
var yiqToRGBMatrix = mat.NewDense(3, 3, []float64{
	1.000, 0.956, 0.619,
	1.000, -0.272, -0.647,
	1.000, -1.106, 1.703,
})

// yiqToRGB converts the burst-normalised YIQ picture in yiq to a packed,
// line-major RGB48 buffer (three uint16 channels per pixel), applying the
// frame's rolling burst-level auto-gain to the chroma channels first.
func (d *Decoder) yiqToRGB(f *frame, yiq [][]YIQ) []uint16 {
	out := make([]uint16, d.cfg.FieldWidth*d.frameHeight*3)

	if f.burstLevel > 3 {
		if d.aBurst < 0 {
			d.aBurst = f.burstLevel
		}
		d.aBurst = d.aBurst*0.99 + f.burstLevel*0.01
	}

	gain := 10.0
	if d.aBurst > 0 {
		gain = 10 / d.aBurst
	}

	var yiqVec, rgbVec mat.VecDense
	yiqVec.Reset()
	yiqVec.ReuseAsVec(3)
	rgbVec.Reset()
	rgbVec.ReuseAsVec(3)

	for lineNumber := d.cfg.FirstVisibleFrameLine; lineNumber < d.frameHeight; lineNumber++ {
		o := lineNumber*d.cfg.FieldWidth*3 + d.cfg.ActiveVideoStart*3
		row := yiq[lineNumber]

		for h := d.cfg.ActiveVideoStart; h < d.cfg.ActiveVideoEnd && h < len(row); h++ {
			px := row[h]
			i := px.I * gain
			q := px.Q * gain

			yiqVec.SetVec(0, px.Y)
			yiqVec.SetVec(1, i)
			yiqVec.SetVec(2, q)
			rgbVec.MulVec(yiqToRGBMatrix, &yiqVec)

			r := scaleIRE(rgbVec.AtVec(0), d.cfg.BlackIRE, d.cfg.WhiteIRE)
			g := scaleIRE(rgbVec.AtVec(1), d.cfg.BlackIRE, d.cfg.WhiteIRE)
			b := scaleIRE(rgbVec.AtVec(2), d.cfg.BlackIRE, d.cfg.WhiteIRE)

			if o+2 < len(out) {
				out[o] = r
				out[o+1] = g
				out[o+2] = b
			}
			o += 3
		}
	}

	return out
}

// scaleIRE maps a component in 16-bit luma code units to the [0, 65535]
// output range, given the luma codes configured for black and white.
func scaleIRE(v, blackIRE, whiteIRE float64) uint16 {
	scale := 65535.0 / (whiteIRE - blackIRE)
	scaled := (v - blackIRE) * scale
	if scaled < 0 {
		return 0
	}
	if scaled > 65535 {
		return 65535
	}
	return uint16(scaled)
}
