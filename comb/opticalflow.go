/*
DESCRIPTION
  opticalflow.go gates the 3D comb's motion weight using a dense optical
  flow estimate instead of the frame-difference proxy used by split3D,
  avoiding false "motion" triggered by the colour subcarrier itself.
*/

package comb

import (
	"math"

	"github.com/wbirkmaier/ld-decode/comb/flow"
)

// flowFieldHeight is the number of raster lines of one field sampled for
// flow estimation, matching the reference decoder's fixed extent.
const flowFieldHeight = 252

// flowLineOffset is the first frame line sampled into the flow image for
// field parity 0 (field parity 1 starts one line later).
const flowLineOffset = 23

// flowXOffset is the horizontal sample offset into the active line where
// flow sampling starts, avoiding the sync/blanking region.
const flowXOffset = 70

// opticalFlow3D estimates motion for each field parity independently and
// writes a per-pixel confidence into combk[2] of the middle ring frame (the
// one-frame delay the reference decoder also has to work around), so the
// following split3D call blends 3D chroma in proportion to how static the
// scene actually was rather than how much the chroma carrier moved.
func (d *Decoder) opticalFlow3D(yiq [][]YIQ) {
	cxSize := d.cfg.FieldWidth - flowXOffset
	if cxSize <= 0 {
		return
	}

	flows := make([][][]flow.Vector, 2)
	for field := 0; field < 2; field++ {
		f := flow.Field{Width: cxSize, Height: flowFieldHeight, Y: make([]uint16, cxSize*flowFieldHeight)}
		for y := 0; y < flowFieldHeight; y++ {
			line := flowLineOffset + field + y*2
			if line >= len(yiq) {
				continue
			}
			row := yiq[line]
			for x := 0; x < cxSize; x++ {
				if flowXOffset+x < len(row) {
					f.Y[y*cxSize+x] = uint16(clamp(row[flowXOffset+x].Y, 0, 65535))
				}
			}
		}
		flows[field] = d.flow.DenseFlow(d.prevFlow[field], f)
		d.prevFlow[field] = f
	}

	target := d.ring[1]
	min, max := d.p3Core, d.p3Range

	for y := 0; y < flowFieldHeight; y++ {
		for x := 0; x < cxSize; x++ {
			c1 := 1 - clamp((magnitude(flows[0][y][x])-min)/max, 0, 1)
			c2 := 1 - clamp((magnitude(flows[1][y][x])-min)/max, 0, 1)
			c := math.Min(c1, c2)

			l0, l1 := y*2, y*2+1
			hm := flowXOffset + x + margin
			if l0 < d.frameHeight {
				target.combk[2][l0][hm] = c
			}
			if l1 < d.frameHeight {
				target.combk[2][l1][hm] = c
			}
		}
	}
}

func magnitude(v flow.Vector) float64 {
	return math.Hypot(float64(v.Y), float64(v.X)*2)
}
