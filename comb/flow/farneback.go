//go:build withcv
// +build withcv

/*
DESCRIPTION
  farneback.go implements Estimator using OpenCV's dense Farneback optical
  flow, the same algorithm the reference decoder's 3D comb mode uses to
  gate motion.
*/

package flow

import (
	"gocv.io/x/gocv"
)

// Farneback estimates dense optical flow via gocv.CalcOpticalFlowFarneback.
// It is stateless between calls: the caller supplies the previous frame
// explicitly each time, which lets a single instance be shared across
// independently-tracked image series (e.g. the comb decoder's two field
// parities) without their histories bleeding into each other.
// The zero value is ready to use.
type Farneback struct{}

// NewFarneback constructs a ready-to-use Farneback estimator.
func NewFarneback() *Farneback { return &Farneback{} }

// DenseFlow implements Estimator. prev.Width == 0 (the zero Field, or any
// first call for a given series) skips flow estimation and returns a zero
// field, matching the reference decoder's first-frame behaviour.
func (f *Farneback) DenseFlow(prev, cur Field) [][]Vector {
	out := make([][]Vector, cur.Height)
	for i := range out {
		out[i] = make([]Vector, cur.Width)
	}

	if prev.Width != cur.Width || prev.Height != cur.Height || len(prev.Y) == 0 {
		return out
	}

	curMat, err := gocv.NewMatFromBytes(cur.Height, cur.Width, gocv.MatTypeCV16UC1, uint16ToBytes(cur.Y))
	if err != nil {
		return out
	}
	defer curMat.Close()

	prevMat, err := gocv.NewMatFromBytes(prev.Height, prev.Width, gocv.MatTypeCV16UC1, uint16ToBytes(prev.Y))
	if err != nil {
		return out
	}
	defer prevMat.Close()

	flowMat := gocv.NewMat()
	defer flowMat.Close()

	gocv.CalcOpticalFlowFarneback(prevMat, curMat, &flowMat, 0.5, 4, 60, 3, 7, 1.5, 0)

	for y := 0; y < cur.Height; y++ {
		for x := 0; x < cur.Width; x++ {
			v := flowMat.GetVecfAt(y, x)
			out[y][x] = Vector{X: v[0], Y: v[1]}
		}
	}

	return out
}

func uint16ToBytes(v []uint16) []byte {
	b := make([]byte, len(v)*2)
	for i, x := range v {
		b[2*i] = byte(x)
		b[2*i+1] = byte(x >> 8)
	}
	return b
}
