//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  Replaces Farneback when building without OpenCV (e.g. CI), using the
  usual withcv/!withcv build-tag stub convention for gocv-backed code.
*/

package flow

// Farneback is a zero-flow stand-in used in builds without OpenCV
// available. It satisfies Estimator so callers can build and test the comb
// decoder's non-3D paths without the gocv dependency.
type Farneback struct{}

// NewFarneback constructs a stub Farneback estimator.
func NewFarneback() *Farneback { return &Farneback{} }

// DenseFlow always returns a zero-valued flow field.
func (f *Farneback) DenseFlow(prev, cur Field) [][]Vector {
	out := make([][]Vector, cur.Height)
	for i := range out {
		out[i] = make([]Vector, cur.Width)
	}
	return out
}
