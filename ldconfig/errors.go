package ldconfig

import "errors"

// Configuration-invalid errors returned by Config.Validate. These fail
// construction of a pipeline; they are never returned mid-stream.
var (
	errInvalidActiveVideo = errors.New("ldconfig: ActiveVideoEnd must be greater than ActiveVideoStart")
	errFlowNeedsDepth3    = errors.New("ldconfig: OpticalFlow requires FilterDepth == 3")
	errFieldWidthTooLarge = errors.New("ldconfig: FieldWidth exceeds maxX (910)")
	errActiveVideoStartLow = errors.New("ldconfig: ActiveVideoStart must be >= 16")
	errFieldHeightTooLarge = errors.New("ldconfig: FieldHeight*2-1 exceeds maxY (525)")
)
