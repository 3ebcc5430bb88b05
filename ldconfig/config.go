/*
DESCRIPTION
  config.go contains the configuration settings shared by the RF demodulator
  and comb decoder pipelines.
*/

// Package ldconfig provides the shared Config struct, its defaults, and the
// Validate/Update idiom used to construct a decoder pipeline from either a
// CLI flag set or a variable map.
package ldconfig

import (
	"github.com/ausocean/utils/logging"
)

// Default field values, used by Validate to fill in zero fields.
const (
	defaultFieldWidth            = 910
	defaultFieldHeight           = 263
	defaultActiveVideoStart      = 40
	defaultActiveVideoEnd        = 840
	defaultFirstVisibleFrameLine = 43
	defaultFilterDepth           = 3
	// defaultBlackIRE and defaultWhiteIRE are 16-bit luma codes (not IRE
	// percentages): the code value corresponding to 0 IRE and 100 IRE,
	// matching the reference decoder's own blacklevel/whitelevel constants.
	defaultBlackIRE = 15360
	defaultWhiteIRE = 51200
	// defaultLineLen and defaultMinOffset are the FM demodulator's chunk
	// size and warm-up length, matching the reference decoder's own
	// defaults; they are unrelated to the NTSC active-line geometry above.
	defaultLineLen   = 2048
	defaultMinOffset = 128
	defaultLogLevel  = logging.Error

	// maxX and maxY are the hard geometry ceilings from spec.md's
	// constants section: max_x = 910, max_y = 2*263-1 = 525.
	maxX = 910
	maxY = 525
)

// DefaultCandidateFreqs are the three heterodyne carrier candidates the
// original decoder compares each sample against, replacing its compile-time
// triple_hdyne toggle.
var DefaultCandidateFreqs = []float64{8100000, 8700000, 9300000}

// Config provides the parameters relevant to a decode pipeline. A new
// config must be passed to a pipeline or decoder constructor (which call
// Validate) or have Validate called directly.
type Config struct {
	// FieldWidth and FieldHeight describe the active capture geometry in
	// samples and lines.
	FieldWidth  int
	FieldHeight int

	// ActiveVideoStart and ActiveVideoEnd bound the active picture region
	// within a line, in samples.
	ActiveVideoStart int
	ActiveVideoEnd   int

	// FirstVisibleFrameLine is the first frame line carrying picture
	// content; the comb stages and RGB conversion start at this line.
	FirstVisibleFrameLine int

	// FilterDepth selects the comb filter dimensionality: 1 = 1D only,
	// 2 = adds the 2D split, 3 = adds the 3D split across the decoder's
	// three-frame ring (newest/middle/oldest).
	FilterDepth int

	// Adaptive2D gates the 2D split's per-pixel line weights by how well
	// neighbouring lines agree; when false both weights are fixed at 1.
	Adaptive2D bool

	// ColorLPF selects the dedicated colour low-pass filter pair for I/Q
	// instead of the wideband default.
	ColorLPF bool

	// ColorLPFHQ selects a higher-quality colour low-pass variant; per the
	// original decoder's observed behaviour this reuses the I-channel
	// filter for both I and Q (see DESIGN.md).
	ColorLPFHQ bool

	// OpticalFlow enables dense-flow-gated 3D comb decoding via comb/flow.
	OpticalFlow bool

	// BlackAndWhite disables chroma decoding, emitting luma-only RGB.
	BlackAndWhite bool

	BlackIRE float64 // 16-bit luma code mapped to output black (0 IRE).
	WhiteIRE float64 // 16-bit luma code mapped to output white (100 IRE).

	// CandidateFreqs lists the heterodyne carrier candidates, in Hz, that
	// the FM demodulator evaluates per sample block.
	CandidateFreqs []float64

	// LineLen and MinOffset configure the RF demodulator: LineLen is the
	// number of samples processed per demodulation chunk, and MinOffset is
	// the leading warm-up length, in samples, whose output is suppressed on
	// every chunk to let filter histories fill.
	LineLen   int
	MinOffset int

	// Logger holds an implementation of the logging.Logger interface. This
	// must be set, or Validate will default it to a discarding logger.
	Logger logging.Logger

	// LogLevel is the logging verbosity level, one of the logging.Debug,
	// logging.Info, logging.Warning, logging.Error, logging.Fatal consts.
	LogLevel int8
}

// Validate checks Config fields and defaults any left at their zero value,
// logging each default applied via LogInvalidField.
func (c *Config) Validate() error {
	if c.Logger == nil {
		c.Logger = noopLogger{}
	}
	if c.FieldWidth == 0 {
		c.LogInvalidField("FieldWidth", defaultFieldWidth)
		c.FieldWidth = defaultFieldWidth
	}
	if c.FieldHeight == 0 {
		c.LogInvalidField("FieldHeight", defaultFieldHeight)
		c.FieldHeight = defaultFieldHeight
	}
	if c.ActiveVideoStart == 0 {
		c.LogInvalidField("ActiveVideoStart", defaultActiveVideoStart)
		c.ActiveVideoStart = defaultActiveVideoStart
	}
	if c.ActiveVideoEnd == 0 {
		c.LogInvalidField("ActiveVideoEnd", defaultActiveVideoEnd)
		c.ActiveVideoEnd = defaultActiveVideoEnd
	}
	if c.FirstVisibleFrameLine == 0 {
		c.LogInvalidField("FirstVisibleFrameLine", defaultFirstVisibleFrameLine)
		c.FirstVisibleFrameLine = defaultFirstVisibleFrameLine
	}
	if c.FilterDepth == 0 {
		c.LogInvalidField("FilterDepth", defaultFilterDepth)
		c.FilterDepth = defaultFilterDepth
	}
	if c.BlackIRE == 0 {
		c.LogInvalidField("BlackIRE", defaultBlackIRE)
		c.BlackIRE = defaultBlackIRE
	}
	if c.WhiteIRE == 0 {
		c.LogInvalidField("WhiteIRE", defaultWhiteIRE)
		c.WhiteIRE = defaultWhiteIRE
	}
	if len(c.CandidateFreqs) == 0 {
		c.LogInvalidField("CandidateFreqs", DefaultCandidateFreqs)
		c.CandidateFreqs = append([]float64(nil), DefaultCandidateFreqs...)
	}
	if c.LineLen == 0 {
		c.LogInvalidField("LineLen", defaultLineLen)
		c.LineLen = defaultLineLen
	}
	if c.MinOffset == 0 {
		c.LogInvalidField("MinOffset", defaultMinOffset)
		c.MinOffset = defaultMinOffset
	}
	if c.ActiveVideoEnd <= c.ActiveVideoStart {
		return errInvalidActiveVideo
	}
	if c.FilterDepth != 3 && c.OpticalFlow {
		return errFlowNeedsDepth3
	}
	if c.FieldWidth > maxX {
		return errFieldWidthTooLarge
	}
	if c.ActiveVideoStart < 16 {
		return errActiveVideoStartLow
	}
	if c.FieldHeight*2-1 > maxY {
		return errFieldHeightTooLarge
	}
	return nil
}

// LogInvalidField logs that a config field was unset or invalid and has
// been defaulted to def.
func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}

// Update applies string-valued overrides by field name, as might arrive
// from a command line or a server-provided variable map. Unknown keys are
// ignored.
func (c *Config) Update(vars map[string]string) {
	for _, v := range variables {
		if val, ok := vars[v.name]; ok {
			v.update(c, val)
		}
	}
}

type noopLogger struct{}

func (noopLogger) SetLevel(int8)                    {}
func (noopLogger) Log(int8, string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{})     {}
func (noopLogger) Info(string, ...interface{})      {}
func (noopLogger) Warning(string, ...interface{})   {}
func (noopLogger) Error(string, ...interface{})     {}
func (noopLogger) Fatal(string, ...interface{})     {}
