/*
DESCRIPTION
  variables.go lists the Config fields that can be set from a string-keyed
  variable map, mirroring the update-by-name idiom used elsewhere for
  runtime-reconfigurable settings.
*/

package ldconfig

import (
	"strconv"
	"strings"
)

type variable struct {
	name   string
	update func(c *Config, v string)
}

// Config map keys.
const (
	KeyFieldWidth            = "FieldWidth"
	KeyFieldHeight           = "FieldHeight"
	KeyActiveVideoStart      = "ActiveVideoStart"
	KeyActiveVideoEnd        = "ActiveVideoEnd"
	KeyFirstVisibleFrameLine = "FirstVisibleFrameLine"
	KeyFilterDepth           = "FilterDepth"
	KeyAdaptive2D            = "Adaptive2D"
	KeyColorLPF              = "ColorLPF"
	KeyColorLPFHQ            = "ColorLPFHQ"
	KeyOpticalFlow           = "OpticalFlow"
	KeyBlackAndWhite         = "BlackAndWhite"
	KeyBlackIRE              = "BlackIRE"
	KeyWhiteIRE              = "WhiteIRE"
	KeyCandidateFreqs        = "CandidateFreqs"
	KeyLineLen               = "LineLen"
	KeyMinOffset             = "MinOffset"
)

var variables = []variable{
	{KeyFieldWidth, func(c *Config, v string) { c.FieldWidth = atoi(v) }},
	{KeyFieldHeight, func(c *Config, v string) { c.FieldHeight = atoi(v) }},
	{KeyActiveVideoStart, func(c *Config, v string) { c.ActiveVideoStart = atoi(v) }},
	{KeyActiveVideoEnd, func(c *Config, v string) { c.ActiveVideoEnd = atoi(v) }},
	{KeyFirstVisibleFrameLine, func(c *Config, v string) { c.FirstVisibleFrameLine = atoi(v) }},
	{KeyFilterDepth, func(c *Config, v string) { c.FilterDepth = atoi(v) }},
	{KeyAdaptive2D, func(c *Config, v string) { c.Adaptive2D = atob(v) }},
	{KeyColorLPF, func(c *Config, v string) { c.ColorLPF = atob(v) }},
	{KeyColorLPFHQ, func(c *Config, v string) { c.ColorLPFHQ = atob(v) }},
	{KeyOpticalFlow, func(c *Config, v string) { c.OpticalFlow = atob(v) }},
	{KeyBlackAndWhite, func(c *Config, v string) { c.BlackAndWhite = atob(v) }},
	{KeyBlackIRE, func(c *Config, v string) { c.BlackIRE = atof(v) }},
	{KeyWhiteIRE, func(c *Config, v string) { c.WhiteIRE = atof(v) }},
	{KeyCandidateFreqs, func(c *Config, v string) { c.CandidateFreqs = atofs(v) }},
	{KeyLineLen, func(c *Config, v string) { c.LineLen = atoi(v) }},
	{KeyMinOffset, func(c *Config, v string) { c.MinOffset = atoi(v) }},
}

func atoi(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func atof(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func atob(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

func atofs(v string) []float64 {
	parts := strings.Split(v, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		out = append(out, atof(strings.TrimSpace(p)))
	}
	return out
}
