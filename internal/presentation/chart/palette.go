package chart

import (
	"strings"

	"github.com/fatih/color"
)

const (
	minWidth     = 20
	defaultWidth = 80
)

// Placeholders shown when a dataset is empty
const (
	NoDailyData    = "No daily summary data available."
	NoAppUsageData = "No app usage data available."
	NoTimelineData = "No activity timeline data available."
)

// palette cycles per app segment
var palette = []*color.Color{
	color.New(color.FgBlue),
	color.New(color.FgRed),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgMagenta),
	color.New(color.FgCyan),
	color.New(color.FgHiBlue),
	color.New(color.FgHiRed),
	color.New(color.FgHiGreen),
	color.New(color.FgHiMagenta),
}

// PaletteColor returns the colour for segment i
func PaletteColor(i int) *color.Color {
	return palette[i%len(palette)]
}

var (
	activeColor   = color.New(color.FgGreen)
	inactiveColor = color.New(color.FgRed)
	axisColor     = color.New(color.Faint)
	captionColor  = color.New(color.FgCyan, color.Bold)
)

const (
	blockFull  = "█"
	blockEmpty = "░"
)

func blocks(c *color.Color, n int) string {
	if n <= 0 {
		return ""
	}
	return c.Sprint(strings.Repeat(blockFull, n))
}
