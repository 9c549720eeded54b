package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset   = "\033[0m"
	ColorBold    = "\033[1m"
	ColorCyan    = "\033[36m"
	ColorMagenta = "\033[35m"
	ColorYellow  = "\033[33m"

	EnterAltScreen      = "\033[?1049h"
	ExitAltScreen       = "\033[?1049l"
	ClearScreen         = "\033[2J"
	ClearLine           = "\033[2K"
	ClearToEndOfScreen  = "\033[J"
	ClearLineFromCursor = "\033[0K"
	ClearScrollback     = "\033[3J"
	MoveCursorHome      = "\033[H"
	HideCursor          = "\033[?25l"
	ShowCursor          = "\033[?25h"
)

// GetDisplayWidth returns the terminal cell width of text
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces to width cells, truncating with an ellipsis when too wide
func PadRight(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "…")
	}
	return runewidth.FillRight(text, width)
}

// PadLeft right-aligns text within width cells
func PadLeft(text string, width int) string {
	if runewidth.StringWidth(text) >= width {
		return text
	}
	return runewidth.FillLeft(text, width)
}

// CenterText centers text within width cells
func CenterText(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return runewidth.Truncate(text, width, "")
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-w-left)
}

// FormatHeaderTitle formats main header titles (Magenta + Bold)
func FormatHeaderTitle(title string) string {
	return ColorBold + ColorMagenta + title + ColorReset
}

// FormatSectionTitle formats section titles (Cyan + Bold)
func FormatSectionTitle(title string) string {
	return ColorBold + ColorCyan + title + ColorReset
}

// FormatPlaceholder formats muted placeholder text (Yellow)
func FormatPlaceholder(text string) string {
	return ColorYellow + text + ColorReset
}

// SeparatorLine returns a horizontal rule of width cells
func SeparatorLine(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("─", width)
}
