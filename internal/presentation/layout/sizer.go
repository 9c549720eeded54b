package layout

import (
	"os"

	"github.com/penwyp/go-activity-monitor/internal/util"
	"golang.org/x/term"
)

// Package-level singleton Sizer instance
var sharedSizer = &Sizer{}

const (
	defaultWidth = 80
	minWidth     = 40
	maxWidth     = 160
)

type Sizer struct {
	// fd overrides stdout for size queries; 0 means stdout
	fd int
}

// NewSizer creates a sizer reading the terminal behind fd
func NewSizer(fd int) *Sizer {
	return &Sizer{fd: fd}
}

func (i Sizer) descriptor() int {
	if i.fd != 0 {
		return i.fd
	}
	return int(os.Stdout.Fd())
}

// GetSize returns the terminal size, or 80x24 when it cannot be read
func (i Sizer) GetSize() (width, height int) {
	w, h, err := term.GetSize(i.descriptor())
	if err != nil || w <= 0 {
		return defaultWidth, 24
	}
	return w, h
}

// GetMaxWidth returns the frame width for the current terminal
func (i Sizer) GetMaxWidth() int {
	termWidth, _ := i.GetSize()
	width := ClampWidth(termWidth - 2)
	util.LogDebugf("GetMaxWidth %d", width)
	return width
}

// ClampWidth keeps a frame width within readable bounds
func ClampWidth(w int) int {
	if w < minWidth {
		return minWidth
	}
	if w > maxWidth {
		return maxWidth
	}
	return w
}
