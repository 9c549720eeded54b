package display

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/presentation/layout"
	"github.com/penwyp/go-activity-monitor/internal/util"
)

// DisplayConfig holds the settings the terminal display needs per frame
type DisplayConfig struct {
	TimeFormat string
	// Width fixes the frame width; 0 follows the terminal
	Width int
}

type TerminalDisplay struct {
	config            DisplayConfig
	out               io.Writer
	mu                sync.Mutex
	inAlternateScreen bool
	lastLayoutStyle   int
	lastShowHelp      bool
	isFirstRender     bool
	lastFrame         string
}

func NewTerminalDisplay(config DisplayConfig) *TerminalDisplay {
	return NewTerminalDisplayTo(os.Stdout, config)
}

// NewTerminalDisplayTo writes frames to out instead of stdout
func NewTerminalDisplayTo(out io.Writer, config DisplayConfig) *TerminalDisplay {
	return &TerminalDisplay{
		config:        config,
		out:           out,
		isFirstRender: true,
	}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()
	if td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.EnterAltScreen+util.ClearScreen+util.ClearScrollback+util.MoveCursorHome+util.HideCursor)
	td.inAlternateScreen = true
	td.isFirstRender = true
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()
	if !td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.ClearScreen+util.MoveCursorHome+util.ShowCursor+util.ExitAltScreen)
	td.inAlternateScreen = false
}

// SetWidth fixes the frame width, 0 follows the terminal
func (td *TerminalDisplay) SetWidth(width int) {
	td.mu.Lock()
	defer td.mu.Unlock()
	td.config.Width = width
	// Force a full redraw after a resize
	td.isFirstRender = true
}

// RenderWithState draws one frame: the help screen or the dashboard in the selected layout
func (td *TerminalDisplay) RenderWithState(view *model.DashboardView, state model.InteractionState) {
	td.mu.Lock()
	defer td.mu.Unlock()

	var frame bytes.Buffer
	if state.ShowHelp {
		renderHelp(&frame)
	} else {
		strategy := layout.GetLayoutStrategy(state.LayoutStyle)
		strategy.Render(&frame, view, layout.Param{
			Width:      td.config.Width,
			TimeFormat: td.config.TimeFormat,
			Paused:     state.IsPaused,
			Status:     state.StatusMessage,
		})
	}

	// Always clear screen on first render or mode transitions
	fullClear := td.isFirstRender || td.lastLayoutStyle != state.LayoutStyle || td.lastShowHelp != state.ShowHelp
	td.isFirstRender = false
	td.lastLayoutStyle = state.LayoutStyle
	td.lastShowHelp = state.ShowHelp

	content := frame.String()
	if !fullClear && content == td.lastFrame {
		return
	}
	td.lastFrame = content

	var sb strings.Builder
	if fullClear {
		sb.WriteString(util.ClearScreen)
	}
	sb.WriteString(util.MoveCursorHome)
	// Raw mode disables output post-processing, so each line needs its own carriage return
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		sb.WriteString(line)
		sb.WriteString(util.ClearLineFromCursor)
		sb.WriteString("\r\n")
	}
	sb.WriteString(util.ClearToEndOfScreen)
	fmt.Fprint(td.out, sb.String())
}

// LastFrame returns the plain frame drawn most recently
func (td *TerminalDisplay) LastFrame() string {
	td.mu.Lock()
	defer td.mu.Unlock()
	return td.lastFrame
}

func renderHelp(w io.Writer) {
	fmt.Fprintln(w, "Activity Monitor Top - Help")
	fmt.Fprintln(w, strings.Repeat("═", 60))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Keyboard Shortcuts:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  q/Esc/Ctrl+C - Quit the program")
	fmt.Fprintln(w, "  r            - Fetch all datasets again")
	fmt.Fprintln(w, "  p            - Pause/unpause redraws")
	fmt.Fprintln(w, "  t            - Change layout style (Full → Compact)")
	fmt.Fprintln(w, "  h            - Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout Styles:")
	fmt.Fprintln(w, "  Full Dashboard - Daily hours, app usage, timeline and events")
	fmt.Fprintln(w, "  Compact        - Timeline and latest events only")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Timeline:")
	fmt.Fprintln(w, "  Active starts at UNLOCKED or LOGIN")
	fmt.Fprintln(w, "  Inactive starts at LOCKED, SHUTDOWN or SUSPEND")
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("═", 60))
	fmt.Fprintln(w, "Press 'h' to return...")
}
