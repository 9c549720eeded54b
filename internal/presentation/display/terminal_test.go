package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/util"
	"github.com/stretchr/testify/assert"
)

func view() *model.DashboardView {
	return &model.DashboardView{
		Sections: map[model.Section][]string{
			model.SectionTimeline: {"timeline-row"},
		},
		Loading: map[model.Section]bool{model.SectionEvents: true},
		Source:  "http://localhost:5000",
	}
}

func TestAlternateScreen(t *testing.T) {
	var buf bytes.Buffer
	td := NewTerminalDisplayTo(&buf, DisplayConfig{Width: 80})

	td.EnterAlternateScreen()
	td.EnterAlternateScreen()
	assert.Equal(t, 1, strings.Count(buf.String(), util.EnterAltScreen))

	td.ExitAlternateScreen()
	td.ExitAlternateScreen()
	assert.Equal(t, 1, strings.Count(buf.String(), util.ExitAltScreen))
	assert.Contains(t, buf.String(), util.ShowCursor)
}

func TestRenderWithState(t *testing.T) {
	var buf bytes.Buffer
	td := NewTerminalDisplayTo(&buf, DisplayConfig{Width: 80})

	td.RenderWithState(view(), model.InteractionState{})
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, util.ClearScreen), "first frame clears the screen")
	assert.Contains(t, out, "timeline-row")
	assert.Contains(t, out, model.SectionEvents.LoadingText())
	assert.Contains(t, out, "\r\n")

	// Unchanged frame is not redrawn
	buf.Reset()
	td.RenderWithState(view(), model.InteractionState{})
	assert.Empty(t, buf.String())

	// Changed frame redraws without a full clear
	v := view()
	v.Sections[model.SectionTimeline] = []string{"updated-row"}
	td.RenderWithState(v, model.InteractionState{})
	assert.Contains(t, buf.String(), "updated-row")
	assert.False(t, strings.HasPrefix(buf.String(), util.ClearScreen))
	assert.Contains(t, td.LastFrame(), "updated-row")
}

func TestRenderHelpAndLayoutSwitch(t *testing.T) {
	var buf bytes.Buffer
	td := NewTerminalDisplayTo(&buf, DisplayConfig{Width: 80})
	td.RenderWithState(view(), model.InteractionState{})

	buf.Reset()
	td.RenderWithState(view(), model.InteractionState{ShowHelp: true})
	assert.True(t, strings.HasPrefix(buf.String(), util.ClearScreen))
	assert.Contains(t, buf.String(), "Keyboard Shortcuts")

	buf.Reset()
	td.RenderWithState(view(), model.InteractionState{LayoutStyle: 1})
	assert.True(t, strings.HasPrefix(buf.String(), util.ClearScreen))
	assert.NotContains(t, buf.String(), model.SectionDaily.Title())
}
