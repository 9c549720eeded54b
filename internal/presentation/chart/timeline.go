package chart

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/core/timeline"
	"github.com/penwyp/go-activity-monitor/internal/util"
)

const (
	timelineSurface = "activityTimelineChart"
	timelineLabelW  = 10
)

// TimelineChart draws the stepped active/inactive signal rebuilt from activity events
type TimelineChart struct {
	controller
	builder   *timeline.Builder
	clock     *util.TimeProvider
	events    []model.ActivityEvent
	intervals []timeline.Interval
}

func NewTimelineChart(builder *timeline.Builder, clock *util.TimeProvider) *TimelineChart {
	if builder == nil {
		builder = timeline.NewBuilder()
	}
	if clock == nil {
		clock = util.GetTimeProvider()
	}
	return &TimelineChart{
		controller: newController(timelineSurface, defaultWidth),
		builder:    builder,
		clock:      clock,
	}
}

// Replace rebuilds intervals from a new event set and redraws
func (c *TimelineChart) Replace(events []model.ActivityEvent) {
	c.events = events
	c.Redraw()
}

// Redraw rebuilds intervals from the current events, closing the open one at the builder's now
func (c *TimelineChart) Redraw() {
	c.intervals = c.builder.Build(c.events)
	if len(c.intervals) == 0 {
		c.placeholder(NoTimelineData)
		return
	}
	c.draw(c.lines())
}

// SetWidth redraws the current dataset when the width changes
func (c *TimelineChart) SetWidth(width int) {
	if c.setWidth(width) && c.events != nil {
		c.Redraw()
	}
}

// Intervals returns the intervals behind the current drawing
func (c *TimelineChart) Intervals() []timeline.Interval {
	return c.intervals
}

func (c *TimelineChart) lines() []string {
	points := timeline.StepPoints(c.intervals)
	start := c.intervals[0].Start
	end := c.intervals[len(c.intervals)-1].End

	cols := c.width - timelineLabelW
	if cols < 1 {
		cols = 1
	}
	statuses := sampleSteps(points, start, end, cols)

	var active, inactive strings.Builder
	for _, st := range statuses {
		if st == timeline.StatusActive {
			active.WriteString(blocks(activeColor, 1))
			inactive.WriteString(" ")
		} else {
			active.WriteString(" ")
			inactive.WriteString(blocks(inactiveColor, 1))
		}
	}

	totals := timeline.Summarize(c.intervals)
	current, _ := timeline.StatusAt(c.intervals, end)

	return []string{
		util.PadRight(timeline.StatusActive.String(), timelineLabelW) + active.String(),
		util.PadRight(timeline.StatusInactive.String(), timelineLabelW) + inactive.String(),
		strings.Repeat(" ", timelineLabelW) + c.axis(start, end, cols),
		captionColor.Sprint(fmt.Sprintf("Active %s  Inactive %s  Now %s",
			util.FormatDuration(totals.Active), util.FormatDuration(totals.Inactive), current)),
	}
}

// axis places the start and end time-of-day labels at the strip edges
func (c *TimelineChart) axis(start, end time.Time, cols int) string {
	left := c.clock.FormatClock(start)
	right := c.clock.FormatClock(end)
	if !sameDay(start.In(c.clock.Location()), end.In(c.clock.Location())) {
		left = c.clock.FormatDateTime(start)
		right = c.clock.FormatDateTime(end)
	}
	gap := cols - util.GetDisplayWidth(left) - util.GetDisplayWidth(right)
	if gap < 1 {
		gap = 1
	}
	return axisColor.Sprint(left + strings.Repeat(" ", gap) + right)
}

// sampleSteps reads the stepped signal at the midpoint of each column. At a
// shared vertex the later point wins, so a column on a boundary takes the
// status of the interval that begins there.
func sampleSteps(points []timeline.Point, start, end time.Time, cols int) []timeline.Status {
	out := make([]timeline.Status, cols)
	span := end.Sub(start)
	for i := range out {
		t := start
		if span > 0 {
			t = start.Add(time.Duration((float64(i) + 0.5) / float64(cols) * float64(span)))
		}
		idx := sort.Search(len(points), func(j int) bool {
			return points[j].Time.After(t)
		})
		if idx > 0 {
			out[i] = points[idx-1].Status
		} else if len(points) > 0 {
			out[i] = points[0].Status
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
